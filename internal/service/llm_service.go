package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fin-analyzer/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// ChatModel answers a single prompt. GigaChatModel is the production
// implementation; tests substitute their own.
type ChatModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type GigaChatModel struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	logger *zap.Logger
}

func buildSystemInstruction() string {
	return `You are a personal finance assistant for a household budgeting tool.
You receive the user's latest categorized spending summary, their budgets per category,
and any categories that went over budget. Answer the user's question using only that data.

Rules:
- Be concrete: refer to categories and amounts from the data.
- When a category is over budget, suggest one or two practical ways to bring it back in line.
- Negative amounts in the summary are money going out, positive amounts are money coming in, unless the data says otherwise.
- Do not invent transactions or categories that are not in the data.
- Keep the answer under 200 words.`
}

func NewGigaChatModel(ctx context.Context, cfg *config.GigaChatConfig, logger *zap.Logger) (*GigaChatModel, error) {
	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = buildSystemInstruction()
	model.Temperature = 0.3

	return &GigaChatModel{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (g *GigaChatModel) Complete(ctx context.Context, prompt string) (string, error) {
	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := g.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from LLM")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (g *GigaChatModel) Close() error {
	if g.client != nil {
		g.client.Close()
	}
	return nil
}
