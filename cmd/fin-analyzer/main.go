package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fin-analyzer/internal/api"
	"fin-analyzer/internal/api/handlers"
	"fin-analyzer/internal/repository"
	"fin-analyzer/internal/service"
	"fin-analyzer/pkg/config"
	"fin-analyzer/pkg/logger"

	"go.uber.org/zap"
)

// @title AI Financial Analyzer API
// @version 1.0
// @description Categorizes uploaded bank transactions, tracks budgets and exports reports.

// @host localhost:8080
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting fin-analyzer service")

	ctx := context.Background()

	// Model artifacts
	store, closeStore, err := repository.OpenArtifactStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open artifact store", zap.Error(err))
	}
	defer closeStore()

	trainer := service.NewBootstrapTrainer(store, cfg.Model, appLogger)
	model, err := trainer.EnsureModel(ctx)
	if err != nil {
		appLogger.Fatal("Failed to load categorization model", zap.Error(err))
	}

	// In-memory state
	budgetStore := repository.NewBudgetStore(appLogger)
	summaryStore := repository.NewSummaryStore()

	// Initialize services
	categorizer, err := service.NewCategorizerService(model, summaryStore, cfg.Cache.PredictionSize, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize categorizer", zap.Error(err))
	}
	defer categorizer.Close()

	budgetService := service.NewBudgetService(budgetStore, summaryStore, appLogger)
	expenseService := service.NewExpenseService(categorizer, budgetService, appLogger)
	reportService := service.NewReportService(budgetStore, summaryStore, appLogger)

	var chat service.ChatModel
	if cfg.GigaChat.Enabled() {
		llm, err := service.NewGigaChatModel(ctx, &cfg.GigaChat, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize GigaChat client", zap.Error(err))
		}
		defer llm.Close()
		chat = llm
	} else {
		appLogger.Info("GIGACHAT_API_KEY is not set, /advice is disabled")
	}
	advisorService := service.NewAdvisorService(chat, budgetStore, summaryStore, appLogger)

	// Initialize handlers
	h := api.Handlers{
		Expense: handlers.NewExpenseHandler(expenseService, appLogger),
		Budget:  handlers.NewBudgetHandler(budgetService, appLogger),
		Report:  handlers.NewReportHandler(reportService, appLogger),
		Advice:  handlers.NewAdviceHandler(advisorService, appLogger),
		Health:  handlers.NewHealthHandler(categorizer),
	}

	// Setup router
	app := api.SetupRouter(h, cfg.Server, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting",
			zap.String("address", addr),
			zap.Strings("labels", categorizer.Labels()),
		)
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
