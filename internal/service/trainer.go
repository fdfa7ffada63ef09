package service

import (
	"context"
	"errors"
	"fmt"

	"fin-analyzer/internal/ml"
	"fin-analyzer/internal/models"
	"fin-analyzer/internal/repository"
	"fin-analyzer/pkg/config"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type LabeledExample struct {
	Description string
	Category    string
}

// BootstrapDataset is the fixed training set used when no persisted model
// exists. Five rows cannot generalize: for text sharing no words with these
// examples the prediction is effectively arbitrary among the five labels.
func BootstrapDataset() []LabeledExample {
	return []LabeledExample{
		{"Walmart grocery shopping", models.CategoryGroceries},
		{"Electricity bill payment", models.CategoryUtilities},
		{"Restaurant dinner", models.CategoryFood},
		{"Salary deposit", models.CategoryIncome},
		{"Pharmacy medicine purchase", models.CategoryHealth},
	}
}

type BootstrapTrainer struct {
	store  repository.ArtifactStore
	cfg    config.ModelConfig
	logger *zap.Logger
}

func NewBootstrapTrainer(store repository.ArtifactStore, cfg config.ModelConfig, logger *zap.Logger) *BootstrapTrainer {
	if cfg.ExtractorName == "" {
		cfg.ExtractorName = "extractor"
	}
	if cfg.ClassifierName == "" {
		cfg.ClassifierName = "classifier"
	}
	return &BootstrapTrainer{
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// EnsureModel loads the persisted extractor/classifier pair, or trains and
// persists a new one when either artifact is absent. Artifacts that exist
// but cannot be decoded fail with ErrModelUnavailable.
func (t *BootstrapTrainer) EnsureModel(ctx context.Context) (*ml.Model, error) {
	var extractor, classifier []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		extractor, err = t.store.Load(gctx, t.cfg.ExtractorName)
		return err
	})
	g.Go(func() error {
		var err error
		classifier, err = t.store.Load(gctx, t.cfg.ClassifierName)
		return err
	})

	err := g.Wait()
	switch {
	case err == nil:
		model, err := ml.Decode(extractor, classifier)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		}
		t.logger.Info("Loaded persisted model", zap.Strings("labels", model.Labels()))
		return model, nil
	case errors.Is(err, repository.ErrArtifactNotFound):
		t.logger.Info("No persisted model found, training bootstrap model", zap.Error(err))
		return t.Train(ctx)
	default:
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
}

// Train fits a fresh model on the bootstrap dataset and persists it. A
// failed save is logged; the trained model is still usable for this process.
func (t *BootstrapTrainer) Train(ctx context.Context) (*ml.Model, error) {
	examples := BootstrapDataset()
	descriptions := make([]string, len(examples))
	labels := make([]string, len(examples))
	for i, ex := range examples {
		descriptions[i] = ex.Description
		labels[i] = ex.Category
	}

	model, err := ml.Train(descriptions, labels, ml.ForestConfig{
		Trees:    t.cfg.Trees,
		MaxDepth: t.cfg.MaxDepth,
		Seed:     t.cfg.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	if err := t.persist(ctx, model); err != nil {
		t.logger.Warn("Failed to persist bootstrap model", zap.Error(err))
	}

	t.logger.Info("Bootstrap model trained",
		zap.Int("examples", len(examples)),
		zap.Int("features", model.Extractor.NumFeatures()),
		zap.Int("trees", len(model.Classifier.Trees)),
	)
	return model, nil
}

func (t *BootstrapTrainer) persist(ctx context.Context, model *ml.Model) error {
	extractor, classifier, err := model.Encode()
	if err != nil {
		return err
	}
	if err := t.store.Save(ctx, t.cfg.ExtractorName, extractor); err != nil {
		return err
	}
	return t.store.Save(ctx, t.cfg.ClassifierName, classifier)
}
