package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"fin-analyzer/internal/repository"
	"fin-analyzer/pkg/config"

	"go.uber.org/zap"
)

func testModelConfig() config.ModelConfig {
	return config.ModelConfig{
		ExtractorName:  "extractor",
		ClassifierName: "classifier",
		Trees:          25,
		Seed:           7,
	}
}

type failingSaveStore struct{ repository.ArtifactStore }

func (failingSaveStore) Save(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestEnsureModelTrainsThenLoads(t *testing.T) {
	dir := t.TempDir()
	store := repository.NewFileArtifactStore(dir, zap.NewNop())
	trainer := NewBootstrapTrainer(store, testModelConfig(), zap.NewNop())

	first, err := trainer.EnsureModel(context.Background())
	if err != nil {
		t.Fatalf("EnsureModel (train): %v", err)
	}
	for _, name := range []string{"extractor.json", "classifier.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("artifact %s not persisted: %v", name, err)
		}
	}

	want := []string{"Food", "Groceries", "Health", "Income", "Utilities"}
	if !reflect.DeepEqual(first.Labels(), want) {
		t.Fatalf("labels = %v, want %v", first.Labels(), want)
	}

	second, err := trainer.EnsureModel(context.Background())
	if err != nil {
		t.Fatalf("EnsureModel (load): %v", err)
	}
	if !reflect.DeepEqual(first.Classifier.Trees, second.Classifier.Trees) {
		t.Fatalf("loaded model differs from persisted one")
	}
}

func TestEnsureModelRetrainsWhenOneArtifactMissing(t *testing.T) {
	dir := t.TempDir()
	store := repository.NewFileArtifactStore(dir, zap.NewNop())
	trainer := NewBootstrapTrainer(store, testModelConfig(), zap.NewNop())
	if _, err := trainer.EnsureModel(context.Background()); err != nil {
		t.Fatalf("EnsureModel: %v", err)
	}
	if err := os.Remove(filepath.Join(dir, "classifier.json")); err != nil {
		t.Fatal(err)
	}
	if _, err := trainer.EnsureModel(context.Background()); err != nil {
		t.Fatalf("EnsureModel after removal: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "classifier.json")); err != nil {
		t.Fatalf("classifier not re-persisted: %v", err)
	}
}

func TestEnsureModelFailsOnCorruptArtifact(t *testing.T) {
	dir := t.TempDir()
	store := repository.NewFileArtifactStore(dir, zap.NewNop())
	trainer := NewBootstrapTrainer(store, testModelConfig(), zap.NewNop())
	if _, err := trainer.EnsureModel(context.Background()); err != nil {
		t.Fatalf("EnsureModel: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "classifier.json"), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	model, err := trainer.EnsureModel(context.Background())
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
	if model != nil {
		t.Fatalf("corrupt artifacts must not yield a model")
	}
}

func TestTrainSurvivesPersistFailure(t *testing.T) {
	store := failingSaveStore{repository.NewFileArtifactStore(t.TempDir(), zap.NewNop())}
	trainer := NewBootstrapTrainer(store, testModelConfig(), zap.NewNop())

	model, err := trainer.EnsureModel(context.Background())
	if err != nil {
		t.Fatalf("EnsureModel: %v", err)
	}
	if !model.Ready() {
		t.Fatalf("model should be usable even if it could not be saved")
	}
}

func TestBootstrapModelPredictsTrainingRows(t *testing.T) {
	trainer := NewBootstrapTrainer(repository.NewFileArtifactStore(t.TempDir(), zap.NewNop()), testModelConfig(), zap.NewNop())
	model, err := trainer.Train(context.Background())
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	for _, ex := range BootstrapDataset() {
		got, err := model.Predict([]string{ex.Description})
		if err != nil {
			t.Fatalf("Predict: %v", err)
		}
		if got[0] != ex.Category {
			t.Fatalf("%q predicted %q, want %q", ex.Description, got[0], ex.Category)
		}
	}
}
