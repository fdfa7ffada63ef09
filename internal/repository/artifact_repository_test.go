package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fin-analyzer/pkg/config"

	"go.uber.org/zap"
)

func exerciseStore(t *testing.T, store ArtifactStore) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.Load(ctx, "extractor"); !errors.Is(err, ErrArtifactNotFound) {
		t.Fatalf("expected ErrArtifactNotFound, got %v", err)
	}

	if err := store.Save(ctx, "extractor", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, "extractor", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}

	got, err := store.Load(ctx, "extractor")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != `{"v":2}` {
		t.Fatalf("Load = %s, want overwritten payload", got)
	}
}

func TestFileArtifactStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models")
	exerciseStore(t, NewFileArtifactStore(dir, zap.NewNop()))

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "extractor.json" {
		t.Fatalf("unexpected files left behind: %v", entries)
	}
}

func TestSQLiteArtifactStore(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLiteArtifactStore(ctx, filepath.Join(t.TempDir(), "artifacts.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()
	exerciseStore(t, store)
}

func TestOpenArtifactStoreFactory(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Model: config.ModelConfig{
		Store:      config.ModelStoreSQLite,
		SQLitePath: filepath.Join(dir, "nested", "a.db"),
	}}
	store, closeFn, err := OpenArtifactStore(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("OpenArtifactStore: %v", err)
	}
	defer closeFn()
	if _, ok := store.(*SQLArtifactStore); !ok {
		t.Fatalf("got %T, want *SQLArtifactStore", store)
	}

	cfg.Model.Store = "bogus"
	if _, _, err := OpenArtifactStore(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Fatalf("expected error for unknown store")
	}
}
