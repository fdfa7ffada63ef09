package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

var ErrArtifactNotFound = errors.New("artifact not found")

// ArtifactStore persists opaque model artifacts by name.
type ArtifactStore interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

const artifactsTable = "model_artifacts"

// FileArtifactStore keeps each artifact as <dir>/<name>.json.
type FileArtifactStore struct {
	dir    string
	logger *zap.Logger
}

func NewFileArtifactStore(dir string, logger *zap.Logger) *FileArtifactStore {
	return &FileArtifactStore{
		dir:    dir,
		logger: logger,
	}
}

func (s *FileArtifactStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileArtifactStore) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", name, err)
	}
	return data, nil
}

// Save writes to a temp file first so a crash never leaves a half-written
// artifact behind.
func (s *FileArtifactStore) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close artifact %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return fmt.Errorf("failed to move artifact %s into place: %w", name, err)
	}

	s.logger.Info("Model artifact saved", zap.String("name", name), zap.String("path", s.path(name)))
	return nil
}
