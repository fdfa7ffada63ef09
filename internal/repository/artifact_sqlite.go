package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLArtifactStore keeps artifacts in a SQLite table.
type SQLArtifactStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// OpenSQLiteArtifactStore opens (or creates) the database at path and makes
// sure the artifacts table exists.
func OpenSQLiteArtifactStore(ctx context.Context, path string, logger *zap.Logger) (*SQLArtifactStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &SQLArtifactStore{db: db, logger: logger}
	if err := store.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLArtifactStore) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+artifactsTable+` (
		name TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create %s table: %w", artifactsTable, err)
	}
	return nil
}

func (s *SQLArtifactStore) Load(ctx context.Context, name string) ([]byte, error) {
	query := squirrel.Select("payload").
		From(artifactsTable).
		Where(squirrel.Eq{"name": name})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var payload []byte
	err = s.db.QueryRowContext(ctx, sqlStr, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load artifact %s: %w", name, err)
	}
	return payload, nil
}

func (s *SQLArtifactStore) Save(ctx context.Context, name string, data []byte) error {
	query := squirrel.Insert(artifactsTable).
		Columns("name", "payload", "updated_at").
		Values(name, data, time.Now().UTC()).
		Suffix("ON CONFLICT (name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", name, err)
	}
	s.logger.Info("Model artifact saved", zap.String("name", name), zap.String("store", "sqlite"))
	return nil
}

func (s *SQLArtifactStore) Close() error {
	return s.db.Close()
}
