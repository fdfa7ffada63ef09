package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type PostgresArtifactStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresArtifactStore(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) (*PostgresArtifactStore, error) {
	_, err := db.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+artifactsTable+` (
		name TEXT PRIMARY KEY,
		payload BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s table: %w", artifactsTable, err)
	}
	return &PostgresArtifactStore{
		db:     db,
		logger: logger,
	}, nil
}

func (r *PostgresArtifactStore) Load(ctx context.Context, name string) ([]byte, error) {
	query := squirrel.Select("payload").
		From(artifactsTable).
		Where(squirrel.Eq{"name": name}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var payload []byte
	err = r.db.QueryRow(ctx, sql, args...).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load artifact %s: %w", name, err)
	}
	return payload, nil
}

func (r *PostgresArtifactStore) Save(ctx context.Context, name string, data []byte) error {
	query := squirrel.Insert(artifactsTable).
		Columns("name", "payload", "updated_at").
		Values(name, data, time.Now().UTC()).
		Suffix("ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", name, err)
	}
	r.logger.Info("Model artifact saved", zap.String("name", name), zap.String("store", "postgres"))
	return nil
}
