package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps each collection as one JSONB row in the collections
// table created by the embedded migrations.
type PostgresStore struct {
	db db
}

// NewPostgresStore constructs a PostgresStore.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresStore(db db) *PostgresStore {
	return &PostgresStore{db: db}
}

// Load selects the collection's document. No row is an empty collection.
func (s *PostgresStore) Load(ctx context.Context, collection string) ([]byte, error) {
	if err := validateName(collection); err != nil {
		return nil, err
	}
	const q = `SELECT data FROM collections WHERE name = @name`

	var data []byte
	err := s.db.QueryRow(ctx, q, pgx.NamedArgs{"name": collection}).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage.PostgresStore.Load: %w", err)
	}
	return data, nil
}

// Save upserts the collection's document.
func (s *PostgresStore) Save(ctx context.Context, collection string, data []byte) error {
	if err := validateName(collection); err != nil {
		return err
	}
	const q = `
		INSERT INTO collections (name, data)
		VALUES (@name, @data)
		ON CONFLICT (name) DO UPDATE
		SET data       = EXCLUDED.data,
		    updated_at = now()`

	args := pgx.NamedArgs{
		"name": collection,
		"data": string(data),
	}
	if _, err := s.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("storage.PostgresStore.Save: %w", err)
	}
	return nil
}
