package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/taskmaster/tasklist/internal/infrastructure/database"
	"github.com/taskmaster/tasklist/internal/ports"
)

// SQLStorage keeps blobs in the kv_store table. The same statements serve
// sqlite and postgres; placeholders are rebound per driver.
type SQLStorage struct {
	db    *sqlx.DB
	owner *database.DB
}

// NewSQLStorage creates a storage that owns db and closes it on Close.
// The kv_store table must exist.
func NewSQLStorage(db *database.DB) *SQLStorage {
	return &SQLStorage{db: db.DB, owner: db}
}

func (s *SQLStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	query := s.db.Rebind(`SELECT value FROM kv_store WHERE key = ?`)
	if err := s.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrKeyNotFound
		}
		return nil, err
	}
	return []byte(value), nil
}

func (s *SQLStorage) Set(ctx context.Context, key string, value []byte) error {
	query := s.db.Rebind(`
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`)
	_, err := s.db.ExecContext(ctx, query, key, string(value), time.Now().UTC())
	return err
}

func (s *SQLStorage) Remove(ctx context.Context, key string) error {
	query := s.db.Rebind(`DELETE FROM kv_store WHERE key = ?`)
	_, err := s.db.ExecContext(ctx, query, key)
	return err
}

// Ping checks the connection
func (s *SQLStorage) Ping(ctx context.Context) error {
	return s.owner.Ping(ctx)
}

// ConnectionInfo reports connection pool statistics
func (s *SQLStorage) ConnectionInfo() map[string]interface{} {
	return s.owner.GetConnectionInfo()
}

// Close releases the database
func (s *SQLStorage) Close() error {
	return s.owner.Close()
}
