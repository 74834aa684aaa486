// Package repository provides durable key-value stores that hold the
// catalog, roster and session documents.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLStore implements a key-value store on a single "kv" table.
// Values are JSON documents replaced wholesale on every write.
type SQLStore struct {
	// DB is the database handle for executing queries.
	DB *sql.DB

	getQuery    string
	setQuery    string
	deleteQuery string
}

// NewPostgresStore creates a store backed by PostgreSQL.
// db must be a valid *sql.DB opened with the "postgres" driver.
func NewPostgresStore(db *sql.DB) *SQLStore {
	return &SQLStore{
		DB:       db,
		getQuery: `SELECT value FROM kv WHERE key = $1`,
		setQuery: `INSERT INTO kv (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		deleteQuery: `DELETE FROM kv WHERE key = $1`,
	}
}

// NewSQLiteStore creates a store backed by SQLite.
// db must be a valid *sql.DB opened with the "sqlite" driver.
func NewSQLiteStore(db *sql.DB) *SQLStore {
	return &SQLStore{
		DB:       db,
		getQuery: `SELECT value FROM kv WHERE key = ?`,
		setQuery: `INSERT INTO kv (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		deleteQuery: `DELETE FROM kv WHERE key = ?`,
	}
}

// Get returns the value stored under key.
// It returns (nil, nil) when the key is absent.
func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.DB.QueryRowContext(ctx, s.getQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set replaces the value stored under key.
func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.DB.ExecContext(ctx, s.setQuery, key, string(value)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.DB.ExecContext(ctx, s.deleteQuery, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
