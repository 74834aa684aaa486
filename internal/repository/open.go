package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/PatoApp/internal/db"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendNone     = "none"
)

// Store is the durable key-value contract shared by every backend.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Open builds the store named by backend. For the file and sqlite backends
// location is a filesystem path; for postgres it is the DSN.
// The returned close func releases any underlying connection.
func Open(backend, location string) (Store, func() error, error) {
	noop := func() error { return nil }

	switch backend {
	case BackendMemory, "":
		return NewMemoryStore(), noop, nil
	case BackendNone:
		return NopStore{}, noop, nil
	case BackendFile:
		if location == "" {
			return nil, nil, fmt.Errorf("file backend: empty path")
		}
		return NewFileStore(location), noop, nil
	case BackendPostgres:
		conn, err := db.InitPostgres(location)
		if err != nil {
			return nil, nil, err
		}
		return NewPostgresStore(conn), closer(conn), nil
	case BackendSQLite:
		conn, err := db.InitSQLite(location)
		if err != nil {
			return nil, nil, err
		}
		return NewSQLiteStore(conn), closer(conn), nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

func closer(conn *sql.DB) func() error {
	return conn.Close
}
