// Package storage owns the durable sqlite store: per-table readers and
// writers built on the bob sqlite dialect, plus the persistence gateway
// that translates Member aggregates to and from rows.
package storage

import (
	"context"
	"database/sql"

	"github.com/stephenafamo/bob"
	_ "modernc.org/sqlite"

	"github.com/carson-networks/ledger-server/internal/config"
)

type Storage struct {
	DB   bob.DB
	conn *sql.DB
}

func NewStorage(env *config.Config) (*Storage, error) {
	conn, err := sql.Open("sqlite", env.SQLitePath)
	if err != nil {
		return nil, err
	}

	// A single serving process owns the file; one connection avoids
	// SQLITE_BUSY between the worker and hydration.
	conn.SetMaxOpenConns(1)

	return &Storage{
		DB:   bob.NewDB(conn),
		conn: conn,
	}, nil
}

// Read returns non-transactional readers over the store.
func (s *Storage) Read() *Reader {
	return NewReader(s.DB)
}

// Write begins a store transaction and returns writers bound to it. The
// caller must Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	w := NewWriter(tx)
	return &w, nil
}

func (s *Storage) Close() error {
	return s.conn.Close()
}
