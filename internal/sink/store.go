package sink

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/logtide/logtide/internal/config"
	"github.com/logtide/logtide/internal/record"
)

// OpenPool opens the shared ClickHouse connection pool. The pool is
// the only resource shared across concurrent pipeline runs; every
// insert draws a connection from it and returns it on all paths.
func OpenPool(cfg config.StoreConfig) (*sql.DB, error) {
	opts, err := clickhouse.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse store DSN: %w", err)
	}

	db := clickhouse.OpenDB(opts)
	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxConns)
	db.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// Store inserts records into an analytical table, one row per record.
type Store struct {
	db    *sql.DB
	table string
}

// NewStore creates a store sink over the shared pool.
func NewStore(db *sql.DB, table string) *Store {
	return &Store{db: db, table: table}
}

func (s *Store) Name() string { return "store" }

// Write inserts one row. The timestamp is bound in the host's local
// zone: the stored instant stays UTC-accurate while carrying the
// ingesting host's offset for wall-clock display.
func (s *Store) Write(ctx context.Context, rec record.Record) error {
	query := fmt.Sprintf("INSERT INTO %s (source, timestamp, text) VALUES (?, ?, ?)", s.table)
	if _, err := s.db.ExecContext(ctx, query, rec.Source, rec.Timestamp.Local(), rec.Body); err != nil {
		return fmt.Errorf("insert into %s: %w", s.table, err)
	}
	return nil
}

// Close is a no-op: the pool is shared across runs and owned by the
// server.
func (s *Store) Close() error { return nil }
