// Package repository implements the encrypted, append-only invoice store.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Driver identifies the backing store.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

type Config struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// DB wraps the SQL handle plus, on the Postgres path, the pgx pool it came
// from. The driver decides dialect-specific DDL and error mapping.
type DB struct {
	SQL    *sql.DB
	pool   *pgxpool.Pool
	driver Driver
	logger *slog.Logger
}

func (d *DB) Driver() Driver { return d.driver }

// Open connects to the store selected by the DSN: postgres:// URLs open a pgx
// pool wrapped for database/sql, anything else is treated as a SQLite path.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if isPostgresDSN(cfg.DSN) {
		return openPostgres(ctx, cfg, logger)
	}

	logger.Info("opening sqlite store", "path", cfg.DSN)
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows one writer; serializing through a single connection keeps
	// concurrent duplicate inserts on the unique constraint instead of BUSY.
	db.SetMaxOpenConns(1)
	return &DB{SQL: db, driver: DriverSQLite, logger: logger}, nil
}

func openPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	logger.Info("connecting to postgres store")
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "invoice-vault"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = cfg.StatementTimeout.String()
	}

	dialCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		return nil, err
	}

	return &DB{SQL: stdlib.OpenDBFromPool(pool), pool: pool, driver: DriverPostgres, logger: logger}, nil
}

// Close closes the store connections gracefully.
func (d *DB) Close() {
	d.logger.Info("closing store connections")
	if err := d.SQL.Close(); err != nil {
		d.logger.Error("failed to close sql handle", "error", err)
	}
	if d.pool != nil {
		d.pool.Close()
	}
}

// HealthCheck pings the store to catch DSN issues early.
func (d *DB) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return d.SQL.PingContext(ctx)
}

const createInvoicesSQLite = `
CREATE TABLE IF NOT EXISTS invoices (
    id             TEXT PRIMARY KEY,
    file_hash      TEXT NOT NULL UNIQUE,
    filename       TEXT NOT NULL,
    uploaded_at    TEXT NOT NULL,
    invoice_number TEXT NOT NULL,
    invoice_date   TEXT NOT NULL,
    vendor_name    TEXT NOT NULL,
    vendor_gstin   TEXT NOT NULL,
    buyer_name     TEXT NOT NULL,
    cgst           TEXT NOT NULL,
    sgst           TEXT NOT NULL,
    grand_total    TEXT NOT NULL,
    currency       TEXT NOT NULL,
    payload_enc    BLOB NOT NULL,
    status         TEXT NOT NULL
)`

const createInvoicesPostgres = `
CREATE TABLE IF NOT EXISTS invoices (
    id             TEXT PRIMARY KEY,
    file_hash      TEXT NOT NULL UNIQUE,
    filename       TEXT NOT NULL,
    uploaded_at    TEXT NOT NULL,
    invoice_number TEXT NOT NULL,
    invoice_date   TEXT NOT NULL,
    vendor_name    TEXT NOT NULL,
    vendor_gstin   TEXT NOT NULL,
    buyer_name     TEXT NOT NULL,
    cgst           TEXT NOT NULL,
    sgst           TEXT NOT NULL,
    grand_total    TEXT NOT NULL,
    currency       TEXT NOT NULL,
    payload_enc    BYTEA NOT NULL,
    status         TEXT NOT NULL
)`

// Migrate creates the invoices table when missing.
func (d *DB) Migrate(ctx context.Context) error {
	ddl := createInvoicesSQLite
	if d.driver == DriverPostgres {
		ddl = createInvoicesPostgres
	}
	if _, err := d.SQL.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("migrate invoices: %w", err)
	}
	return nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
