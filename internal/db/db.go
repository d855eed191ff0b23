package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/omiglobal/submission-backend/internal/config"
)

// ErrNotInitialized is returned by every Gateway method when the pool
// was never opened, so callers fail fast instead of panicking.
var ErrNotInitialized = errors.New("db: gateway not initialized")

// Gateway wraps a bounded PostgreSQL connection pool. Every call runs
// inside its own transaction: commit on success, rollback on any error,
// and the connection is always returned to the pool.
type Gateway struct {
	db *sql.DB
}

// Open connects to PostgreSQL and verifies the connection.
func Open(cfg config.DatabaseConfig) (*Gateway, error) {
	conn, err := sql.Open("postgres", cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxConns)
	conn.SetMaxIdleConns(cfg.MinConns)
	conn.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Printf("database pool initialized (max: %d, idle: %d)", cfg.MaxConns, cfg.MinConns)
	return &Gateway{db: conn}, nil
}

// Close tears the pool down. Safe to call on a nil gateway.
func (g *Gateway) Close() {
	if g != nil && g.db != nil {
		g.db.Close()
		log.Println("database pool closed")
	}
}

// Ping reports whether the database is reachable.
func (g *Gateway) Ping(ctx context.Context) error {
	if g == nil || g.db == nil {
		return ErrNotInitialized
	}
	return g.db.PingContext(ctx)
}

func (g *Gateway) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if g == nil || g.db == nil {
		return ErrNotInitialized
	}
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			log.Println("rollback failed:", rbErr)
		}
		return err
	}
	return tx.Commit()
}

// Execute runs a statement that returns no rows.
func (g *Gateway) Execute(ctx context.Context, query string, args ...any) error {
	return g.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
}

// FetchOne runs a query expected to return a single row and scans it
// into dest. sql.ErrNoRows passes through for callers to map.
func (g *Gateway) FetchOne(ctx context.Context, query string, args []any, dest ...any) error {
	return g.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, query, args...).Scan(dest...)
	})
}

// FetchAll runs a query and invokes scan once per row.
func (g *Gateway) FetchAll(ctx context.Context, query string, args []any, scan func(rows *sql.Rows) error) error {
	return g.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			if err := scan(rows); err != nil {
				return err
			}
		}
		return rows.Err()
	})
}

// ExecuteMany runs the same statement once per parameter set, all
// within a single transaction.
func (g *Gateway) ExecuteMany(ctx context.Context, query string, paramSets [][]any) error {
	return g.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, params := range paramSets {
			if _, err := stmt.ExecContext(ctx, params...); err != nil {
				return err
			}
		}
		return nil
	})
}

// ApplyMigrations applies database migrations from the specified path.
func ApplyMigrations(databaseURL, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Println("no database migrations to apply")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	log.Println("database migrations applied")
	return nil
}
