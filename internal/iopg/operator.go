// Package iopg implements store.Store on PostgreSQL. The connection pool is
// pgxpool, record operations go through GORM on top of the same pool.
// This is an impure I/O package that implements contracts defined in pkg/.
package iopg

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/kardex/pkg/config"
	"github.com/gnames/kardex/pkg/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type pgStore struct {
	pool *pgxpool.Pool
	gorm *gorm.DB
}

// New creates a PostgreSQL store (without connecting).
func New() store.Store {
	return &pgStore{}
}

// Connect establishes a connection pool to PostgreSQL.
func (p *pgStore) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	// a shelter roster is small, a few connections are plenty
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	db := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		pool.Close()
		return GORMConnectionError(err)
	}

	p.pool = pool
	p.gorm = gormDB
	slog.Info("Connected to PostgreSQL",
		"host", cfg.Host, "port", cfg.Port, "database", cfg.Database)
	return nil
}

// Close releases all database connections.
func (p *pgStore) Close() error {
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
		p.gorm = nil
	}
	return nil
}

// DropAll drops all tables in the public schema.
func (p *pgStore) DropAll(ctx context.Context) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	query := `
		SELECT tablename
		FROM pg_tables
		WHERE schemaname = 'public'
	`
	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return QueryError("pg_tables", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return QueryError("pg_tables", err)
		}
		tables = append(tables, tableName)
	}
	if err := rows.Err(); err != nil {
		return QueryError("pg_tables", err)
	}

	for _, table := range tables {
		dropSQL := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)
		if _, err := p.pool.Exec(ctx, dropSQL); err != nil {
			return DropTableError(table, err)
		}
	}
	return nil
}

// HasTables checks if the public schema has any tables.
func (p *pgStore) HasTables(ctx context.Context) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
		)
	`
	var hasTables bool
	if err := p.pool.QueryRow(ctx, query).Scan(&hasTables); err != nil {
		return false, QueryError("information_schema.tables", err)
	}
	return hasTables, nil
}

// Optimize runs VACUUM ANALYZE on the database to reclaim space and update
// query planner statistics. It cannot run inside a transaction block.
func (p *pgStore) Optimize(ctx context.Context) error {
	if p.pool == nil {
		return NotConnectedError()
	}
	slog.Info("Running VACUUM ANALYZE on database...")
	timeStart := time.Now()

	if _, err := p.pool.Exec(ctx, "VACUUM ANALYZE"); err != nil {
		return OptimizeError("VACUUM ANALYZE", err)
	}

	slog.Info("VACUUM ANALYZE completed",
		"duration", gnfmt.TimeString(time.Since(timeStart).Seconds()))
	return nil
}

// syncSequence moves a serial sequence past explicitly inserted IDs.
func (p *pgStore) syncSequence(ctx context.Context, table string) error {
	q := fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'),
		  (SELECT COALESCE(MAX(id), 1) FROM %[1]s))`, table)
	_, err := p.pool.Exec(ctx, q)
	return err
}
