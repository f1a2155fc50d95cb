package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/yigit/studentregistry/internal/config"
	"github.com/yigit/studentregistry/internal/pkg/logger"
)

// sqlitePragmas are applied to every pooled sqlite connection
const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"

// Database is the storage handle shared by repositories. It is created once
// at startup and closed on shutdown.
type Database struct {
	DB      *sql.DB
	Dialect Dialect
}

// Open connects to the configured driver and verifies the connection
func Open(cfg *config.Config) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		sqlDB   *sql.DB
		dialect Dialect
		err     error
	)

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		sqlDB, err = openSQLite(cfg.Database.Path)
		dialect = SQLite
	case config.DriverPostgres:
		sqlDB, err = openPostgres(cfg.GetPostgresConnectionString())
		dialect = Postgres
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	maxLifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to parse connection max lifetime: %w", err)
	}
	sqlDB.SetConnMaxLifetime(maxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	logger.Info().Str("driver", dialect.Name).Msg("Database connection established")
	return &Database{DB: sqlDB, Dialect: dialect}, nil
}

// OpenSQLiteFile opens a sqlite database at path with default pool settings
func OpenSQLiteFile(path string) (*Database, error) {
	sqlDB, err := openSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}
	return &Database{DB: sqlDB, Dialect: SQLite}, nil
}

func openSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path+"?"+sqlitePragmas)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return sqlDB, nil
}

func openPostgres(connString string) (*sql.DB, error) {
	connConfig, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}
	return stdlib.OpenDB(*connConfig), nil
}

// Close closes the underlying connection pool
func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// Builder returns a squirrel statement builder using the dialect's placeholders
func (d *Database) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(d.Dialect.Placeholder)
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx *sql.Tx) error

// WithTransaction runs fn in a transaction, rolling back on error or panic.
// The migrator applies each migration file through it.
func (d *Database) WithTransaction(ctx context.Context, fn TransactionFn) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
