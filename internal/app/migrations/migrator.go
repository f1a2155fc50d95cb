package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/studentregistry/internal/db"
)

//go:embed sql
var migrationFiles embed.FS

// Migrator manages database migrations
type Migrator struct {
	database *db.Database
	files    fs.FS
	logger   zerolog.Logger
}

// NewMigrator creates a migrator reading the embedded migrations for the database's dialect
func NewMigrator(database *db.Database, lgr zerolog.Logger) *Migrator {
	return &Migrator{
		database: database,
		files:    migrationFiles,
		logger:   lgr,
	}
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := m.database.DB.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	query, args, err := m.database.Builder().
		Select("COUNT(*)").
		From("schema_migrations").
		Where("version = ?", version).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build migration status query: %w", err)
	}

	var count int
	if err := m.database.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

// Pending returns the versions that have not been applied yet
func (m *Migrator) Pending(ctx context.Context) ([]string, error) {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return nil, err
	}

	files, err := m.migrationFiles()
	if err != nil {
		return nil, err
	}

	var pending []string
	for _, file := range files {
		version := versionOf(file)
		applied, err := m.isMigrationApplied(ctx, version)
		if err != nil {
			return nil, err
		}
		if !applied {
			pending = append(pending, version)
		}
	}
	return pending, nil
}

// Migrate applies every pending migration in version order
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	files, err := m.migrationFiles()
	if err != nil {
		return err
	}

	for _, file := range files {
		if err := m.apply(ctx, file); err != nil {
			return err
		}
	}
	return nil
}

// apply executes one migration file and records it in the same transaction
func (m *Migrator) apply(ctx context.Context, filePath string) error {
	filename := path.Base(filePath)
	version := versionOf(filePath)

	applied, err := m.isMigrationApplied(ctx, version)
	if err != nil {
		return err
	}
	if applied {
		m.logger.Debug().Str("migration", filename).Msg("Migration already applied, skipping")
		return nil
	}

	content, err := fs.ReadFile(m.files, filePath)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	record, args, err := m.database.Builder().
		Insert("schema_migrations").
		Columns("version").
		Values(version).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build migration record query: %w", err)
	}

	err = m.database.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("error occurred during SQL migration %s: %w", filename, err)
		}
		if _, err := tx.ExecContext(ctx, record, args...); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Info().Str("migration", filename).Msg("Migration successfully applied")
	return nil
}

// migrationFiles lists the dialect's SQL files sorted by name
func (m *Migrator) migrationFiles() ([]string, error) {
	dir := path.Join("sql", m.database.Dialect.Name)
	entries, err := fs.ReadDir(m.files, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, path.Join(dir, entry.Name()))
		}
	}
	sort.Strings(sqlFiles)
	return sqlFiles, nil
}

// versionOf extracts the version prefix, e.g. "001_create_students.sql" => "001"
func versionOf(filePath string) string {
	return strings.Split(path.Base(filePath), "_")[0]
}
