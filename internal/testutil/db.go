// Package testutil provides a migrated sqlite database for package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yigit/studentregistry/internal/app/migrations"
	"github.com/yigit/studentregistry/internal/db"
)

// NewDatabase opens a fresh sqlite file in a temp dir and applies all migrations.
// The database is closed when the test finishes.
func NewDatabase(t *testing.T) *db.Database {
	t.Helper()

	database, err := db.OpenSQLiteFile(filepath.Join(t.TempDir(), "students_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, migrations.NewMigrator(database, zerolog.Nop()).Migrate(context.Background()))
	return database
}

// StrPtr returns a pointer to s
func StrPtr(s string) *string {
	return &s
}

// FloatPtr returns a pointer to f
func FloatPtr(f float64) *float64 {
	return &f
}
