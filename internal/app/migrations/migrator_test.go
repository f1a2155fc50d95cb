package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/studentregistry/internal/db"
)

func TestMigrateIsIdempotent(t *testing.T) {
	database, err := db.OpenSQLiteFile(filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	defer database.Close()

	ctx := context.Background()
	m := NewMigrator(database, zerolog.Nop())

	pending, err := m.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"001", "002"}, pending)

	require.NoError(t, m.Migrate(ctx))
	require.NoError(t, m.Migrate(ctx))

	pending, err = m.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	var applied int
	require.NoError(t, database.DB.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 2, applied)
}

func TestMigrationDefaults(t *testing.T) {
	database, err := db.OpenSQLiteFile(filepath.Join(t.TempDir(), "defaults.db"))
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, NewMigrator(database, zerolog.Nop()).Migrate(context.Background()))

	_, err = database.DB.Exec(`INSERT INTO students (student_id, first_name, last_name, email) VALUES ('S1', 'A', 'B', 'a@b.c')`)
	require.NoError(t, err)

	var status, enrollment, created string
	require.NoError(t, database.DB.QueryRow(`SELECT status, enrollment_date, created_at FROM students WHERE student_id = 'S1'`).
		Scan(&status, &enrollment, &created))
	assert.Equal(t, "Active", status)
	assert.Len(t, enrollment, len("2006-01-02"))
	assert.Len(t, created, len("2006-01-02 15:04:05"))
}

func TestVersionOf(t *testing.T) {
	assert.Equal(t, "001", versionOf("sql/sqlite/001_create_students.sql"))
	assert.Equal(t, "010", versionOf("010_add_index.sql"))
}
