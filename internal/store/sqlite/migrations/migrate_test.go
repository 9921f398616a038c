package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadMigrations(t *testing.T) {
	migrations, err := LoadMigrations()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(migrations), 2)

	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "create_tasks", migrations[0].Name)
	assert.Contains(t, migrations[0].Up, "CREATE TABLE")
	assert.Contains(t, migrations[0].Down, "DROP TABLE")

	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Version, migrations[i].Version)
	}
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		filename string
		version  int
		name     string
	}{
		{"000001_create_tasks.up.sql", 1, "create_tasks"},
		{"000012_add_index.up.sql", 12, "add_index"},
		{"readme.up.sql", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			version, name := parseFilename(tt.filename)
			assert.Equal(t, tt.version, version)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestRunMigrations_CreatesSchema(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, RunMigrations(ctx, db))

	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='tasks'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "tasks", name)

	var index string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name='idx_tasks_created_at'").Scan(&index)
	require.NoError(t, err)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))

	migrations, err := LoadMigrations()
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, len(migrations), count)
}

func TestRunMigrations_TitleCheckConstraint(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(context.Background(), db))

	_, err := db.Exec(`INSERT INTO tasks (id, title, created_at, updated_at) VALUES ('x', '  ', '2024-01-01T00:00:00.000Z', '2024-01-01T00:00:00.000Z')`)
	assert.Error(t, err)
}

func TestRunMigrations_DirtyDatabase(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`
		CREATE TABLE migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			dirty BOOLEAN DEFAULT FALSE
		)
	`)
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO migrations (version, dirty) VALUES (1, TRUE)")
	require.NoError(t, err)

	err = RunMigrations(context.Background(), db)
	require.Error(t, err)

	if !strings.Contains(err.Error(), "database is in a dirty state") {
		t.Errorf("expected error to mention dirty state, got: %v", err)
	}
	if !strings.Contains(err.Error(), "failed migration(s): [1]") {
		t.Errorf("expected error to mention failed migration version 1, got: %v", err)
	}
}
