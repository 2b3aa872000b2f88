package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_CreatesSchema(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	var name string
	err = database.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'records'`,
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "records", name)
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "store.db")

	database, err := OpenDB(path)
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO records (kind, id) VALUES ('Task', 'id-1')`)
	assert.NoError(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	// OpenDB already migrated once; a second pass must not fail.
	assert.NoError(t, Migrate(database))
}
