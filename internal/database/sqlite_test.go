package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lms.db")

	db, err := InitDB(path)
	require.NoError(t, err)
	defer db.Close()

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='documents'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "documents", name)

	_, err = db.Exec(
		"INSERT INTO documents (user_id, collection, payload, created_at) VALUES (?, ?, ?, datetime('now'))",
		"uid", "chats", `{"question":"q"}`,
	)
	assert.NoError(t, err)
}

func TestInitDB_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lms.db")

	first, err := InitDB(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := InitDB(path)
	require.NoError(t, err)
	defer second.Close()

	assert.NoError(t, Migrate(second))
}
