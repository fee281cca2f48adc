// Package testutil provides shared test helpers for creating config files and databases.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/flashlearn/flashlearn/internal/card"
	"github.com/flashlearn/flashlearn/internal/config"
	"github.com/flashlearn/flashlearn/internal/database"
)

// SetupTestConfig creates a config file using a SQLite database and directories under tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	for _, d := range []string{"data", "media", "exports"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`database:
  driver: sqlite
  path: %s
learning:
  default_limit: 10
  default_mode: due
media:
  directory: %s
exports:
  directory: %s
`,
		filepath.Join(tmpDir, "data", "test.db"),
		filepath.Join(tmpDir, "media"),
		filepath.Join(tmpDir, "exports"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// OpenTestDB opens a migrated SQLite database in a temporary directory.
// The database is closed when the test finishes.
func OpenTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

// CreateSet inserts a set with drafts and returns the set id with the ids of its cards in insertion order.
func CreateSet(t *testing.T, db *sqlx.DB, name string, drafts ...card.Draft) (int64, []int64) {
	t.Helper()

	repo := card.NewDBRepository(db)
	setID, err := repo.CreateSet(context.Background(), name, drafts)
	require.NoError(t, err)

	cards, err := repo.ListCards(context.Background(), setID)
	require.NoError(t, err)
	ids := make([]int64, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}
	return setID, ids
}

// TextDrafts returns flashcard drafts whose answers are the given strings
func TextDrafts(answers ...string) []card.Draft {
	drafts := make([]card.Draft, 0, len(answers))
	for _, answer := range answers {
		drafts = append(drafts, card.Draft{
			Question:      "What is " + answer + "?",
			CorrectAnswer: answer,
		})
	}
	return drafts
}
