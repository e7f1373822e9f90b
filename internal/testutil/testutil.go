// Package testutil provides helpers for tests that need a migrated
// database with seeded wiki rows.
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/akarlsen/userfill/internal/db"
)

// TempDB creates a temporary SQLite database with the schema applied.
func TempDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		database.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// sourceCols maps each legacy table to its (primary key, user id,
// user name) columns for seeding.
var sourceCols = map[string][3]string{
	"revision":    {"rev_id", "rev_user", "rev_user_text"},
	"logging":     {"log_id", "log_user", "log_user_text"},
	"image":       {"img_id", "img_user", "img_user_text"},
	"oldimage":    {"oi_id", "oi_user", "oi_user_text"},
	"filearchive": {"fa_id", "fa_user", "fa_user_text"},
	"archive":     {"ar_id", "ar_user", "ar_user_text"},
	"ipblocks":    {"ipb_id", "ipb_by", "ipb_by_text"},
}

// SeedSource inserts one row into a legacy source table with the given
// primary key and embedded (user id, display name) pair.
func SeedSource(t *testing.T, database *db.DB, table string, key, userID int64, name string) {
	t.Helper()

	cols, ok := sourceCols[table]
	if !ok {
		t.Fatalf("unknown source table %q", table)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES (?, ?, ?)", table, cols[0], cols[1], cols[2])
	if _, err := database.Exec(query, key, userID, name); err != nil {
		t.Fatalf("failed to seed %s row: %v", table, err)
	}
}

// SeedUser inserts a canonical user row directly.
func SeedUser(t *testing.T, database *db.DB, id int64, name, password string) {
	t.Helper()

	_, err := database.Exec(`
		INSERT INTO user (user_id, user_name, user_password, user_touched)
		VALUES (?, ?, ?, '20250101000000')
	`, id, name, password)
	if err != nil {
		t.Fatalf("failed to seed user %d: %v", id, err)
	}
}

// SeedActor inserts an actor row and returns its identifier. A nil
// userID leaves the actor unlinked.
func SeedActor(t *testing.T, database *db.DB, name string, userID *int64) int64 {
	t.Helper()

	res, err := database.Exec("INSERT INTO actor (actor_name, actor_user) VALUES (?, ?)", name, userID)
	if err != nil {
		t.Fatalf("failed to seed actor %q: %v", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get actor id: %v", err)
	}
	return id
}

// CountRows returns the number of rows in a table.
func CountRows(t *testing.T, database *db.DB, table string) int64 {
	t.Helper()

	var n int64
	if err := database.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s rows: %v", table, err)
	}
	return n
}

// AssertText fails the test with a unified diff when got differs from
// want.
func AssertText(t *testing.T, want, got string) {
	t.Helper()

	if want == got {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	if err != nil {
		t.Fatalf("failed to diff output: %v", err)
	}
	t.Errorf("output mismatch:\n%s", diff)
}
