package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akarlsen/userfill/internal/db"
	"github.com/akarlsen/userfill/internal/testutil"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"USERFILL_DB_PATH", "USERFILL_DB_PATH_FILE", "USERFILL_SCHEME",
		"USERFILL_BATCH_SIZE", "USERFILL_THROTTLE", "USERFILL_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRunCommandEndToEnd(t *testing.T) {
	clearEnv(t)
	dbPath := filepath.Join(t.TempDir(), "wiki.db")

	if _, err := execute(t, "migrate", "--db", dbPath); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	// Seed a couple of revisions against the migrated database.
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	testutil.SeedSource(t, database, "revision", 1, 10, "Bob")
	testutil.SeedSource(t, database, "revision", 2, 30, "Carol")
	database.Close()

	out, err := execute(t, "run", "--db", dbPath, "--scheme", "legacy", "--tables", "revision")
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Added 2 users from revision") {
		t.Errorf("unexpected run output:\n%s", out)
	}

	out, err = execute(t, "status", "--db", dbPath)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(out, "Users:           2 (2 stubs)") {
		t.Errorf("unexpected status output:\n%s", out)
	}
}

func TestRunCommandRejectsTablesUnderActorScheme(t *testing.T) {
	clearEnv(t)
	dbPath := filepath.Join(t.TempDir(), "wiki.db")

	if _, err := execute(t, "migrate", "--db", dbPath); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	_, err := execute(t, "run", "--db", dbPath, "--scheme", "actor", "--tables", "revision")
	if err == nil {
		t.Fatal("expected usage error")
	}
	if !strings.Contains(err.Error(), "--tables cannot be combined") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunCommandRequiresMigratedDatabase(t *testing.T) {
	clearEnv(t)
	dbPath := filepath.Join(t.TempDir(), "wiki.db")

	_, err := execute(t, "run", "--db", dbPath, "--scheme", "legacy", "--tables", "")
	if err == nil {
		t.Fatal("expected error for unmigrated database")
	}
	if !strings.Contains(err.Error(), "requires migration") {
		t.Errorf("unexpected error: %v", err)
	}
}
