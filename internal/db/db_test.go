package db

import (
	"path/filepath"
	"strings"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestMigrateIsIdempotent(t *testing.T) {
	database := openTestDB(t)

	applied, err := database.MigrateWithInfo()
	if err != nil {
		t.Fatalf("MigrateWithInfo failed: %v", err)
	}
	if len(applied) == 0 {
		t.Fatal("expected at least one migration to apply")
	}

	applied, err = database.MigrateWithInfo()
	if err != nil {
		t.Fatalf("second MigrateWithInfo failed: %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("expected no migrations on second run, got %v", applied)
	}
}

func TestMigrationStatus(t *testing.T) {
	database := openTestDB(t)

	applied, pending, err := database.MigrationStatus()
	if err != nil {
		t.Fatalf("MigrationStatus failed: %v", err)
	}
	if len(applied) != 0 || len(pending) == 0 {
		t.Fatalf("expected everything pending on a fresh db, got applied=%v pending=%v", applied, pending)
	}

	if err := database.Migrate(); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	applied, pending, err = database.MigrationStatus()
	if err != nil {
		t.Fatalf("MigrationStatus failed: %v", err)
	}
	if len(applied) == 0 || len(pending) != 0 {
		t.Fatalf("expected everything applied, got applied=%v pending=%v", applied, pending)
	}
}

func TestRequiresMigrationError(t *testing.T) {
	database := openTestDB(t)

	err := database.RequiresMigrationError()
	if err == nil {
		t.Fatal("expected error on unmigrated db")
	}
	if !strings.Contains(err.Error(), "requires migration") {
		t.Errorf("unexpected error message: %v", err)
	}

	if err := database.Migrate(); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if err := database.RequiresMigrationError(); err != nil {
		t.Errorf("expected nil after migrating, got %v", err)
	}
}
