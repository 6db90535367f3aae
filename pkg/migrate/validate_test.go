package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeMigration(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write migration: %v", err)
	}
}

func TestValidateDirAcceptsWellFormedMigrations(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "20260101000000_init.sql", "-- +goose Up\nSELECT 1;\n-- +goose Down\nSELECT 1;\n")
	writeMigration(t, dir, "20260102000000_add_index.sql", "-- +goose Up\nSELECT 1;\n-- +goose Down\nSELECT 1;\n")

	if err := ValidateDir(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateDirEmptyDirAllowed(t *testing.T) {
	if err := ValidateDir(t.TempDir()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateDirReportsEveryProblem(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "bad-name.sql", "-- +goose Up\n-- +goose Down\n")
	writeMigration(t, dir, "20260101000000_missing_down.sql", "-- +goose Up\nSELECT 1;\n")

	err := ValidateDir(dir)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "bad-name.sql") {
		t.Fatalf("expected filename error in %q", msg)
	}
	if !strings.Contains(msg, "missing_down") {
		t.Fatalf("expected missing down error in %q", msg)
	}
}

func TestValidateDirRejectsDuplicateVersions(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "20260101000000_first.sql", "-- +goose Up\n-- +goose Down\n")
	writeMigration(t, dir, "20260101000000_second.sql", "-- +goose Up\n-- +goose Down\n")

	err := ValidateDir(dir)
	if err == nil || !strings.Contains(err.Error(), "duplicate migration version") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}
