package migration

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadMigrations_OrdersAndFilters(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V2__add_index.sql", "CREATE INDEX a ON t (x);")
	writeFile(t, dir, "V1__career_tables.sql", "CREATE TABLE t (x INT);")
	writeFile(t, dir, "README.md", "ignored")

	migs, err := loadMigrations(dir)
	if err != nil {
		t.Fatalf("loadMigrations: %v", err)
	}
	if len(migs) != 2 || migs[0].Version != 1 || migs[1].Version != 2 {
		t.Fatalf("unexpected migrations: %+v", migs)
	}
	if migs[0].Name != "career_tables" || migs[0].Checksum == "" {
		t.Fatalf("unexpected first migration: %+v", migs[0])
	}
}

func TestLoadMigrations_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V1__empty.sql", "   ")
	if _, err := loadMigrations(dir); err == nil {
		t.Fatalf("expected error for empty migration")
	}

	dir = t.TempDir()
	writeFile(t, dir, "V1__a.sql", "SELECT 1;")
	writeFile(t, dir, "V01__b.sql", "SELECT 2;")
	if _, err := loadMigrations(dir); err == nil {
		t.Fatalf("expected error for duplicate version")
	}

	migs, err := loadMigrations(filepath.Join(t.TempDir(), "missing"))
	if err != nil || migs != nil {
		t.Fatalf("missing dir: migs=%v err=%v", migs, err)
	}
}

func TestPending(t *testing.T) {
	migs := []Migration{
		{Version: 1, Name: "a", Checksum: "c1"},
		{Version: 2, Name: "b", Checksum: "c2"},
		{Version: 3, Name: "c", Checksum: "c3"},
	}

	got := pending(migs, map[int64]appliedMigration{1: {Version: 1, Checksum: "c1"}})
	if len(got) != 2 || got[0].Version != 2 || got[1].Version != 3 || got[0].err != nil {
		t.Fatalf("unexpected pending: %+v", got)
	}

	got = pending(migs, map[int64]appliedMigration{2: {Version: 2, Checksum: "changed"}})
	if len(got) != 3 || got[1].err == nil {
		t.Fatalf("expected checksum mismatch on version 2: %+v", got)
	}
}
