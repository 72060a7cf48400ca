package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dendrascience/dupecull/internal/dupe"
	"github.com/dendrascience/dupecull/internal/history"
)

func seedHistoryDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	db, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	ok := dupe.DeleteResult{Path: "/data/b/y.txt", Outcome: dupe.Deleted}
	if err := db.Record(ok, "cafe01", "/data/x.txt", 2048); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	failed := dupe.DeleteResult{
		Path:    "/data/locked.txt",
		Outcome: dupe.PermissionDenied,
		Err:     os.ErrPermission,
	}
	if err := db.Record(failed, "cafe02", "/data/keep.txt", 512); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	return path
}

func TestHistoryCommand(t *testing.T) {
	path := seedHistoryDB(t)

	out, err := runRoot(t, "", "history", "--db", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{
		"/data/b/y.txt",
		"/data/locked.txt",
		"permission denied",
		"total freed: 2K",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("history output missing %q:\n%s", want, out)
		}
	}
}

func TestHistoryFailedOnly(t *testing.T) {
	path := seedHistoryDB(t)

	out, err := runRoot(t, "", "history", "--db", path, "--failed-only")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.Contains(out, "/data/b/y.txt") {
		t.Errorf("failed-only output lists a successful deletion:\n%s", out)
	}
	if !strings.Contains(out, "/data/locked.txt") {
		t.Errorf("failed-only output missing the failed deletion:\n%s", out)
	}
}

func TestHistoryNoDatabase(t *testing.T) {
	_, err := runRoot(t, "", "history")
	if err == nil || !strings.Contains(err.Error(), "no history database") {
		t.Errorf("Execute() error = %v, want missing database error", err)
	}
}

func TestHistoryEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	db, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	db.Close()

	out, err := runRoot(t, "", "history", "--db", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "no records") {
		t.Errorf("history output missing empty notice:\n%s", out)
	}
}

func TestScanRecordsHistory(t *testing.T) {
	root, x, y, _ := seedScanTree(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")
	cfgPath := filepath.Join(t.TempDir(), "dupecull.yaml")
	os.WriteFile(cfgPath, []byte("history_path: "+dbPath+"\n"), 0644)

	if _, err := runRoot(t, "", root, "--delete", "--yes", "--config", cfgPath); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	db, err := history.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	records, err := db.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Recent() returned %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Path != y {
		t.Errorf("record Path = %q, want %q", rec.Path, y)
	}
	if rec.Outcome != "deleted" {
		t.Errorf("record Outcome = %q, want %q", rec.Outcome, "deleted")
	}
	if rec.KeptPath != x {
		t.Errorf("record KeptPath = %q, want %q", rec.KeptPath, x)
	}
	if rec.Size != 2 {
		t.Errorf("record Size = %d, want 2", rec.Size)
	}
}
