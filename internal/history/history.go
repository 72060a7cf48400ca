// Package history records deletion outcomes in a local SQLite
// database. The database is an audit log for the history subcommand;
// scans never consult it.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dendrascience/dupecull/internal/dupe"
)

// DB wraps the SQLite connection holding past deletion outcomes.
type DB struct {
	db *sql.DB
}

// Record is one stored deletion attempt.
type Record struct {
	ID          int64
	Timestamp   time.Time
	Path        string
	Fingerprint string
	Size        int64
	KeptPath    string
	Outcome     string
	ErrorMsg    string
}

// Open opens the history database at path, creating the file, its
// parent directory, and the schema as needed.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history directory %s: %w", dir, err)
		}
	}

	// _loc=auto enables DATETIME parsing on scan
	db, err := sql.Open("sqlite3", "file:"+path+"?_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// A real statement forces file creation and surfaces permission
	// problems early, unlike Ping.
	if _, err := db.Exec("SELECT 1"); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history database (check permissions on %s): %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	h := &DB{db: db}
	if err := h.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func (h *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS deletions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		path TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		size INTEGER NOT NULL,
		kept_path TEXT NOT NULL,
		outcome TEXT NOT NULL,
		error_message TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_deletions_timestamp ON deletions(timestamp);
	CREATE INDEX IF NOT EXISTS idx_deletions_fingerprint ON deletions(fingerprint);
	CREATE INDEX IF NOT EXISTS idx_deletions_outcome ON deletions(outcome);
	`
	_, err := h.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (h *DB) Close() error {
	return h.db.Close()
}

// Record stores the outcome of one deletion attempt along with the
// group context it came from.
func (h *DB) Record(res dupe.DeleteResult, fingerprint, keptPath string, size int64) error {
	errMsg := ""
	if res.Err != nil {
		errMsg = res.Err.Error()
	}

	_, err := h.db.Exec(`
	INSERT INTO deletions (timestamp, path, fingerprint, size, kept_path, outcome, error_message)
	VALUES (?, ?, ?, ?, ?, ?, ?)`,
		time.Now(), res.Path, fingerprint, size, keptPath, res.Outcome.String(), errMsg,
	)
	return err
}
