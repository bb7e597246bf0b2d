package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

const currentVersion = 2

type Store struct {
	db *sql.DB

	watchMu  sync.Mutex
	watchers map[chan struct{}]struct{}
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{
		db:       db,
		watchers: make(map[chan struct{}]struct{}),
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}
	if version < 2 {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS wifi_scan_records (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp       INTEGER NOT NULL,
		wifi_name       TEXT NOT NULL,
		matched_keyword TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scan_records_timestamp ON wifi_scan_records(timestamp);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('target_keyword',        ''),
		('scan_start_hour',       '8'),
		('scan_end_hour',         '20'),
		('scan_interval_minutes', '15'),
		('target_daily_count',    '3');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// migrateV2 adds session grouping and the scan-type discriminator.
// The upgrade is additive: pre-existing rows keep session_id 0 and are
// treated as periodic scans.
func (s *Store) migrateV2() error {
	const ddl = `
	ALTER TABLE wifi_scan_records ADD COLUMN session_id INTEGER NOT NULL DEFAULT 0;
	ALTER TABLE wifi_scan_records ADD COLUMN scan_type TEXT NOT NULL DEFAULT 'periodic';
	CREATE INDEX IF NOT EXISTS idx_scan_records_session ON wifi_scan_records(session_id);
	`
	_, err := s.db.Exec(ddl)
	return err
}
