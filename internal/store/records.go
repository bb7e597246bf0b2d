package store

import (
	"fmt"
)

// InsertRecord appends one scan record and returns it with its assigned id.
// Watchers are notified after the row is committed.
func (s *Store) InsertRecord(r ScanRecord) (*ScanRecord, error) {
	res, err := s.db.Exec(
		`INSERT INTO wifi_scan_records (timestamp, wifi_name, matched_keyword, session_id, scan_type)
		 VALUES (?, ?, ?, ?, ?)`,
		r.Timestamp, r.NetworkName, r.MatchedKeyword, r.SessionID, r.ScanType,
	)
	if err != nil {
		return nil, fmt.Errorf("insert scan record: %w", err)
	}
	r.ID, _ = res.LastInsertId()
	s.notify()
	return &r, nil
}

// AllRecords returns every scan record, newest first.
func (s *Store) AllRecords() ([]ScanRecord, error) {
	return s.queryRecords(
		`SELECT id, timestamp, wifi_name, matched_keyword, session_id, scan_type
		 FROM wifi_scan_records ORDER BY timestamp DESC, id DESC`,
	)
}

// RecordsInRange returns records with start <= timestamp < end (epoch
// milliseconds), newest first. The upper bound is exclusive.
func (s *Store) RecordsInRange(start, end int64) ([]ScanRecord, error) {
	return s.queryRecords(
		`SELECT id, timestamp, wifi_name, matched_keyword, session_id, scan_type
		 FROM wifi_scan_records
		 WHERE timestamp >= ? AND timestamp < ?
		 ORDER BY timestamp DESC, id DESC`,
		start, end,
	)
}

// RecordsForSession returns one session's records sorted by network name.
func (s *Store) RecordsForSession(sessionID int64) ([]ScanRecord, error) {
	return s.queryRecords(
		`SELECT id, timestamp, wifi_name, matched_keyword, session_id, scan_type
		 FROM wifi_scan_records WHERE session_id = ? ORDER BY wifi_name ASC`,
		sessionID,
	)
}

// CountInRange returns the number of records with start <= timestamp < end.
func (s *Store) CountInRange(start, end int64) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM wifi_scan_records WHERE timestamp >= ? AND timestamp < ?`,
		start, end,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

// DeleteAllRecords removes every scan record. This is the only way records
// are ever destroyed.
func (s *Store) DeleteAllRecords() error {
	if _, err := s.db.Exec(`DELETE FROM wifi_scan_records`); err != nil {
		return fmt.Errorf("delete all records: %w", err)
	}
	s.notify()
	return nil
}

func (s *Store) queryRecords(query string, args ...any) ([]ScanRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scan records: %w", err)
	}
	defer rows.Close()

	var records []ScanRecord
	for rows.Next() {
		var r ScanRecord
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.NetworkName, &r.MatchedKeyword, &r.SessionID, &r.ScanType); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
