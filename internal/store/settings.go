package store

import (
	"fmt"
	"strconv"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// LoadSettings reads the typed settings, falling back to defaults for
// missing or malformed values. Callers re-read before every scan attempt
// rather than caching.
func (s *Store) LoadSettings() (Settings, error) {
	cfg := Settings{
		ScanStartHour:       DefaultScanStartHour,
		ScanEndHour:         DefaultScanEndHour,
		ScanIntervalMinutes: DefaultScanIntervalMinutes,
		TargetDailyCount:    DefaultTargetDailyCount,
	}

	all, err := s.GetAllSettings()
	if err != nil {
		return cfg, err
	}
	for _, st := range all {
		switch st.Key {
		case KeyTargetKeyword:
			cfg.TargetKeyword = st.Value
		case KeyScanStartHour:
			if v, err := strconv.Atoi(st.Value); err == nil {
				cfg.ScanStartHour = v
			}
		case KeyScanEndHour:
			if v, err := strconv.Atoi(st.Value); err == nil {
				cfg.ScanEndHour = v
			}
		case KeyScanIntervalMinutes:
			if v, err := strconv.Atoi(st.Value); err == nil {
				cfg.ScanIntervalMinutes = v
			}
		case KeyTargetDailyCount:
			if v, err := strconv.Atoi(st.Value); err == nil {
				cfg.TargetDailyCount = v
			}
		}
	}
	return cfg, nil
}

// SaveSettings persists the typed settings.
func (s *Store) SaveSettings(cfg Settings) error {
	pairs := []Setting{
		{KeyTargetKeyword, cfg.TargetKeyword},
		{KeyScanStartHour, strconv.Itoa(cfg.ScanStartHour)},
		{KeyScanEndHour, strconv.Itoa(cfg.ScanEndHour)},
		{KeyScanIntervalMinutes, strconv.Itoa(cfg.ScanIntervalMinutes)},
		{KeyTargetDailyCount, strconv.Itoa(cfg.TargetDailyCount)},
	}
	for _, p := range pairs {
		if err := s.SetSetting(p.Key, p.Value); err != nil {
			return fmt.Errorf("save setting %q: %w", p.Key, err)
		}
	}
	return nil
}
