package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/wifitrackr/internal/stats"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSession struct {
	SessionID int64    `json:"session_id"`
	Time      string   `json:"time"`
	Keyword   string   `json:"keyword"`
	ScanType  string   `json:"scan_type"`
	Count     int      `json:"network_count"`
	Networks  []string `json:"networks"`
}

func ToJSON(sessions []stats.Session, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
	}

	for _, s := range sessions {
		export.Sessions = append(export.Sessions, jsonSession{
			SessionID: s.SessionID,
			Time:      s.Time().Format(time.RFC3339),
			Keyword:   s.MatchedKeyword,
			ScanType:  s.ScanType,
			Count:     s.NetworkCount,
			Networks:  s.NetworkNames,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
