package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/wifitrackr/internal/store"
)

func ToCSV(records []store.ScanRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Time", "Network", "Keyword", "Session", "Type"}); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			fmt.Sprintf("%d", r.ID),
			r.Time().Format("2006-01-02 15:04:05"),
			r.NetworkName,
			r.MatchedKeyword,
			fmt.Sprintf("%d", r.SessionID),
			r.ScanType,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
