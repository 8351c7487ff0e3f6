// Package output writes scraped job records to CSV files.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"jobscrape/internal/domain"

	"github.com/gofrs/flock"
)

// WriteCSV replaces path with a UTF-8 CSV holding a header row of fields and
// one row per record. Keys a record lacks are written as empty cells.
// Concurrent writers to the same path are serialized through path+".lock".
func WriteCSV(path string, fields []string, records []domain.JobRecord) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer func() { _ = lock.Unlock() }()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := writeRows(f, fields, records); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func writeRows(f *os.File, fields []string, records []domain.JobRecord) error {
	w := csv.NewWriter(f)
	if err := w.Write(fields); err != nil {
		return err
	}
	row := make([]string, len(fields))
	for _, r := range records {
		for i, k := range fields {
			row[i] = r.Value(k)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadCSV loads a file written by WriteCSV back into records keyed by the
// header row.
func ReadCSV(path string) ([]string, []domain.JobRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("read %s: no header row", path)
	}

	header := rows[0]
	out := make([]domain.JobRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		r := domain.NewJobRecord()
		for i, k := range header {
			if i < len(row) {
				r.Set(k, row[i])
			}
		}
		out = append(out, r)
	}
	return header, out, nil
}
