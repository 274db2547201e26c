package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fiscalworks/DOCKET/internal/knapsack"
)

// WritePool persists a preprocessed pool under the given path prefix:
// <prefix>.csv with the normalized records and <prefix>.meta.json with
// the retention counts.
func WritePool(prefix string, pool *Pool, meta *Meta) error {
	if err := writeCSV(prefix+".csv", pool.Header, pool.Rows); err != nil {
		return err
	}
	return writeJSON(prefix+".meta.json", meta)
}

// WriteSelection persists the selected cases as <prefix>.csv, keeping
// the pool's columns, and the run summary as <prefix>.json.
func WriteSelection(prefix string, pool *Pool, selected []int, summary knapsack.Summary) error {
	rows := make([][]string, 0, len(selected))
	for _, i := range selected {
		if i < 0 || i >= pool.Len() {
			return fmt.Errorf("selection index %d out of range for pool of %d", i, pool.Len())
		}
		rows = append(rows, pool.Rows[i])
	}
	if err := writeCSV(prefix+".csv", pool.Header, rows); err != nil {
		return err
	}
	return writeJSON(prefix+".json", summary)
}

func writeCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
