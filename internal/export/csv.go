package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

func writeCSV(w io.Writer, t table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", t.name, err)
	}

	record := make([]string, len(t.header))
	for _, row := range t.rows {
		for i, cell := range row {
			record[i] = formatCell(cell)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write %s row: %w", t.name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFiles writes one CSV file per report into dir and returns their paths.
func WriteCSVFiles(dir string, reports Reports) ([]string, error) {
	var paths []string
	for _, t := range reports.tables() {
		path := filepath.Join(dir, t.name+".csv")
		if err := writeCSVFile(path, t); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSVFile(path string, t table) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file %s: %w", path, err)
	}
	defer out.Close()

	if err := writeCSV(out, t); err != nil {
		return fmt.Errorf("failed to write csv file %s: %w", path, err)
	}
	return out.Close()
}
