package export

import (
	"fmt"
	"os"
	"strings"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatCSV, "":
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", raw)
}

// Write renders reports into dir, creating it if needed, and returns the
// written file paths.
func Write(dir string, format Format, reports Reports) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed creating directory %s: %w", dir, err)
	}

	switch format {
	case FormatCSV:
		return WriteCSVFiles(dir, reports)
	case FormatXLSX:
		path, err := WriteXLSXFile(dir, reports)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}
