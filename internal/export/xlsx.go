package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WorkbookName is the file name WriteXLSXFile produces.
const WorkbookName = "analytics.xlsx"

// WriteXLSX renders every report as its own sheet, the expense matrix first.
func WriteXLSX(w io.Writer, reports Reports) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, t := range reports.tables() {
		sheet := sheetName(t.name)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}

		if err := writeSheet(f, sheet, t); err != nil {
			return err
		}
		if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
			return fmt.Errorf("failed to style sheet %s: %w", sheet, err)
		}
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, t table) error {
	header := make([]any, len(t.header))
	for i, h := range t.header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}

	for i, row := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func sheetName(name string) string {
	return strings.ToUpper(name[:1]) + name[1:]
}

// WriteXLSXFile writes the workbook into dir and returns its path.
func WriteXLSXFile(dir string, reports Reports) (string, error) {
	path := filepath.Join(dir, WorkbookName)
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create xlsx file %s: %w", path, err)
	}
	defer out.Close()

	if err := WriteXLSX(out, reports); err != nil {
		return "", fmt.Errorf("failed to write xlsx file %s: %w", path, err)
	}
	return path, out.Close()
}
