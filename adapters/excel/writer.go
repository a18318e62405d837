package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Write exports a report, choosing the format from the file extension.
// A .xlsx path gets one workbook with a sheet per table. A .csv path gets
// one file per sheet; with several sheets the sheet name is appended to
// the base name. It returns the paths written.
func Write(path string, report Report) ([]string, error) {
	if len(report.Sheets) == 0 {
		return nil, fmt.Errorf("report has no sheets")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		if err := WriteXLSX(path, report); err != nil {
			return nil, err
		}
		return []string{path}, nil
	case ".csv":
		if len(report.Sheets) == 1 {
			if err := WriteCSV(path, report.Sheets[0]); err != nil {
				return nil, err
			}
			return []string{path}, nil
		}
		base := strings.TrimSuffix(path, filepath.Ext(path))
		paths := make([]string, 0, len(report.Sheets))
		for _, sheet := range report.Sheets {
			p := base + "_" + strings.ToLower(sheet.Name) + ".csv"
			if err := WriteCSV(p, sheet); err != nil {
				return paths, err
			}
			paths = append(paths, p)
		}
		return paths, nil
	}
	return nil, fmt.Errorf("unsupported export format: %s", path)
}

// WriteCSV writes one sheet as a CSV file
func WriteCSV(path string, sheet Sheet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(sheet.Headers); err != nil {
		return err
	}
	for _, row := range sheet.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = formatCell(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteXLSX writes every sheet of the report into one workbook
func WriteXLSX(path string, report Report) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range report.Sheets {
		if i == 0 {
			// the new workbook starts with Sheet1
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return err
		}

		// Header row
		for c, h := range sheet.Headers {
			cell, _ := excelize.CoordinatesToCellName(c+1, 1)
			if err := f.SetCellValue(sheet.Name, cell, h); err != nil {
				return err
			}
		}

		// Data rows
		for r, row := range sheet.Rows {
			for c, v := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
				if err := f.SetCellValue(sheet.Name, cell, v); err != nil {
					return err
				}
			}
		}
	}

	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

func formatCell(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}
