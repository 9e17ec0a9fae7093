// Package fileio reads spreadsheet price lists (CSV, XLS, XLSX) into ordered
// cell rows, the same shape the PDF extractor produces, so the normalizer
// does not care which format a distributor ships.
package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ReadRows picks a parser by extension and returns the sheet as rows of
// trimmed cells, fully empty rows dropped.
func ReadRows(r io.Reader, filename string) ([][]string, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx":
		return readXLSX(r)
	case ".xls":
		return readXLS(r)
	case ".csv":
		return readCSV(r)
	default:
		return nil, fmt.Errorf("unsupported file: %s", filename)
	}
}

// Supported reports whether ReadRows can handle the file.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls", ".csv":
		return true
	}
	return false
}

func dropEmptyRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		empty := true
		for i, c := range row {
			row[i] = strings.TrimSpace(c)
			if row[i] != "" {
				empty = false
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}
