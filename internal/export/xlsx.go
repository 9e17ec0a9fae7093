package export

import (
	"fmt"

	excelize "github.com/xuri/excelize/v2"

	"pbf-price-service/internal/pricelist/model"
)

// XLSX builds a two-sheet workbook (records + comparisons) with numeric
// cells kept numeric so spreadsheet formulas work on them directly.
func XLSX(rs *model.ResultSet) ([]byte, error) {
	f := excelize.NewFile()

	const recSheet = "Records"
	const cmpSheet = "Comparisons"

	idx, err := f.NewSheet(recSheet)
	if err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(cmpSheet); err != nil {
		return nil, err
	}
	// drop the default sheet, keep Records active
	_ = f.DeleteSheet("Sheet1")
	f.SetActiveSheet(idx)

	set := func(sheet string, col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	for i, h := range RecordHeader {
		set(recSheet, i+1, 1, h)
	}
	for i, r := range rs.Records {
		row := i + 2
		set(recSheet, 1, row, r.Name)
		set(recSheet, 2, row, r.Unit)
		set(recSheet, 3, row, r.Stock)
		set(recSheet, 4, row, r.Discount)
		set(recSheet, 5, row, r.Price)
		set(recSheet, 6, row, r.PBF)
		set(recSheet, 7, row, r.Page)
	}

	for i, h := range ComparisonHeader {
		set(cmpSheet, i+1, 1, h)
	}
	for i, c := range rs.Comparisons {
		row := i + 2
		set(cmpSheet, 1, row, c.Name)
		set(cmpSheet, 2, row, c.BestPrice)
		set(cmpSheet, 3, row, c.Best.PBF)
		if c.Savings != nil {
			set(cmpSheet, 4, row, *c.Savings)
		}
		if c.SavingsPct != nil {
			set(cmpSheet, 5, row, *c.SavingsPct)
		}
		set(cmpSheet, 6, row, c.AvgPrice)
		set(cmpSheet, 7, row, c.WorstPrice)
		set(cmpSheet, 8, row, c.WorstPBF)
		set(cmpSheet, 9, row, c.Count)
	}

	_ = f.SetColWidth(recSheet, "A", "A", 42)
	_ = f.SetColWidth(recSheet, "E", "E", 14)
	_ = f.SetColWidth(cmpSheet, "A", "A", 42)
	_ = f.SetColWidth(cmpSheet, "B", "G", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
