// Package export serializes a result set for download: CSV for quick
// spreadsheet imports, XLSX when typed numeric cells matter.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"pbf-price-service/internal/pricelist/model"
)

// RecordHeader is the canonical column order of the records table.
var RecordHeader = []string{"name", "unit", "stock", "discount", "price", "pbf", "page"}

// ComparisonHeader is the canonical column order of the comparison table.
var ComparisonHeader = []string{"name", "best_price", "best_pbf", "savings", "savings_pct", "avg_price", "worst_price", "worst_pbf", "count"}

// RecordsCSV writes the full record table as comma-delimited UTF-8.
func RecordsCSV(w io.Writer, records []model.PriceRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RecordHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Name,
			r.Unit,
			r.Stock,
			ftoa(r.Discount),
			ftoa(r.Price),
			r.PBF,
			strconv.Itoa(r.Page),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ComparisonsCSV writes the per-cluster comparison table. Undefined savings
// (single-offer clusters) export as empty cells, not zeros.
func ComparisonsCSV(w io.Writer, results []model.ComparisonResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ComparisonHeader); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Name,
			ftoa(r.BestPrice),
			r.Best.PBF,
			ftoaPtr(r.Savings),
			ftoaPtr(r.SavingsPct),
			ftoa(r.AvgPrice),
			ftoa(r.WorstPrice),
			r.WorstPBF,
			strconv.Itoa(r.Count),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func ftoaPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return ftoa(*v)
}
