package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"pbf-price-service/internal/pricelist/model"
)

// Prices outside this range are table artifacts (row numbers, codes,
// subtotals), not unit prices.
const (
	MinPrice = 100
	MaxPrice = 50_000_000
)

// MalformedRowError marks a row missing a resolvable name or price, or one
// with unparsable numerics. Callers count these, they never abort a batch.
type MalformedRowError struct {
	Reason string
	Row    model.RawRow
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row (page %d, %s): %s", e.Row.Page, e.Row.Source, e.Reason)
}

// NormalizeRow maps one raw row onto the canonical record shape using a
// resolved column map.
func NormalizeRow(row model.RawRow, cm ColumnMap) (model.PriceRecord, error) {
	name := ""
	if cm.Name >= 0 && cm.Name < len(row.Cells) {
		name = CleanName(row.Cells[cm.Name])
	}
	if name == "" {
		return model.PriceRecord{}, &MalformedRowError{Reason: "no medicine name", Row: row}
	}

	if cm.Price < 0 || cm.Price >= len(row.Cells) {
		return model.PriceRecord{}, &MalformedRowError{Reason: "no price cell", Row: row}
	}
	price, err := ParsePrice(row.Cells[cm.Price])
	if err != nil {
		return model.PriceRecord{}, &MalformedRowError{Reason: "unparsable price: " + err.Error(), Row: row}
	}
	if price < MinPrice || price > MaxPrice {
		return model.PriceRecord{}, &MalformedRowError{Reason: fmt.Sprintf("implausible price %.2f", price), Row: row}
	}

	rec := model.PriceRecord{
		Name:  name,
		Price: price,
		PBF:   row.Source,
		Page:  row.Page,
	}
	if cm.Stock >= 0 && cm.Stock < len(row.Cells) {
		rec.Stock = strings.TrimSpace(row.Cells[cm.Stock])
	}
	if cm.Unit >= 0 && cm.Unit < len(row.Cells) {
		rec.Unit = strings.TrimSpace(row.Cells[cm.Unit])
	}
	if cm.Discount >= 0 && cm.Discount < len(row.Cells) {
		if cell := strings.TrimSpace(row.Cells[cm.Discount]); cell != "" {
			d, err := ParsePercent(cell)
			if err != nil {
				return model.PriceRecord{}, &MalformedRowError{Reason: "unparsable discount: " + err.Error(), Row: row}
			}
			rec.Discount = d
		}
	}
	return rec, nil
}

// Records consumes the raw row stream of one file. A row that resolves both
// a name and a price header becomes the active column map for its table side;
// data rows are normalized against it. Rows seen before any header fall back
// to a positional heuristic. Returns the records plus the malformed-row count.
func Records(rows []model.RawRow) ([]model.PriceRecord, int) {
	active := map[string]ColumnMap{}
	var out []model.PriceRecord
	skipped := 0
	for _, r := range rows {
		if cm, ok := ResolveHeader(r.Cells); ok {
			active[r.Side] = cm
			continue
		}
		cm, ok := active[r.Side]
		if !ok {
			if rec, err := fallbackRow(r); err == nil {
				out = append(out, rec)
			} else {
				skipped++
			}
			continue
		}
		rec, err := NormalizeRow(r, cm)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, rec)
	}
	return out, skipped
}

// fallbackRow handles tables whose header never made it into the extraction:
// the rightmost plausible price cell wins, the longest remaining cell is the
// name.
func fallbackRow(row model.RawRow) (model.PriceRecord, error) {
	if len(row.Cells) < 2 {
		return model.PriceRecord{}, &MalformedRowError{Reason: "too few cells", Row: row}
	}
	priceIdx, price := -1, 0.0
	for i, c := range row.Cells {
		if v, err := ParsePrice(c); err == nil && v >= MinPrice && v <= MaxPrice {
			priceIdx, price = i, v
		}
	}
	if priceIdx < 0 {
		return model.PriceRecord{}, &MalformedRowError{Reason: "no plausible price", Row: row}
	}
	name := ""
	for i, c := range row.Cells {
		if i == priceIdx {
			continue
		}
		if cleaned := CleanName(c); len(cleaned) > len(name) {
			name = cleaned
		}
	}
	if name == "" {
		return model.PriceRecord{}, &MalformedRowError{Reason: "no medicine name", Row: row}
	}
	return model.PriceRecord{Name: name, Price: price, PBF: row.Source, Page: row.Page}, nil
}

var (
	leadingItemNum = regexp.MustCompile(`^\d+\.?\s+`)
	trailingDots   = regexp.MustCompile(`\s*\.+\s*$`)
	// header echoes and other non-medicine cells that leak into name columns
	nameArtifacts = regexp.MustCompile(`(?i)^\s*(no\.?|nama\s*(obat|barang|brg)?|barang|produk|product|harga(\s*jadi)?|hna(\s*\+?\s*ppn)?|hrg(\s*\+?\s*ppn)?|price|item|kode|satuan|kemasan|stok|qty|total|subtotal|\d+)\s*$`)
)

// CleanName keeps the distributor's spelling as printed, only stripping table
// artifacts: leading item numbers, trailing dot runs, header echoes.
func CleanName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" || nameArtifacts.MatchString(s) {
		return ""
	}
	s = leadingItemNum.ReplaceAllString(s, "")
	s = trailingDots.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if len(s) < 3 {
		return ""
	}
	return s
}
