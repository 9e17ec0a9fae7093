package extract

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LayoutConfig tunes the table-detection heuristics. PBF layouts vary and
// the dual-table boundary rule in particular is an empirical choice, so it
// is configuration rather than hard-coded fact.
type LayoutConfig struct {
	RowTolerance    float64 // Y distance for cells to share a row (points)
	CellGap         float64 // X gap that separates two cells
	WordSpace       float64 // multiplier of font size that separates words inside a cell
	GutterMinWidth  float64 // minimum width of a dual-table gutter
	GutterBandLo    float64 // gutter search band, fraction of page width
	GutterBandHi    float64
	MinGutterRowPct int // share of rows that must show the gutter
}

// DefaultLayout carries values tuned on real PBF price lists.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		RowTolerance:    3.0,
		CellGap:         10.0,
		WordSpace:       0.35,
		GutterMinWidth:  24.0,
		GutterBandLo:    0.35,
		GutterBandHi:    0.65,
		MinGutterRowPct: 40,
	}
}

// groupRows buckets positioned texts into visual rows by Y coordinate and
// returns them top to bottom (PDF Y grows upward).
func groupRows(texts []pdf.Text, tolerance float64) [][]pdf.Text {
	if len(texts) == 0 {
		return nil
	}
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var rows [][]pdf.Text
	cur := []pdf.Text{sorted[0]}
	curY := sorted[0].Y
	for _, t := range sorted[1:] {
		if curY-t.Y <= tolerance {
			cur = append(cur, t)
			continue
		}
		rows = append(rows, cur)
		cur = []pdf.Text{t}
		curY = t.Y
	}
	rows = append(rows, cur)
	return rows
}

// rowCells merges a row's texts left to right into cells: a gap wider than
// CellGap starts a new cell, a smaller gap wider than WordSpace*fontsize
// becomes a space inside the cell.
func rowCells(row []pdf.Text, cfg LayoutConfig) []string {
	sorted := make([]pdf.Text, len(row))
	copy(sorted, row)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var cells []string
	var cur strings.Builder
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			cells = append(cells, s)
		}
		cur.Reset()
	}
	for i, t := range sorted {
		if i > 0 {
			prev := sorted[i-1]
			gap := t.X - (prev.X + prev.W)
			fs := t.FontSize
			if fs == 0 {
				fs = 10
			}
			switch {
			case gap >= cfg.CellGap:
				flush()
			case gap > fs*cfg.WordSpace:
				cur.WriteByte(' ')
			}
		}
		cur.WriteString(t.S)
	}
	flush()
	return cells
}

// detectGutter looks for a vertical whitespace channel in the configured
// middle band of the page. A gutter that shows up on enough rows marks a
// dual-table layout; its average center X is the split point.
func detectGutter(rows [][]pdf.Text, left, right float64, cfg LayoutConfig) (float64, bool) {
	width := right - left
	if width <= 0 {
		return 0, false
	}
	lo := left + width*cfg.GutterBandLo
	hi := left + width*cfg.GutterBandHi

	hits, sum, usable := 0, 0.0, 0
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		usable++
		sorted := make([]pdf.Text, len(row))
		copy(sorted, row)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })
		for i := 0; i < len(sorted)-1; i++ {
			gl := sorted[i].X + sorted[i].W
			gr := sorted[i+1].X
			if gr-gl < cfg.GutterMinWidth {
				continue
			}
			if c := (gl + gr) / 2; c >= lo && c <= hi {
				hits++
				sum += c
				break
			}
		}
	}
	if usable == 0 {
		return 0, false
	}
	need := usable * cfg.MinGutterRowPct / 100
	if need < 3 {
		need = 3
	}
	if hits < need {
		return 0, false
	}
	return sum / float64(hits), true
}

func textBounds(texts []pdf.Text) (left, right float64) {
	left, right = texts[0].X, texts[0].X+texts[0].W
	for _, t := range texts[1:] {
		if t.X < left {
			left = t.X
		}
		if r := t.X + t.W; r > right {
			right = r
		}
	}
	return left, right
}
