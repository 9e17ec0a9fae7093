// Package extract pulls raw table rows out of PBF price-list PDFs using
// positioned text: rows grouped by Y coordinate, cells split on X gaps, and
// an optional gutter split for the side-by-side dual-table layouts some
// distributors print.
package extract

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"

	"pbf-price-service/internal/pricelist/model"
)

type Extractor struct {
	cfg LayoutConfig
	log zerolog.Logger
}

func New(cfg LayoutConfig, log zerolog.Logger) *Extractor {
	return &Extractor{cfg: cfg, log: log}
}

// Extract reads every page of the PDF and returns raw rows in page order.
// Unreadable, encrypted or table-less files fail with *ExtractionError;
// individual bad pages are skipped, not fatal.
func (e *Extractor) Extract(content []byte, source string, dualTables bool) ([]model.RawRow, error) {
	if len(content) == 0 {
		return nil, &ExtractionError{File: source, Err: errors.New("empty file")}
	}
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, &ExtractionError{File: source, Err: err}
	}

	var rows []model.RawRow
	for p := 1; p <= r.NumPage(); p++ {
		page := r.Page(p)
		if page.V.IsNull() {
			continue
		}
		pageRows, err := e.pageRows(page, p, source, dualTables)
		if err != nil {
			e.log.Debug().Str("file", source).Int("page", p).Err(err).Msg("page skipped")
			continue
		}
		rows = append(rows, pageRows...)
	}
	if len(rows) == 0 {
		return nil, &ExtractionError{File: source, Err: ErrNoTable}
	}
	return rows, nil
}

// pageRows extracts one page. Malformed content streams make the pdf library
// panic on occasion; that is contained here and reported as a skipped page.
func (e *Extractor) pageRows(page pdf.Page, pageNum int, source string, dualTables bool) (rows []model.RawRow, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			rows, err = nil, fmt.Errorf("content stream: %v", rec)
		}
	}()

	texts := filterTexts(page.Content().Text)
	if len(texts) == 0 {
		return nil, ErrNoTable
	}

	if dualTables {
		allRows := groupRows(texts, e.cfg.RowTolerance)
		left, right := textBounds(texts)
		if gutter, ok := detectGutter(allRows, left, right, e.cfg); ok {
			var ls, rs []pdf.Text
			for _, t := range texts {
				if t.X+t.W/2 < gutter {
					ls = append(ls, t)
				} else {
					rs = append(rs, t)
				}
			}
			rows = append(rows, e.regionRows(ls, pageNum, source, "left")...)
			rows = append(rows, e.regionRows(rs, pageNum, source, "right")...)
			return rows, nil
		}
	}
	return e.regionRows(texts, pageNum, source, ""), nil
}

// regionRows turns one table region into raw rows. Rows with fewer than two
// cells cannot carry a name and a price and are dropped here.
func (e *Extractor) regionRows(texts []pdf.Text, pageNum int, source, side string) []model.RawRow {
	var out []model.RawRow
	for _, row := range groupRows(texts, e.cfg.RowTolerance) {
		cells := rowCells(row, e.cfg)
		if len(cells) < 2 {
			continue
		}
		out = append(out, model.RawRow{
			Cells:  cells,
			Page:   pageNum,
			Side:   side,
			Source: source,
		})
	}
	return out
}

func filterTexts(texts []pdf.Text) []pdf.Text {
	out := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if s := t.S; s != "" && s != "\n" && s != " " {
			out = append(out, t)
		}
	}
	return out
}
