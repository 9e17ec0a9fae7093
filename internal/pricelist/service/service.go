// Package service runs the whole pipeline for one upload batch:
// extract -> normalize -> cluster -> compare. Failures at file and row
// granularity are recovered locally (skip and count); only a batch that
// yields no record at all is an error.
package service

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pbf-price-service/internal/extract"
	"pbf-price-service/internal/fileio"
	"pbf-price-service/internal/pricelist/compare"
	"pbf-price-service/internal/pricelist/match"
	"pbf-price-service/internal/pricelist/model"
	"pbf-price-service/internal/pricelist/normalize"
)

// ErrNoData means no file in the batch produced a single valid record.
var ErrNoData = errors.New("no data extracted")

// UploadedFile is one price list from the multipart request. PBF defaults to
// the filename stem when the client does not override it.
type UploadedFile struct {
	Name string
	PBF  string
	Data []byte
}

type Service struct {
	extractor *extract.Extractor
	log       zerolog.Logger
}

func New(layout extract.LayoutConfig, log zerolog.Logger) *Service {
	return &Service{
		extractor: extract.New(layout, log),
		log:       log,
	}
}

// Process runs one batch. The returned ResultSet always carries the per-file
// warnings, even when the batch as a whole fails with ErrNoData.
func (s *Service) Process(ctx context.Context, files []UploadedFile, opts model.Options) (*model.ResultSet, error) {
	rs := &model.ResultSet{
		Threshold: opts.Threshold,
		CreatedAt: time.Now(),
	}

	var records []model.PriceRecord
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return rs, err
		}
		pbf := f.PBF
		if pbf == "" {
			pbf = DistributorID(f.Name)
		}

		rows, err := s.fileRows(f, pbf, opts.DualTables)
		if err != nil {
			rs.Warnings = append(rs.Warnings, model.FileWarning{File: f.Name, Reason: err.Error()})
			s.log.Warn().Str("file", f.Name).Err(err).Msg("file skipped")
			continue
		}

		recs, skipped := normalize.Records(rows)
		rs.SkippedRows += skipped
		records = append(records, recs...)
		s.log.Info().
			Str("file", f.Name).
			Str("pbf", pbf).
			Int("rows", len(rows)).
			Int("records", len(recs)).
			Int("skipped", skipped).
			Msg("file extracted")
	}

	// stable input order drives clustering and price tie-breaks
	for i := range records {
		records[i].Seq = i
	}
	rs.Records = records

	if len(records) == 0 {
		return rs, ErrNoData
	}

	rs.Clusters, rs.Unmatched = match.Cluster(records, opts.Threshold)
	rs.Comparisons = compare.All(rs.Clusters)
	rs.Stats = compare.Statistics(records)
	rs.Performance = compare.Performance(rs.Comparisons)

	s.log.Info().
		Int("records", len(rs.Records)).
		Int("clusters", len(rs.Clusters)).
		Int("skipped_rows", rs.SkippedRows).
		Int("warnings", len(rs.Warnings)).
		Float64("threshold", opts.Threshold).
		Msg("batch processed")
	return rs, nil
}

// fileRows routes a file to the PDF extractor or the spreadsheet readers.
func (s *Service) fileRows(f UploadedFile, pbf string, dualTables bool) ([]model.RawRow, error) {
	if strings.EqualFold(filepath.Ext(f.Name), ".pdf") {
		return s.extractor.Extract(f.Data, pbf, dualTables)
	}
	if !fileio.Supported(f.Name) {
		return nil, &extract.ExtractionError{File: f.Name, Err: errors.New("unsupported file type")}
	}
	cells, err := fileio.ReadRows(bytes.NewReader(f.Data), f.Name)
	if err != nil {
		return nil, &extract.ExtractionError{File: f.Name, Err: err}
	}
	if len(cells) == 0 {
		return nil, &extract.ExtractionError{File: f.Name, Err: extract.ErrNoTable}
	}
	rows := make([]model.RawRow, 0, len(cells))
	for _, c := range cells {
		rows = append(rows, model.RawRow{Cells: c, Page: 1, Source: pbf})
	}
	return rows, nil
}

// DistributorID derives the PBF identifier from an uploaded filename:
// "lists/Kimia Farma Jan.pdf" -> "Kimia Farma Jan".
func DistributorID(name string) string {
	base := filepath.Base(name)
	return strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
}
