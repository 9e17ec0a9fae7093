package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"pbf-price-service/internal/extract"
	"pbf-price-service/internal/pricelist/model"
)

func newTestService() *Service {
	return New(extract.DefaultLayout(), zerolog.Nop())
}

func csvFile(name string, body string) UploadedFile {
	return UploadedFile{Name: name, Data: []byte(body)}
}

func TestProcessBatch(t *testing.T) {
	files := []UploadedFile{
		csvFile("PBF_A.csv", "NAMA BARANG,SATUAN,HNA+PPN\nParacetamol 500mg,TABLET,1.000\nAmoxicillin 250mg,KAPSUL,2.000\n"),
		csvFile("PBF_B.csv", "NAMA BRG,HRG+PPN\nParacetamol 500 mg,950\n"),
		{Name: "PBF_C.pdf", Data: []byte("not a pdf at all")},
	}

	rs, err := newTestService().Process(context.Background(), files, model.Options{Threshold: 0.8, DualTables: true})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(rs.Warnings) != 1 || rs.Warnings[0].File != "PBF_C.pdf" {
		t.Fatalf("warnings = %+v, want one for PBF_C.pdf", rs.Warnings)
	}
	if len(rs.Records) != 3 {
		t.Fatalf("got %d records, want 3: %+v", len(rs.Records), rs.Records)
	}
	if len(rs.Clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(rs.Clusters))
	}

	var para *model.ComparisonResult
	for i := range rs.Comparisons {
		if rs.Comparisons[i].Count == 2 {
			para = &rs.Comparisons[i]
		}
	}
	if para == nil {
		t.Fatal("paracetamol comparison missing")
	}
	if para.BestPrice != 950 || para.Best.PBF != "PBF_B" {
		t.Errorf("best = %v from %s, want 950 from PBF_B", para.BestPrice, para.Best.PBF)
	}
	if para.Savings == nil || *para.Savings != 50 {
		t.Errorf("savings = %v, want 50", para.Savings)
	}

	if rs.Stats.TotalPBFs != 2 || rs.Stats.TotalRecords != 3 {
		t.Errorf("stats: %+v", rs.Stats)
	}
}

func TestProcessNoData(t *testing.T) {
	files := []UploadedFile{
		{Name: "empty.pdf", Data: nil},
		csvFile("noise.csv", "just,some,text\nwithout,any,prices\n"),
	}
	rs, err := newTestService().Process(context.Background(), files, model.Options{Threshold: 0.8})
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
	if rs == nil || len(rs.Warnings) != 1 {
		t.Errorf("failed batch must still report warnings: %+v", rs)
	}
	if rs.SkippedRows != 2 {
		t.Errorf("skipped = %d, want 2", rs.SkippedRows)
	}
}

func TestProcessSeqFollowsInputOrder(t *testing.T) {
	files := []UploadedFile{
		csvFile("PBF_A.csv", "NAMA BARANG,HARGA\nObat Satu,1.000\nObat Dua,2.000\n"),
		csvFile("PBF_B.csv", "NAMA BARANG,HARGA\nObat Tiga,3.000\n"),
	}
	rs, err := newTestService().Process(context.Background(), files, model.Options{Threshold: 0.8})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i, r := range rs.Records {
		if r.Seq != i {
			t.Fatalf("record %d has Seq %d", i, r.Seq)
		}
	}
	if rs.Records[0].PBF != "PBF_A" || rs.Records[2].PBF != "PBF_B" {
		t.Errorf("file order not preserved: %+v", rs.Records)
	}
}

func TestProcessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestService().Process(ctx, []UploadedFile{csvFile("a.csv", "NAMA,HARGA\nX,1.000\n")}, model.Options{Threshold: 0.8})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestDistributorID(t *testing.T) {
	cases := map[string]string{
		"Kimia Farma Jan.pdf": "Kimia Farma Jan",
		"lists/enseval.xlsx":  "enseval",
		"HARGA_2026.CSV":      "HARGA_2026",
		"plain":               "plain",
	}
	for in, want := range cases {
		if got := DistributorID(in); got != want {
			t.Errorf("DistributorID(%q) = %q, want %q", in, got, want)
		}
	}
}
