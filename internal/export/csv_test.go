package export

import (
	"bytes"
	"encoding/csv"
	"math"
	"strconv"
	"testing"

	"pbf-price-service/internal/pricelist/model"
)

func TestComparisonsCSVRoundTrip(t *testing.T) {
	s := 50.0
	pct := 5.0
	results := []model.ComparisonResult{
		{
			Name:       "Paracetamol 500mg",
			Best:       model.PriceRecord{Name: "Paracetamol 500mg", PBF: "PBF_B", Price: 950},
			BestPrice:  950,
			WorstPrice: 1000,
			WorstPBF:   "PBF_A",
			AvgPrice:   975,
			Savings:    &s,
			SavingsPct: &pct,
			Count:      2,
		},
		{
			Name:       "Amoxicillin 250mg",
			Best:       model.PriceRecord{Name: "Amoxicillin 250mg", PBF: "PBF_A", Price: 2000},
			BestPrice:  2000,
			WorstPrice: 2000,
			WorstPBF:   "PBF_A",
			AvgPrice:   2000,
			Count:      1,
		},
	}

	var buf bytes.Buffer
	if err := ComparisonsCSV(&buf, results); err != nil {
		t.Fatalf("write: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "name" || rows[0][1] != "best_price" || rows[0][3] != "savings" {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	for i, want := range results {
		got := rows[i+1]
		if got[0] != want.Name {
			t.Errorf("row %d name = %q, want %q", i, got[0], want.Name)
		}
		bp, _ := strconv.ParseFloat(got[1], 64)
		if math.Abs(bp-want.BestPrice) > 0.01 {
			t.Errorf("row %d best_price = %v, want %v", i, bp, want.BestPrice)
		}
		if want.Savings == nil {
			if got[3] != "" {
				t.Errorf("row %d: undefined savings must export empty, got %q", i, got[3])
			}
			continue
		}
		sv, _ := strconv.ParseFloat(got[3], 64)
		if math.Abs(sv-*want.Savings) > 0.01 {
			t.Errorf("row %d savings = %v, want %v", i, sv, *want.Savings)
		}
	}
}

func TestRecordsCSVHeader(t *testing.T) {
	var buf bytes.Buffer
	err := RecordsCSV(&buf, []model.PriceRecord{
		{Name: "Cetirizine 10mg", Unit: "TABLET", Price: 3500, PBF: "PBF_A", Page: 2},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "name" || rows[1][0] != "Cetirizine 10mg" || rows[1][6] != "2" {
		t.Errorf("unexpected csv: %v", rows)
	}
}

func TestXLSXBuilds(t *testing.T) {
	s := 50.0
	rs := &model.ResultSet{
		Records: []model.PriceRecord{
			{Name: "Paracetamol 500mg", Price: 950, PBF: "PBF_B", Page: 1},
		},
		Comparisons: []model.ComparisonResult{
			{Name: "Paracetamol 500mg", BestPrice: 950, Savings: &s, Count: 2},
		},
	}
	b, err := XLSX(rs)
	if err != nil {
		t.Fatalf("xlsx: %v", err)
	}
	if len(b) == 0 {
		t.Error("empty workbook")
	}
}
