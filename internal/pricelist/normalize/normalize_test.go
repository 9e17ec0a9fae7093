package normalize

import (
	"testing"

	"pbf-price-service/internal/pricelist/model"
)

func row(source string, cells ...string) model.RawRow {
	return model.RawRow{Cells: cells, Page: 1, Source: source}
}

func TestResolveHeader(t *testing.T) {
	cases := []struct {
		name  string
		cells []string
		ok    bool
	}{
		{"KimiaFarma", []string{"NO", "NAMA BARANG", "SATUAN", "HNA+PPN"}, true},
		{"Enseval", []string{"NAMA BRG", "QTY", "HRG + PPN"}, true},
		{"Pharos", []string{"NAMA OBAT", "HARGA JADI", "DISKON"}, true},
		{"Guardian", []string{"PRODUK", "STOK TERAKHIR", "HARGA"}, true},
		{"underscores", []string{"nama_barang", "hna_ppn"}, true},
		{"data row", []string{"Paracetamol 500mg", "1500"}, false},
		{"name only", []string{"NAMA BARANG", "KETERANGAN"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cm, ok := ResolveHeader(tc.cells)
			if ok != tc.ok {
				t.Fatalf("ResolveHeader(%v) ok = %v, want %v", tc.cells, ok, tc.ok)
			}
			if ok && (cm.Name < 0 || cm.Price < 0) {
				t.Errorf("resolved map missing name/price: %+v", cm)
			}
		})
	}
}

func TestLookupFieldCompositeDeterministic(t *testing.T) {
	// "harga" (price) and "obat" (name) both appear; the longer alias must win
	// on every run, never map order
	for i := 0; i < 50; i++ {
		f, ok := lookupField("HARGA OBAT")
		if !ok || f != FieldPrice {
			t.Fatalf("lookupField(HARGA OBAT) = %v, %v, want FieldPrice", f, ok)
		}
	}
}

func TestRecordsStream(t *testing.T) {
	rows := []model.RawRow{
		row("PBF_A", "NAMA BARANG", "SATUAN", "HNA+PPN", "DISKON"),
		row("PBF_A", "Paracetamol 500mg", "TABLET", "Rp 1.000", "2,5%"),
		row("PBF_A", "Amoxicillin 250mg", "KAPSUL", "2.000", ""),
		row("PBF_A", "Ibuprofen 200mg", "TABLET", "N/A", ""), // unparsable price
		row("PBF_A", "OBH Sirup", "BOTOL", "25", ""),         // below plausible range
	}
	recs, skipped := Records(rows)
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2: %+v", len(recs), recs)
	}
	if skipped != 2 {
		t.Errorf("skipped = %d, want 2", skipped)
	}

	p := recs[0]
	if p.Name != "Paracetamol 500mg" || p.Price != 1000 || p.Discount != 2.5 || p.Unit != "TABLET" {
		t.Errorf("unexpected first record: %+v", p)
	}
	if a := recs[1]; a.Discount != 0 {
		t.Errorf("absent discount should default to 0, got %v", a.Discount)
	}
}

func TestRecordsSeparateSides(t *testing.T) {
	left := model.RawRow{Cells: []string{"NAMA BRG", "HRG+PPN"}, Page: 1, Side: "left", Source: "PBF_A"}
	leftData := model.RawRow{Cells: []string{"Cetirizine 10mg", "3.500"}, Page: 1, Side: "left", Source: "PBF_A"}
	// right side has its own header with more columns
	right := model.RawRow{Cells: []string{"NAMA BRG", "STOK", "HRG+PPN"}, Page: 1, Side: "right", Source: "PBF_A"}
	rightData := model.RawRow{Cells: []string{"Loratadine 10mg", "12", "4.200"}, Page: 1, Side: "right", Source: "PBF_A"}

	recs, skipped := Records([]model.RawRow{left, right, leftData, rightData})
	if skipped != 0 || len(recs) != 2 {
		t.Fatalf("got %d records (%d skipped), want 2 (0)", len(recs), skipped)
	}
	if recs[0].Price != 3500 || recs[1].Price != 4200 {
		t.Errorf("side-local column maps not applied: %+v", recs)
	}
	if recs[1].Stock != "12" {
		t.Errorf("right-side stock column lost: %+v", recs[1])
	}
}

func TestRecordsFallbackWithoutHeader(t *testing.T) {
	rows := []model.RawRow{
		row("PBF_A", "1", "Paracetamol 500mg Strip", "1.500"),
		row("PBF_A", "2", "just text without price", "catatan"),
	}
	recs, skipped := Records(rows)
	if len(recs) != 1 || skipped != 1 {
		t.Fatalf("got %d records (%d skipped), want 1 (1)", len(recs), skipped)
	}
	if recs[0].Name != "Paracetamol 500mg Strip" || recs[0].Price != 1500 {
		t.Errorf("unexpected fallback record: %+v", recs[0])
	}
}
