package model

import "time"

// RawRow is one extracted table row before normalization: ordered text cells
// plus enough provenance to trace it back to a page of a distributor file.
type RawRow struct {
	Cells  []string
	Page   int
	Side   string // "left" / "right" on dual-table pages, "" otherwise
	Source string // distributor id, derived from the filename
}

// PriceRecord is the canonical record shape shared by all distributor formats.
type PriceRecord struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit,omitempty"`
	Stock    string  `json:"stock,omitempty"`
	Discount float64 `json:"discount"` // percentage in [0,100)
	Price    float64 `json:"price"`
	PBF      string  `json:"pbf"`
	Page     int     `json:"page"`

	// Seq is the position in the combined input sequence; clustering and
	// price tie-breaks depend on it being stable.
	Seq      int    `json:"-"`
	MatchKey string `json:"-"`
}

// MedicineCluster groups records judged to refer to the same medicine.
// The representative is the match key of the first record assigned.
type MedicineCluster struct {
	Representative string        `json:"representative"`
	Name           string        `json:"name"`
	Records        []PriceRecord `json:"records"`
}

// ComparisonResult ranks one cluster's offers. Savings fields are nil for
// single-member clusters: with no second offer they are undefined, not zero.
type ComparisonResult struct {
	Name         string             `json:"name"`
	Best         PriceRecord        `json:"best"`
	BestPrice    float64            `json:"best_price"`
	WorstPrice   float64            `json:"worst_price"`
	WorstPBF     string             `json:"worst_pbf"`
	AvgPrice     float64            `json:"avg_price"`
	Savings      *float64           `json:"savings,omitempty"`
	SavingsPct   *float64           `json:"savings_pct,omitempty"`
	SavingsVsAvg float64            `json:"savings_vs_avg"`
	Count        int                `json:"count"`
	PriceByPBF   map[string]float64 `json:"price_by_pbf"`
}

// FileWarning reports a file that was skipped without aborting the batch.
type FileWarning struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

type Stats struct {
	TotalRecords  int            `json:"total_records"`
	TotalPBFs     int            `json:"total_pbfs"`
	MinPrice      float64        `json:"min_price"`
	MaxPrice      float64        `json:"max_price"`
	AvgPrice      float64        `json:"avg_price"`
	MedianPrice   float64        `json:"median_price"`
	RecordsPerPBF map[string]int `json:"records_per_pbf"`
}

// PBFPerformance summarizes how often a distributor offers the best price.
type PBFPerformance struct {
	PBF          string  `json:"pbf"`
	Wins         int     `json:"wins"`
	Contested    int     `json:"contested"`
	WinRate      float64 `json:"win_rate"`
	TotalSavings float64 `json:"total_savings"`
}

// ResultSet holds everything one processing run produced. It is built once
// per upload batch, stored in the session store, and never mutated after.
type ResultSet struct {
	Records     []PriceRecord      `json:"records"`
	Clusters    []MedicineCluster  `json:"clusters"`
	Comparisons []ComparisonResult `json:"comparisons"`
	Unmatched   []PriceRecord      `json:"unmatched,omitempty"`
	Warnings    []FileWarning      `json:"warnings,omitempty"`
	SkippedRows int                `json:"skipped_rows"`
	Stats       Stats              `json:"stats"`
	Performance []PBFPerformance   `json:"performance"`
	Threshold   float64            `json:"threshold"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Options are the per-run tunables supplied by the caller.
type Options struct {
	Threshold  float64 // name-similarity threshold in (0,1]
	DualTables bool    // attempt left/right table detection on PDF pages
}
