package compare

import (
	"sort"

	"pbf-price-service/internal/pricelist/model"
)

// Cluster ranks one cluster's offers ascending by price and derives savings.
// Price ties keep input order (lower Seq wins). Savings are measured against
// the second-best offer and remain nil for single-member clusters.
func Cluster(c model.MedicineCluster) model.ComparisonResult {
	members := make([]model.PriceRecord, len(c.Records))
	copy(members, c.Records)
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Price != members[j].Price {
			return members[i].Price < members[j].Price
		}
		return members[i].Seq < members[j].Seq
	})

	best := members[0]
	worst := members[len(members)-1]

	sum := 0.0
	byPBF := make(map[string]float64, len(members))
	for _, m := range members {
		sum += m.Price
		if v, ok := byPBF[m.PBF]; !ok || m.Price < v {
			byPBF[m.PBF] = m.Price
		}
	}
	avg := sum / float64(len(members))

	res := model.ComparisonResult{
		Name:         c.Name,
		Best:         best,
		BestPrice:    best.Price,
		WorstPrice:   worst.Price,
		WorstPBF:     worst.PBF,
		AvgPrice:     avg,
		SavingsVsAvg: avg - best.Price,
		Count:        len(members),
		PriceByPBF:   byPBF,
	}
	if len(members) >= 2 {
		second := members[1].Price
		s := second - best.Price
		res.Savings = &s
		pct := 0.0
		if second > 0 {
			pct = s / second * 100
		}
		res.SavingsPct = &pct
	}
	return res
}

// All compares every cluster and orders the results by savings percentage,
// highest first; clusters without savings sink to the end in input order.
func All(clusters []model.MedicineCluster) []model.ComparisonResult {
	out := make([]model.ComparisonResult, 0, len(clusters))
	for _, c := range clusters {
		out = append(out, Cluster(c))
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := -1.0, -1.0
		if out[i].SavingsPct != nil {
			pi = *out[i].SavingsPct
		}
		if out[j].SavingsPct != nil {
			pj = *out[j].SavingsPct
		}
		return pi > pj
	})
	return out
}

// TopDeals returns the n comparisons with the highest savings percentage,
// assuming results are in All's order. Single-offer clusters never qualify.
func TopDeals(results []model.ComparisonResult, n int) []model.ComparisonResult {
	out := make([]model.ComparisonResult, 0, n)
	for _, r := range results {
		if r.SavingsPct == nil {
			continue
		}
		out = append(out, r)
		if len(out) == n {
			break
		}
	}
	return out
}

// Statistics summarizes the whole record table.
func Statistics(records []model.PriceRecord) model.Stats {
	st := model.Stats{RecordsPerPBF: map[string]int{}}
	if len(records) == 0 {
		return st
	}
	prices := make([]float64, 0, len(records))
	sum := 0.0
	for _, r := range records {
		prices = append(prices, r.Price)
		sum += r.Price
		st.RecordsPerPBF[r.PBF]++
	}
	sort.Float64s(prices)
	st.TotalRecords = len(records)
	st.TotalPBFs = len(st.RecordsPerPBF)
	st.MinPrice = prices[0]
	st.MaxPrice = prices[len(prices)-1]
	st.AvgPrice = sum / float64(len(prices))
	if n := len(prices); n%2 == 1 {
		st.MedianPrice = prices[n/2]
	} else {
		st.MedianPrice = (prices[n/2-1] + prices[n/2]) / 2
	}
	return st
}

// Performance reports, per distributor, how often it offered the best price
// among the clusters it competed in.
func Performance(results []model.ComparisonResult) []model.PBFPerformance {
	acc := map[string]*model.PBFPerformance{}
	get := func(pbf string) *model.PBFPerformance {
		p, ok := acc[pbf]
		if !ok {
			p = &model.PBFPerformance{PBF: pbf}
			acc[pbf] = p
		}
		return p
	}
	for _, r := range results {
		for pbf := range r.PriceByPBF {
			get(pbf).Contested++
		}
		w := get(r.Best.PBF)
		w.Wins++
		if r.Savings != nil {
			w.TotalSavings += *r.Savings
		}
	}
	out := make([]model.PBFPerformance, 0, len(acc))
	for _, p := range acc {
		if p.Contested > 0 {
			p.WinRate = float64(p.Wins) / float64(p.Contested) * 100
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].PBF < out[j].PBF
	})
	return out
}
