package match

import "pbf-price-service/internal/pricelist/model"

// Trigram pruning is only sound when matching keys must share at least one
// trigram. A key of n runes yields n padded trigrams and a single edit can
// destroy up to four of them, so two keys within distance d are guaranteed a
// shared trigram only when 4d < n, i.e. similarity above 3/4. Below this
// threshold every cluster is scanned instead.
const pruneFloor = 0.75

// Cluster partitions records into medicine clusters with greedy first-match
// assignment: records are visited in input order and join the earliest
// cluster whose representative key is at least threshold-similar, otherwise
// they found a new cluster. The result is a partition - every record with a
// non-empty key lands in exactly one cluster; records whose name normalizes
// to nothing are returned separately as unmatched.
func Cluster(records []model.PriceRecord, threshold float64) ([]model.MedicineCluster, []model.PriceRecord) {
	var (
		clusters  []model.MedicineCluster
		unmatched []model.PriceRecord
		reps      []string
		repUnits  [][]string
		idx       = newRepIndex()
	)

	for _, rec := range records {
		key := Key(rec.Name)
		if key == "" {
			unmatched = append(unmatched, rec)
			continue
		}
		rec.MatchKey = key
		units := numUnits(key)

		assigned := -1
		if threshold >= pruneFloor {
			for _, ci := range idx.candidates(key) {
				if matches(key, units, reps[ci], repUnits[ci], threshold) {
					assigned = ci
					break
				}
			}
		} else {
			for ci := range reps {
				if matches(key, units, reps[ci], repUnits[ci], threshold) {
					assigned = ci
					break
				}
			}
		}

		if assigned >= 0 {
			clusters[assigned].Records = append(clusters[assigned].Records, rec)
			continue
		}
		clusters = append(clusters, model.MedicineCluster{
			Representative: key,
			Name:           rec.Name,
			Records:        []model.PriceRecord{rec},
		})
		reps = append(reps, key)
		repUnits = append(repUnits, units)
		idx.add(key, len(reps)-1)
	}
	return clusters, unmatched
}

// matches accepts an exact key hit outright; fuzzy hits additionally require
// the number+unit multisets to agree, so "paracetamol 500mg" never absorbs
// the 250mg variant however similar the spelling.
func matches(key string, units []string, rep string, repUnits []string, threshold float64) bool {
	if key == rep {
		return true
	}
	if !equalNumUnits(units, repUnits) {
		return false
	}
	return similarity(key, rep) >= threshold
}
