package match

import "sort"

// repIndex is a trigram inverted index over cluster representative keys.
// It prunes the candidate set for a record without changing the greedy
// first-match order: candidates are returned in cluster-creation order.
type repIndex struct {
	inv map[string]map[int]struct{}
}

func newRepIndex() *repIndex {
	return &repIndex{inv: make(map[string]map[int]struct{})}
}

func (ix *repIndex) add(key string, cluster int) {
	for g := range trigramSet(key) {
		bucket, ok := ix.inv[g]
		if !ok {
			bucket = make(map[int]struct{})
			ix.inv[g] = bucket
		}
		bucket[cluster] = struct{}{}
	}
}

func (ix *repIndex) candidates(key string) []int {
	seen := make(map[int]struct{})
	for g := range trigramSet(key) {
		for c := range ix.inv[g] {
			seen[c] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Ints(out)
	return out
}

// trigramSet pads the key with sentinel spaces so short keys still index.
func trigramSet(s string) map[string]struct{} {
	m := make(map[string]struct{})
	if s == "" {
		return m
	}
	r := []rune(" " + s + " ")
	if len(r) < 3 {
		m[string(r)] = struct{}{}
		return m
	}
	for i := 0; i <= len(r)-3; i++ {
		m[string(r[i:i+3])] = struct{}{}
	}
	return m
}
