package match

import (
	"regexp"
	"sort"
	"strings"
)

// Dose and packaging unit words that appear on Indonesian price lists.
// Longer alternatives must come first so the regexp prefers them.
const unitWord = `tablet|kapsul|kaplet|caps|ampul|botol|strip|sirup|vial|supp|tab|amp|btl|fls|syr|box|pcs|mcg|mg|ml|cc|iu|kg|g|l|%`

var (
	decComma = regexp.MustCompile(`(\d),(\d)`)
	// keep . and % so dosages like "0.5%" survive punctuation stripping
	punct         = regexp.MustCompile(`[^\p{L}\p{N}\s.%]+`)
	reAttachUnit  = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(` + unitWord + `)\b`)
	reNumUnitFind = regexp.MustCompile(`(?i)\d+(?:\.\d+)?(?:` + unitWord + `)`)
)

// Key builds the clustering key for a medicine name: lowercase, decimal
// comma to dot, punctuation to spaces, number+unit pairs glued together
// ("500 mg" -> "500mg"), tokens sorted. Token sorting lives in the key, not
// in the similarity metric, so a threshold of 1.0 degenerates to exact
// equality of keys.
func Key(name string) string {
	if name == "" {
		return ""
	}
	out := strings.ToLower(name)
	out = decComma.ReplaceAllString(out, "$1.$2")
	out = punct.ReplaceAllString(out, " ")
	out = collapseSpaces(out)
	out = attachNumberUnits(out)

	f := strings.Fields(out)
	sort.Strings(f)
	return strings.Join(f, " ")
}

// attachNumberUnits glues "number unit" pairs iteratively until fixpoint so
// runs like "5 x 10 ml" settle.
func attachNumberUnits(s string) string {
	prev := ""
	for s != prev {
		prev = s
		s = reAttachUnit.ReplaceAllString(s, "$1$2")
		s = collapseSpaces(s)
	}
	return s
}

// numUnits extracts the sorted multiset of glued number+unit tokens, used to
// keep "500mg" and "250mg" variants of the same brand apart.
func numUnits(s string) []string {
	mm := reNumUnitFind.FindAllString(s, -1)
	sort.Strings(mm)
	return mm
}

func equalNumUnits(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
