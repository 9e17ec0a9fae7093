package normalize

import (
	"regexp"
	"sort"
	"strings"
)

// Field is a canonical column of a price list.
type Field int

const (
	FieldName Field = iota
	FieldPrice
	FieldStock
	FieldDiscount
	FieldUnit
)

// aliasTable maps normalized header text to canonical fields. The variants
// are enumerated per distributor-format convention (Kimia Farma, Enseval,
// Pharos, Guardian and the generic English labels seen in the wild).
var aliasTable = map[string]Field{
	// name
	"nama brg":    FieldName,
	"nama barang": FieldName,
	"nama obat":   FieldName,
	"nama produk": FieldName,
	"barang":      FieldName,
	"obat":        FieldName,
	"produk":      FieldName,
	"product":     FieldName,
	"item":        FieldName,
	"medicine":    FieldName,
	"drug":        FieldName,
	// price
	"hna ppn":    FieldPrice,
	"hrg ppn":    FieldPrice,
	"harga ppn":  FieldPrice,
	"harga jadi": FieldPrice,
	"harga":      FieldPrice,
	"hna":        FieldPrice,
	"hrg":        FieldPrice,
	"price":      FieldPrice,
	"total":      FieldPrice,
	"amount":     FieldPrice,
	// stock
	"stok":          FieldStock,
	"stok terakhir": FieldStock,
	"qty":           FieldStock,
	"quantity":      FieldStock,
	// discount
	"diskon": FieldDiscount,
	"disc":   FieldDiscount,
	// unit
	"satuan":  FieldUnit,
	"kemasan": FieldUnit,
	"unit":    FieldUnit,
}

// aliasList fixes the fallback scan order: longest alias first, ties
// alphabetical, so composite headers resolve the same way on every run.
var aliasList = func() []string {
	keys := make([]string, 0, len(aliasTable))
	for k := range aliasTable {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// ColumnMap holds resolved cell indexes per canonical field, -1 when absent.
type ColumnMap struct {
	Name     int
	Price    int
	Stock    int
	Discount int
	Unit     int
}

var nonAlnum = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// normHeaderKey lowers the header and folds punctuation ("HNA+PPN",
// "HNA + PPN" and "hna_ppn" all become "hna ppn").
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnum.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

func lookupField(header string) (Field, bool) {
	nk := normHeaderKey(header)
	if nk == "" {
		return 0, false
	}
	if f, ok := aliasTable[nk]; ok {
		return f, true
	}
	// composite headers like "hna ppn rp" or "nama barang dagang": an alias
	// contained in the normalized header still identifies the column
	for _, alias := range aliasList {
		if strings.Contains(" "+nk+" ", " "+alias+" ") {
			return aliasTable[alias], true
		}
	}
	return 0, false
}

// ResolveHeader tries to interpret a row as a header. It succeeds when both
// a name and a price column are identified; the first matching column wins
// per field.
func ResolveHeader(cells []string) (ColumnMap, bool) {
	cm := ColumnMap{Name: -1, Price: -1, Stock: -1, Discount: -1, Unit: -1}
	for i, c := range cells {
		f, ok := lookupField(c)
		if !ok {
			continue
		}
		switch f {
		case FieldName:
			if cm.Name < 0 {
				cm.Name = i
			}
		case FieldPrice:
			if cm.Price < 0 {
				cm.Price = i
			}
		case FieldStock:
			if cm.Stock < 0 {
				cm.Stock = i
			}
		case FieldDiscount:
			if cm.Discount < 0 {
				cm.Discount = i
			}
		case FieldUnit:
			if cm.Unit < 0 {
				cm.Unit = i
			}
		}
	}
	return cm, cm.Name >= 0 && cm.Price >= 0
}
