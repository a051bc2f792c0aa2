package pricing

import (
	"sort"
	"strings"
)

// PropertyKeys maps form selection values to price-table keys.
var PropertyKeys = map[string]string{
	"asfodelo":           "Asfodelo",
	"corbezzolo":         "Corbezzolo",
	"rosmarino":          "Rosmarino",
	"acquamarina":        "Acquamarina",
	"beachside-retreats": "Beachside",
	"villa-jolies":       "Villa Jolies",
}

// ResolveProperty returns the price-table key for a selection value.
func ResolveProperty(selection string) (string, bool) {
	key, ok := PropertyKeys[strings.ToLower(strings.TrimSpace(selection))]
	return key, ok
}

// Selections returns the known selection values, sorted.
func Selections() []string {
	out := make([]string, 0, len(PropertyKeys))
	for k := range PropertyKeys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// PropertyPrices is one entry of the price table.
type PropertyPrices struct {
	CleaningFee float64
	Rates       RateTable
}

// PriceTable is keyed by price-table property key.
type PriceTable map[string]PropertyPrices
