// Package pricing builds the deterministic mock client-tier price matrix.
// Prices are a pure function of the catalog's category order and the
// name-sorted product position, so reloading the same feed always yields
// the same matrix.
package pricing

import (
	"sort"
	"strconv"

	"github.com/aigentincubator/sales-ctonet/pkg/catalog"
	"github.com/aigentincubator/sales-ctonet/pkg/models"
)

// Tier offsets over the per-product base price.
const (
	basePrice        = 800
	categoryStep     = 220
	productStep      = 25
	businessOffset   = 190
	enterpriseOffset = 340
)

// Matrix holds per-product prices for every client tier.
type Matrix struct {
	prices map[string]map[string]map[models.ClientTier]int // category -> product -> tier
}

// Build derives the full matrix from the catalog. Category index follows
// feed order; product index follows name-ascending order within the
// category.
func Build(cat *catalog.Catalog) (*Matrix, error) {
	m := &Matrix{prices: make(map[string]map[string]map[models.ClientTier]int)}
	for catIdx, category := range cat.Categories() {
		items, err := cat.Category(category)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(items))
		for name := range items {
			names = append(names, name)
		}
		sort.Strings(names)

		catPrices := make(map[string]map[models.ClientTier]int, len(names))
		for prodIdx, name := range names {
			base := basePrice + catIdx*categoryStep + prodIdx*productStep
			catPrices[name] = map[models.ClientTier]int{
				models.TierEssential:  base,
				models.TierBusiness:   base + businessOffset,
				models.TierEnterprise: base + enterpriseOffset,
			}
		}
		m.prices[category] = catPrices
	}
	return m, nil
}

// For returns the tier price map for one product, nil when unknown.
func (m *Matrix) For(category, name string) map[models.ClientTier]int {
	if m == nil {
		return nil
	}
	return m.prices[category][name]
}

// Format renders a whole-dollar price as "$1,234".
func Format(v int) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.Itoa(v)
	var out []byte
	for i, ch := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, ch)
	}
	if neg {
		return "$-" + string(out)
	}
	return "$" + string(out)
}
