// Package facet implements the faceted filtering and ranking engine:
// attribute indexing, salience ordering, filter evaluation, toggle and
// inclusion counting, quick-pick exclusivity, and result sorting. Every
// operation is a pure function over its inputs; nothing here holds state
// across evaluations.
package facet

import "github.com/aigentincubator/sales-ctonet/pkg/models"

// Filters maps an attribute name to its selected values. Matching is OR
// within an attribute and AND across attributes. Selection is single-value
// per attribute in practice: Set replaces rather than appends.
type Filters map[string][]string

// Set replaces the selection for attr with exactly value.
func (f Filters) Set(attr, value string) {
	f[attr] = []string{value}
}

// Clear removes any selection for attr.
func (f Filters) Clear(attr string) {
	delete(f, attr)
}

// Selected reports whether value is among the selections for attr.
func (f Filters) Selected(attr, value string) bool {
	for _, v := range f[attr] {
		if v == value {
			return true
		}
	}
	return false
}

// SoleSelection reports whether value is the one and only selection for attr.
func (f Filters) SoleSelection(attr, value string) bool {
	vals := f[attr]
	return len(vals) == 1 && vals[0] == value
}

// Clone returns an independent copy. Counting operations work on clones so
// the caller's filter state is never mutated.
func (f Filters) Clone() Filters {
	cp := make(Filters, len(f))
	for attr, vals := range f {
		cv := make([]string, len(vals))
		copy(cv, vals)
		cp[attr] = cv
	}
	return cp
}

// NumericFilters holds independent minimum thresholds on the derived numeric
// fields. A nil threshold is unconstrained.
type NumericFilters struct {
	MinRouterMbps      *int
	MinSpeedFusionMbps *int
	MinUsers           *int
}

// Apply returns the products passing all categorical and numeric
// constraints, preserving input order. Attributes absent from filters impose
// no constraint; a missing derived numeric field counts as 0 and fails any
// positive threshold.
func Apply(products []models.Product, filters Filters, numeric NumericFilters) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matches(&p, filters) && passesNumeric(&p, numeric) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p *models.Product, filters Filters) bool {
	for attr, vals := range filters {
		v := p.Attr(attr)
		ok := false
		for _, want := range vals {
			if v == want {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func passesNumeric(p *models.Product, nf NumericFilters) bool {
	if nf.MinRouterMbps != nil && p.RouterMbps < *nf.MinRouterMbps {
		return false
	}
	if nf.MinSpeedFusionMbps != nil && p.SpeedFusionMbps < *nf.MinSpeedFusionMbps {
		return false
	}
	if nf.MinUsers != nil && p.UsersMax < *nf.MinUsers {
		return false
	}
	return true
}
