package facet

import "github.com/aigentincubator/sales-ctonet/pkg/models"

// QuickPick is one mutually exclusive shortcut chip: a label bound to a
// single attribute/value pair.
type QuickPick struct {
	Label string
	Attr  string
	Value string
}

// QuickPickGroup collects the quick picks registered for one request and
// the set of attributes participating in mutual exclusion. The group is
// request-scoped: build a fresh one per evaluation, never share across
// requests.
type QuickPickGroup struct {
	entries []QuickPick
	attrs   map[string]bool
}

// NewQuickPickGroup returns an empty group.
func NewQuickPickGroup() *QuickPickGroup {
	return &QuickPickGroup{attrs: make(map[string]bool)}
}

// Register adds a quick pick when its attribute exists in the category's
// facet index; unknown attributes are ignored. Registration enrolls the
// attribute in the group's exclusivity set.
func (g *QuickPickGroup) Register(idx Index, label, attr, value string) {
	if !idx.Has(attr) {
		return
	}
	g.attrs[attr] = true
	g.entries = append(g.entries, QuickPick{Label: label, Attr: attr, Value: value})
}

// Entries returns the registered quick picks in registration order.
func (g *QuickPickGroup) Entries() []QuickPick {
	return g.entries
}

// Contains reports whether attr participates in the exclusivity group.
func (g *QuickPickGroup) Contains(attr string) bool {
	return g != nil && g.attrs[attr]
}

// clearOthers removes every other group attribute's selection from f,
// enforcing mutual exclusion after attr was selected.
func (g *QuickPickGroup) clearOthers(f Filters, attr string) {
	if g == nil || !g.attrs[attr] {
		return
	}
	for other := range g.attrs {
		if other != attr {
			f.Clear(other)
		}
	}
}

// ToggledFilters returns the hypothetical filter set after clicking the
// chip for attr=value: an already sole-selected value deselects, anything
// else becomes the sole selection, clearing quick-pick siblings.
func ToggledFilters(filters Filters, group *QuickPickGroup, attr, value string) Filters {
	f := filters.Clone()
	if f.SoleSelection(attr, value) {
		f.Clear(attr)
		return f
	}
	f.Set(attr, value)
	group.clearOthers(f, attr)
	return f
}

// IncludedFilters returns the hypothetical filter set with attr=value
// force-selected regardless of current state. Used where chip counts must
// stay stable while the chip is already active.
func IncludedFilters(filters Filters, group *QuickPickGroup, attr, value string) Filters {
	f := filters.Clone()
	f.Set(attr, value)
	group.clearOthers(f, attr)
	return f
}

// CountToggled evaluates the toggle-semantics hypothetical filter set and
// returns the resulting product count. The caller's filters are not mutated.
func CountToggled(products []models.Product, filters Filters, group *QuickPickGroup, attr, value string, numeric NumericFilters) int {
	return len(Apply(products, ToggledFilters(filters, group, attr, value), numeric))
}

// CountIncluded evaluates the inclusion-semantics hypothetical filter set
// and returns the resulting product count.
func CountIncluded(products []models.Product, filters Filters, group *QuickPickGroup, attr, value string, numeric NumericFilters) int {
	return len(Apply(products, IncludedFilters(filters, group, attr, value), numeric))
}
