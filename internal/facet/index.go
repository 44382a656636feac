package facet

import (
	"sort"
	"strings"

	"github.com/aigentincubator/sales-ctonet/pkg/models"
)

// Index is the facet universe for one category: every non-reserved
// attribute mapped to its set of distinct raw values.
type Index map[string]map[string]struct{}

// BuildIndex scans the enriched records of products and collects distinct
// values per attribute, skipping reserved keys (description, document link,
// citations). Derived numeric fields live outside the attribute map and are
// never indexed.
func BuildIndex(products []models.Product) Index {
	idx := make(Index)
	for _, p := range products {
		for k, v := range p.Attrs {
			if models.ReservedKeys[k] {
				continue
			}
			set, ok := idx[k]
			if !ok {
				set = make(map[string]struct{})
				idx[k] = set
			}
			set[v] = struct{}{}
		}
	}
	return idx
}

// Has reports whether attr appears in the index.
func (idx Index) Has(attr string) bool {
	_, ok := idx[attr]
	return ok
}

// Values returns attr's distinct values sorted case-insensitively.
func (idx Index) Values(attr string) []string {
	vals := make([]string, 0, len(idx[attr]))
	for v := range idx[attr] {
		vals = append(vals, v)
	}
	sort.Slice(vals, func(a, b int) bool {
		return strings.ToLower(vals[a]) < strings.ToLower(vals[b])
	})
	return vals
}

// Salience orders attributes by how discriminating they are: distinct-value
// count descending, ties broken by case-insensitive name ascending.
// Attributes with a single distinct value are dropped; they cannot narrow
// anything.
func Salience(idx Index) []string {
	type score struct {
		attr     string
		distinct int
	}
	scores := make([]score, 0, len(idx))
	for attr, values := range idx {
		if len(values) <= 1 {
			continue
		}
		scores = append(scores, score{attr, len(values)})
	}
	sort.Slice(scores, func(a, b int) bool {
		if scores[a].distinct != scores[b].distinct {
			return scores[a].distinct > scores[b].distinct
		}
		return strings.ToLower(scores[a].attr) < strings.ToLower(scores[b].attr)
	})
	out := make([]string, len(scores))
	for i, s := range scores {
		out[i] = s.attr
	}
	return out
}

// FacetOrder produces the displayed facet list: priority attributes that
// exist in the index, in the given order, then salience-ranked fill,
// skipping skipAttr (the subcategory attribute has its own chip row),
// capped at max.
func FacetOrder(idx Index, priority []string, skipAttr string, max int) []string {
	ordered := make([]string, 0, max)
	seen := make(map[string]bool, max)
	for _, a := range priority {
		if idx.Has(a) && !seen[a] {
			ordered = append(ordered, a)
			seen[a] = true
		}
	}
	for _, a := range Salience(idx) {
		if len(ordered) >= max {
			break
		}
		if a == skipAttr || seen[a] {
			continue
		}
		ordered = append(ordered, a)
		seen[a] = true
	}
	return ordered
}
