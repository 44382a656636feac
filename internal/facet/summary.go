package facet

import (
	"sort"
	"strings"

	"github.com/aigentincubator/sales-ctonet/pkg/models"
)

// MaxSummaryPairs caps the (label, value) pairs shown on a result card.
const MaxSummaryPairs = 8

// MaxFacets caps how many facet groups the evaluation surfaces.
const MaxFacets = 12

// PreferredFacetOrder is the fixed priority for facet display; attributes
// missing from a category's index are skipped and salience ranking fills
// the remainder.
var PreferredFacetOrder = []string{
	models.AttrModemCount,
	models.AttrModemGroup,
	models.Attr5GSupport,
	models.AttrWiFiAP,
	models.AttrWiFiRadio,
	models.AttrWANPorts,
	models.AttrLANPorts,
	models.AttrRouterThroughput,
	models.AttrSpeedFusion,
	models.AttrSpeedFusionOld,
	models.AttrSIMSlots,
	models.AttrUsers,
}

// summaryExtras follow the priority keys on result cards.
var summaryExtras = []string{
	models.Attr5GSupport,
	models.AttrModemCount,
	models.AttrModemGroup,
	models.AttrSIMSlots,
	models.AttrSeries,
}

// PickSummaryKeys selects up to MaxSummaryPairs attribute keys for one
// product's card: the fixed priority view (ports, Wi‑Fi, preferred
// SpeedFusion key, throughput, users), then the extras, then whatever other
// attributes the product has until the cap.
func PickSummaryKeys(p *models.Product) []string {
	sfKey := ""
	if _, ok := p.Attrs[models.AttrSpeedFusion]; ok {
		sfKey = models.AttrSpeedFusion
	} else if _, ok := p.Attrs[models.AttrSpeedFusionOld]; ok {
		sfKey = models.AttrSpeedFusionOld
	}

	priority := []string{
		models.AttrWANPorts,
		models.AttrLANPorts,
		models.AttrWiFiAP,
		models.AttrWiFiRadio,
		sfKey,
		models.AttrRouterThroughput,
		models.AttrUsers,
	}

	ordered := make([]string, 0, MaxSummaryPairs)
	seen := make(map[string]bool, MaxSummaryPairs)
	appendKey := func(k string) {
		if k == "" || seen[k] {
			return
		}
		if _, ok := p.Attrs[k]; !ok {
			return
		}
		ordered = append(ordered, k)
		seen[k] = true
	}
	for _, k := range priority {
		appendKey(k)
	}
	for _, k := range summaryExtras {
		appendKey(k)
	}

	for _, k := range sortedAttrKeys(p) {
		if len(ordered) >= MaxSummaryPairs {
			break
		}
		if models.ReservedKeys[k] {
			continue
		}
		appendKey(k)
	}
	if len(ordered) > MaxSummaryPairs {
		ordered = ordered[:MaxSummaryPairs]
	}
	return ordered
}

// sortedAttrKeys returns the product's attribute keys in case-insensitive
// order so the summary fill is deterministic.
func sortedAttrKeys(p *models.Product) []string {
	keys := make([]string, 0, len(p.Attrs))
	for k := range p.Attrs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		return strings.ToLower(keys[a]) < strings.ToLower(keys[b])
	})
	return keys
}
