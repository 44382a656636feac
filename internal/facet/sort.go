package facet

import (
	"sort"
	"strings"

	"github.com/aigentincubator/sales-ctonet/pkg/models"
)

// Sort keys accepted by Sort. Anything else is a no-op.
const (
	SortNameAsc         = "name_asc"
	SortRouterDesc      = "router_desc"
	SortSpeedFusionDesc = "speedfusion_desc"
	SortUsersDesc       = "users_desc"
)

// Sort orders products by the given key and returns a new slice. An empty
// key falls back to case-insensitive name ascending, the stable default.
// Metric sorts are descending with name-ascending tie breaks. An
// unrecognized key returns the input unchanged.
func Sort(products []models.Product, key string) []models.Product {
	switch key {
	case "", SortNameAsc:
		return sortBy(products, func(a, b *models.Product) bool {
			return lowerName(a) < lowerName(b)
		})
	case SortRouterDesc:
		return sortByMetricDesc(products, func(p *models.Product) int { return p.RouterMbps })
	case SortSpeedFusionDesc:
		return sortByMetricDesc(products, func(p *models.Product) int { return p.SpeedFusionMbps })
	case SortUsersDesc:
		return sortByMetricDesc(products, func(p *models.Product) int { return p.UsersMax })
	}
	return products
}

func sortBy(products []models.Product, less func(a, b *models.Product) bool) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	sort.SliceStable(out, func(i, j int) bool {
		return less(&out[i], &out[j])
	})
	return out
}

func sortByMetricDesc(products []models.Product, metric func(*models.Product) int) []models.Product {
	return sortBy(products, func(a, b *models.Product) bool {
		ma, mb := metric(a), metric(b)
		if ma != mb {
			return ma > mb
		}
		return lowerName(a) < lowerName(b)
	})
}

func lowerName(p *models.Product) string {
	return strings.ToLower(p.Name)
}
