package facet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigentincubator/sales-ctonet/internal/pricing"
	"github.com/aigentincubator/sales-ctonet/internal/testutil"
	"github.com/aigentincubator/sales-ctonet/pkg/catalog"
	"github.com/aigentincubator/sales-ctonet/pkg/models"
)

func engineFixture(t *testing.T) *Engine {
	t.Helper()
	path := testutil.WriteCatalog(t, map[string]map[string]map[string]any{
		"Mobile Routers": {
			"BR1 Mini": {
				models.AttrModemCount:       "1",
				models.AttrRouterThroughput: "100 Mbps",
				models.AttrUsers:            "1–60",
				models.AttrSeries:           "MAX",
				models.KeyDescription:       "A compact cellular router for small deployments.",
				models.KeyPDFURL:            "https://example.com/br1-mini.pdf",
			},
			"HD2": {
				models.AttrModemCount:       "2 (5G)",
				models.AttrRouterThroughput: "1 Gbps",
				models.AttrUsers:            "150",
				models.AttrSeries:           "MAX HD",
			},
			"Balance 20X": {
				models.AttrModemCount:       "1",
				models.AttrRouterThroughput: "900 Mbps",
				models.AttrUsers:            "1–150",
				models.AttrSeries:           "Balance",
			},
		},
	})
	cat := catalog.New(path)
	require.NoError(t, cat.Load())
	prices, err := pricing.Build(cat)
	require.NoError(t, err)
	return NewEngine(cat, prices)
}

func TestEngine_EvaluateEmptyCategory(t *testing.T) {
	engine := engineFixture(t)

	res, err := engine.Evaluate(Query{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mobile Routers"}, res.Categories)
	assert.Empty(t, res.Products)
	assert.Empty(t, res.Facets)
	assert.Equal(t, models.DefaultTier, res.Tier)
}

func TestEngine_EvaluateUnknownCategory(t *testing.T) {
	engine := engineFixture(t)

	res, err := engine.Evaluate(Query{Category: "Drones"})
	require.NoError(t, err)
	assert.Zero(t, res.Count)
	assert.Empty(t, res.Products)
	assert.Empty(t, res.Subcategories)
}

func TestEngine_EvaluateQuickPicks(t *testing.T) {
	engine := engineFixture(t)

	res, err := engine.Evaluate(Query{Category: MobileRoutersCategory})
	require.NoError(t, err)
	require.Len(t, res.QuickPicks, 3)

	byLabel := map[string]QuickPickState{}
	for _, qp := range res.QuickPicks {
		byLabel[qp.Label] = qp
	}
	assert.Equal(t, 2, byLabel["Single Modem"].Count)
	assert.Equal(t, 1, byLabel["Multi Modem"].Count)
	assert.Equal(t, 1, byLabel["5G"].Count)
	for _, qp := range res.QuickPicks {
		assert.False(t, qp.Active)
	}
}

func TestEngine_EvaluateQuickPickActiveState(t *testing.T) {
	engine := engineFixture(t)

	filters := Filters{}
	filters.Set(models.AttrModemGroup, "Single")
	res, err := engine.Evaluate(Query{Category: MobileRoutersCategory, Filters: filters})
	require.NoError(t, err)

	for _, qp := range res.QuickPicks {
		if qp.Label == "Single Modem" {
			assert.True(t, qp.Active)
			// Inclusion count is stable while the chip is active.
			assert.Equal(t, 2, qp.Count)
		} else {
			assert.False(t, qp.Active)
		}
	}
	assert.Equal(t, 2, res.Count)
}

func TestEngine_EvaluateSubcategories(t *testing.T) {
	engine := engineFixture(t)

	res, err := engine.Evaluate(Query{Category: MobileRoutersCategory})
	require.NoError(t, err)

	var values []string
	for _, sc := range res.Subcategories {
		values = append(values, sc.Value)
		assert.Equal(t, 1, sc.Count, "series %q", sc.Value)
	}
	assert.Equal(t, []string{"Balance", "MAX", "MAX HD"}, values)
}

func TestEngine_EvaluateCards(t *testing.T) {
	engine := engineFixture(t)

	res, err := engine.Evaluate(Query{Category: MobileRoutersCategory, Tier: models.TierBusiness})
	require.NoError(t, err)
	require.Equal(t, 3, res.Count)

	// Default sort: case-insensitive name ascending.
	assert.Equal(t, "Balance 20X", res.Products[0].Name)
	assert.Equal(t, "BR1 Mini", res.Products[1].Name)
	assert.Equal(t, "HD2", res.Products[2].Name)

	// Deterministic pricing sorts names byte-wise, so "BR1 Mini" takes
	// product index 0 and "Balance 20X" index 1: Business = 800 + 25 + 190.
	balance := res.Products[0]
	assert.Equal(t, "$1,015", balance.Price)
	require.NotEmpty(t, balance.Summary)
	assert.Equal(t, "Price (Business)", balance.Summary[0].Label)

	mini := res.Products[1]
	assert.Equal(t, "A compact cellular router for small deployments.", mini.Description)
	assert.Equal(t, "https://example.com/br1-mini.pdf", mini.PDFURL)
	assert.LessOrEqual(t, len(mini.Summary), MaxSummaryPairs+1) // price pair rides along
	assert.Len(t, mini.Summary, len(mini.SummaryCopy))
}

func TestEngine_EvaluateSortKey(t *testing.T) {
	engine := engineFixture(t)

	res, err := engine.Evaluate(Query{Category: MobileRoutersCategory, SortKey: SortRouterDesc})
	require.NoError(t, err)
	require.Equal(t, 3, res.Count)
	assert.Equal(t, "HD2", res.Products[0].Name)
	assert.Equal(t, "Balance 20X", res.Products[1].Name)
	assert.Equal(t, "BR1 Mini", res.Products[2].Name)
}

func TestEngine_EvaluateUnknownTierFallsBack(t *testing.T) {
	engine := engineFixture(t)

	res, err := engine.Evaluate(Query{Category: MobileRoutersCategory, Tier: "Platinum"})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultTier, res.Tier)
}

func TestEngine_SelectionsText(t *testing.T) {
	engine := engineFixture(t)

	filters := Filters{}
	filters.Set(models.AttrSeries, "MAX")
	min := 300
	res, err := engine.Evaluate(Query{
		Category: MobileRoutersCategory,
		Filters:  filters,
		Numeric:  NumericFilters{MinRouterMbps: &min},
	})
	require.NoError(t, err)

	lines := strings.Split(res.SelectionsText, "\n")
	assert.Contains(t, lines, "Category: Mobile Routers")
	assert.Contains(t, lines, "Client Category: Essential")
	assert.Contains(t, lines, "Series: MAX")
	assert.Contains(t, lines, "Min Router Throughput: 300 Mbps")
}

func TestEngine_FacetValuesHaveInclusionCounts(t *testing.T) {
	engine := engineFixture(t)

	res, err := engine.Evaluate(Query{Category: MobileRoutersCategory})
	require.NoError(t, err)
	require.NotEmpty(t, res.Facets)

	var modemGroup *FacetGroup
	for i := range res.Facets {
		if res.Facets[i].Name == models.AttrModemGroup {
			modemGroup = &res.Facets[i]
			break
		}
	}
	require.NotNil(t, modemGroup, "Modem Group facet missing")
	counts := map[string]int{}
	for _, v := range modemGroup.Values {
		counts[v.Value] = v.Count
	}
	assert.Equal(t, 2, counts["Single"])
	assert.Equal(t, 1, counts["Multi"])
}
