package facet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aigentincubator/sales-ctonet/internal/normalize"
	"github.com/aigentincubator/sales-ctonet/internal/pricing"
	"github.com/aigentincubator/sales-ctonet/pkg/catalog"
	"github.com/aigentincubator/sales-ctonet/pkg/models"
)

// MobileRoutersCategory is the category carrying the fixed quick picks.
const MobileRoutersCategory = "Mobile Routers"

// Engine evaluates faceted queries against the loaded catalog. It is
// stateless per evaluation and safe for unsynchronized concurrent use; all
// request-scoped state lives in the Query and inside Evaluate.
type Engine struct {
	cat    *catalog.Catalog
	prices *pricing.Matrix
}

// NewEngine creates an engine backed by the given catalog and price matrix.
func NewEngine(cat *catalog.Catalog, prices *pricing.Matrix) *Engine {
	return &Engine{cat: cat, prices: prices}
}

// Query is one evaluation's worth of caller input, reconstructed fresh from
// request parameters every time.
type Query struct {
	Category string
	Filters  Filters
	Numeric  NumericFilters
	SortKey  string
	Tier     models.ClientTier
}

// ValueCount is one selectable chip: a value, its inclusion count, and
// whether it is currently selected.
type ValueCount struct {
	Value  string `json:"value"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}

// FacetGroup is one displayed facet with its value chips.
type FacetGroup struct {
	Name          string       `json:"name"`
	SelectedCount int          `json:"selected_count"`
	OptionsCount  int          `json:"options_count"`
	Values        []ValueCount `json:"values"`
}

// QuickPickState is a quick-pick chip with its count and active flag.
type QuickPickState struct {
	Label  string `json:"label"`
	Attr   string `json:"attr"`
	Value  string `json:"value"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}

// Pair is one (label, value) summary entry on a result card.
type Pair struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Card is one product in the ranked result list.
type Card struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Summary     []Pair `json:"summary"`
	SummaryCopy []Pair `json:"summary_copy"`
	PDFURL      string `json:"pdf_url,omitempty"`
	Price       string `json:"price,omitempty"`
}

// Result is the full evaluation output.
type Result struct {
	Categories      []string            `json:"categories"`
	Category        string              `json:"category,omitempty"`
	ClientTiers     []models.ClientTier `json:"client_tiers"`
	Tier            models.ClientTier   `json:"client_tier"`
	SubcategoryAttr string              `json:"subcategory_attr"`
	Subcategories   []ValueCount        `json:"subcategories"`
	QuickPicks      []QuickPickState    `json:"quick_picks"`
	Facets          []FacetGroup        `json:"facets"`
	Products        []Card              `json:"products"`
	Count           int                 `json:"count"`
	SelectionsText  string              `json:"selections_text"`
}

// Categories returns the catalog's category names in feed order.
func (e *Engine) Categories() []string {
	return e.cat.Categories()
}

// Products returns the augmented product list for category, name ascending.
// Unknown or empty categories yield an empty list, never an error; a corrupt
// catalog is the one failure that propagates.
func (e *Engine) Products(category string) ([]models.Product, error) {
	raw, err := e.cat.Category(category)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]models.Product, 0, len(names))
	for _, name := range names {
		out = append(out, normalize.Augment(category, name, raw[name], e.prices.For(category, name)))
	}
	return out, nil
}

// Evaluate runs the whole pipeline: index, salience, quick picks, chip
// counts, filtering, sorting, and card assembly.
func (e *Engine) Evaluate(q Query) (*Result, error) {
	if q.Filters == nil {
		q.Filters = Filters{}
	}
	if !models.ValidTier(string(q.Tier)) {
		q.Tier = models.DefaultTier
	}

	res := &Result{
		Categories:      e.cat.Categories(),
		Category:        q.Category,
		ClientTiers:     models.ClientTiers,
		Tier:            q.Tier,
		SubcategoryAttr: models.AttrSeries,
		Subcategories:   []ValueCount{},
		QuickPicks:      []QuickPickState{},
		Facets:          []FacetGroup{},
		Products:        []Card{},
	}
	if q.Category == "" {
		res.SelectionsText = e.selectionsText(q)
		return res, nil
	}

	all, err := e.Products(q.Category)
	if err != nil {
		return nil, err
	}
	idx := BuildIndex(all)

	// Quick picks are registered up front so group exclusivity applies to
	// every count in this evaluation.
	group := NewQuickPickGroup()
	if q.Category == MobileRoutersCategory {
		group.Register(idx, "Single Modem", models.AttrModemGroup, string(models.ModemGroupSingle))
		group.Register(idx, "Multi Modem", models.AttrModemGroup, string(models.ModemGroupMulti))
		group.Register(idx, "5G", models.Attr5GSupport, "Yes")
	}
	for _, qp := range group.Entries() {
		res.QuickPicks = append(res.QuickPicks, QuickPickState{
			Label:  qp.Label,
			Attr:   qp.Attr,
			Value:  qp.Value,
			Count:  CountIncluded(all, q.Filters, group, qp.Attr, qp.Value, q.Numeric),
			Active: q.Filters.SoleSelection(qp.Attr, qp.Value),
		})
	}

	// Subcategory (Series) chips use inclusion counts so an active chip's
	// count does not jump.
	for _, val := range idx.Values(models.AttrSeries) {
		res.Subcategories = append(res.Subcategories, ValueCount{
			Value:  val,
			Count:  CountIncluded(all, q.Filters, group, models.AttrSeries, val, q.Numeric),
			Active: q.Filters.Selected(models.AttrSeries, val),
		})
	}

	for _, attr := range FacetOrder(idx, PreferredFacetOrder, models.AttrSeries, MaxFacets) {
		values := idx.Values(attr)
		fg := FacetGroup{
			Name:          attr,
			SelectedCount: len(q.Filters[attr]),
			OptionsCount:  len(values),
			Values:        make([]ValueCount, 0, len(values)),
		}
		for _, val := range values {
			fg.Values = append(fg.Values, ValueCount{
				Value:  val,
				Count:  CountIncluded(all, q.Filters, group, attr, val, q.Numeric),
				Active: q.Filters.Selected(attr, val),
			})
		}
		res.Facets = append(res.Facets, fg)
	}

	filtered := Apply(all, q.Filters, q.Numeric)
	for _, p := range Sort(filtered, q.SortKey) {
		res.Products = append(res.Products, e.buildCard(&p, q.Tier))
	}
	res.Count = len(res.Products)
	res.SelectionsText = e.selectionsText(q)
	return res, nil
}

// buildCard assembles one result card: price pair first when the tier has a
// price, then the summary pairs. SummaryCopy carries display-normalized text
// for clipboard use; Summary carries raw values.
func (e *Engine) buildCard(p *models.Product, tier models.ClientTier) Card {
	card := Card{
		Name:        p.Name,
		Description: p.Description(),
		PDFURL:      p.PDFURL(),
	}
	if price, ok := p.PriceFor(tier); ok {
		label := fmt.Sprintf("Price (%s)", tier)
		card.Price = pricing.Format(price)
		card.Summary = append(card.Summary, Pair{Label: label, Value: card.Price})
		card.SummaryCopy = append(card.SummaryCopy, Pair{
			Label: normalize.CleanDisplay(label),
			Value: normalize.CleanDisplay(card.Price),
		})
	}
	for _, k := range PickSummaryKeys(p) {
		v := p.Attr(k)
		card.Summary = append(card.Summary, Pair{Label: k, Value: v})
		card.SummaryCopy = append(card.SummaryCopy, Pair{
			Label: normalize.CleanDisplay(k),
			Value: normalize.CleanDisplay(v),
		})
	}
	return card
}

// selectionsText renders the active selections as copyable CRM text.
func (e *Engine) selectionsText(q Query) string {
	var lines []string
	if q.Category != "" {
		lines = append(lines, "Category: "+normalize.CleanDisplay(q.Category))
	}
	lines = append(lines, "Client Category: "+normalize.CleanDisplay(string(q.Tier)))

	attrs := make([]string, 0, len(q.Filters))
	for attr := range q.Filters {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(a, b int) bool {
		return strings.ToLower(attrs[a]) < strings.ToLower(attrs[b])
	})
	for _, attr := range attrs {
		vals := make([]string, 0, len(q.Filters[attr]))
		for _, v := range q.Filters[attr] {
			vals = append(vals, normalize.CleanDisplay(v))
		}
		lines = append(lines, fmt.Sprintf("%s: %s", normalize.CleanDisplay(attr), strings.Join(vals, ", ")))
	}
	if q.Numeric.MinRouterMbps != nil {
		lines = append(lines, fmt.Sprintf("Min Router Throughput: %d Mbps", *q.Numeric.MinRouterMbps))
	}
	if q.Numeric.MinSpeedFusionMbps != nil {
		lines = append(lines, fmt.Sprintf("Min SpeedFusion: %d Mbps", *q.Numeric.MinSpeedFusionMbps))
	}
	if q.Numeric.MinUsers != nil {
		lines = append(lines, fmt.Sprintf("Min Users: %d", *q.Numeric.MinUsers))
	}
	return strings.Join(lines, "\n")
}
