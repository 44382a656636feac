package facet

import (
	"reflect"
	"testing"

	"github.com/aigentincubator/sales-ctonet/internal/testutil"
	"github.com/aigentincubator/sales-ctonet/pkg/models"
)

func TestBuildIndex_SkipsReservedKeys(t *testing.T) {
	products := []models.Product{
		testutil.NewProduct("Mobile Routers", "A",
			testutil.WithAttr(models.KeyDescription, "a compact router"),
			testutil.WithAttr(models.KeyPDFURL, "https://example.com/a.pdf"),
			testutil.WithAttr(models.KeyCitations, "[1]")),
	}
	idx := BuildIndex(products)

	for _, key := range []string{models.KeyDescription, models.KeyPDFURL, models.KeyCitations} {
		if idx.Has(key) {
			t.Errorf("reserved key %q leaked into the facet universe", key)
		}
	}
	if !idx.Has(models.AttrModemGroup) {
		t.Error("derived Modem Group attribute missing from index")
	}
}

func TestBuildIndex_DistinctValues(t *testing.T) {
	products := []models.Product{
		testutil.NewProduct("Mobile Routers", "A", testutil.WithAttr(models.AttrSeries, "MAX")),
		testutil.NewProduct("Mobile Routers", "B", testutil.WithAttr(models.AttrSeries, "MAX")),
		testutil.NewProduct("Mobile Routers", "C", testutil.WithAttr(models.AttrSeries, "Balance")),
	}
	idx := BuildIndex(products)

	got := idx.Values(models.AttrSeries)
	want := []string{"Balance", "MAX"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Values(Series) = %v, want %v", got, want)
	}
}

func TestSalience_OrderAndSingletonDrop(t *testing.T) {
	idx := Index{
		"Color":   {"Red": {}, "Blue": {}, "Green": {}},
		"Band":    {"LTE": {}, "5G": {}},
		"alpha":   {"x": {}, "y": {}},
		"Chassis": {"Metal": {}}, // single value, not a useful facet
	}

	got := Salience(idx)
	want := []string{"Color", "alpha", "Band"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Salience = %v, want %v", got, want)
	}
}

func TestSalience_TieBreakCaseInsensitive(t *testing.T) {
	idx := Index{
		"bravo": {"1": {}, "2": {}},
		"Alpha": {"1": {}, "2": {}},
	}
	got := Salience(idx)
	want := []string{"Alpha", "bravo"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Salience tie break = %v, want %v", got, want)
	}
}

func TestFacetOrder_PriorityThenSalienceFill(t *testing.T) {
	idx := Index{
		"Priority B": {"1": {}, "2": {}},
		"Filler":     {"1": {}, "2": {}, "3": {}},
		"Series":     {"MAX": {}, "Balance": {}},
		"Other":      {"a": {}, "b": {}},
	}
	priority := []string{"Priority A", "Priority B"}

	got := FacetOrder(idx, priority, "Series", 3)
	want := []string{"Priority B", "Filler", "Other"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FacetOrder = %v, want %v", got, want)
	}
}

func TestFacetOrder_Cap(t *testing.T) {
	idx := Index{
		"a": {"1": {}, "2": {}},
		"b": {"1": {}, "2": {}},
		"c": {"1": {}, "2": {}},
	}
	got := FacetOrder(idx, nil, "", 2)
	if len(got) != 2 {
		t.Fatalf("FacetOrder cap ignored: got %d attrs", len(got))
	}
}
