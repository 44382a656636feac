package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aigentincubator/sales-ctonet/internal/normalize"
	"github.com/aigentincubator/sales-ctonet/pkg/models"
)

// RawRecord returns a plausible mobile-router attribute record, suitable as
// a fixture. Override individual keys through opts.
func RawRecord(opts ...func(map[string]string)) map[string]string {
	rec := map[string]string{
		models.AttrModemCount:       "1",
		models.AttrRouterThroughput: "400 Mbps",
		models.AttrSpeedFusion:      "100 Mbps",
		models.AttrUsers:            "1–60",
		models.AttrWANPorts:         "1",
		models.AttrLANPorts:         "4",
		models.AttrWiFiAP:           "Yes",
		models.AttrSeries:           "MAX",
	}
	for _, opt := range opts {
		opt(rec)
	}
	return rec
}

// WithAttr sets one raw attribute.
func WithAttr(key, value string) func(map[string]string) {
	return func(rec map[string]string) { rec[key] = value }
}

// WithoutAttr removes one raw attribute.
func WithoutAttr(key string) func(map[string]string) {
	return func(rec map[string]string) { delete(rec, key) }
}

// NewProduct augments a fixture record into a Product in the given category.
func NewProduct(category, name string, opts ...func(map[string]string)) models.Product {
	return normalize.Augment(category, name, RawRecord(opts...), nil)
}

// WriteCatalog marshals data to a JSON file under a test temp dir and
// returns its path.
func WriteCatalog(t *testing.T, data map[string]map[string]map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal catalog fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "hardware_data.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write catalog fixture: %v", err)
	}
	return path
}
