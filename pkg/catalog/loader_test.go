package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hardware_data.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

const orderedFeed = `{
	"Zeta Routers": {
		"Z1": {"Series": "Z", "ports": 4, "fiber": true, "note": null}
	},
	"Alpha Switches": {
		"A1": {"Series": "A"}
	},
	"Mid Gateways": {
		"M1": {"Series": "M"}
	}
}`

func TestCategoriesPreserveFeedOrder(t *testing.T) {
	c := New(writeFile(t, orderedFeed))
	got := c.Categories()
	want := []string{"Zeta Routers", "Alpha Switches", "Mid Gateways"}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCategoryStringifiesScalars(t *testing.T) {
	c := New(writeFile(t, orderedFeed))
	items, err := c.Category("Zeta Routers")
	if err != nil {
		t.Fatalf("Category: %v", err)
	}
	attrs := items["Z1"]
	if attrs == nil {
		t.Fatal("Z1 missing")
	}
	for key, want := range map[string]string{
		"Series": "Z",
		"ports":  "4",
		"fiber":  "true",
		"note":   "",
	} {
		if attrs[key] != want {
			t.Errorf("attrs[%q] = %q, want %q", key, attrs[key], want)
		}
	}
}

func TestCategoryReturnsCopies(t *testing.T) {
	c := New(writeFile(t, orderedFeed))
	first, err := c.Category("Alpha Switches")
	if err != nil {
		t.Fatalf("Category: %v", err)
	}
	first["A1"]["Series"] = "mutated"
	delete(first, "A1")

	second, err := c.Category("Alpha Switches")
	if err != nil {
		t.Fatalf("Category: %v", err)
	}
	if second["A1"] == nil || second["A1"]["Series"] != "A" {
		t.Errorf("second read saw mutation: %v", second)
	}
}

func TestCategoryUnknownName(t *testing.T) {
	c := New(writeFile(t, orderedFeed))
	items, err := c.Category("No Such Category")
	if err != nil {
		t.Fatalf("Category: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty map, got %v", items)
	}
}

func TestLoadMissingFile(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "nope.json"))
	if err := c.Load(); err == nil {
		t.Fatal("Load() = nil, want error")
	}
	if got := c.Categories(); len(got) != 0 {
		t.Errorf("Categories() after failed load = %v", got)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	for name, content := range map[string]string{
		"not json":     "hello",
		"array root":   `["a"]`,
		"bad category": `{"Routers": 7}`,
	} {
		t.Run(name, func(t *testing.T) {
			c := New(writeFile(t, content))
			if err := c.Load(); err == nil {
				t.Fatal("Load() = nil, want error")
			}
			if _, err := c.Category("Routers"); err == nil {
				t.Error("Category after failed load = nil error")
			}
		})
	}
}

func TestLoadParsesOnce(t *testing.T) {
	path := writeFile(t, orderedFeed)
	c := New(path)
	if err := c.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	// A rewrite after first load must not be observed.
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if got := c.Categories(); len(got) != 3 {
		t.Errorf("Categories() = %v, want original three", got)
	}
}
