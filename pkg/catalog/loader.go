// Package catalog loads the static hardware catalog: a JSON document
// mapping category name to product name to a raw attribute record. The
// catalog is parsed once on first access and treated as read-only for the
// process lifetime.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Catalog provides lazy-loaded access to the hardware data file.
type Catalog struct {
	path string

	once       sync.Once
	categories []string // feed order
	products   map[string]map[string]map[string]string
	err        error
}

// New creates a Catalog that will parse the file at path on first access.
func New(path string) *Catalog {
	return &Catalog{path: path}
}

// Load forces the catalog to parse now. Binaries call this at startup so a
// corrupt catalog is fatal before serving begins.
func (c *Catalog) Load() error {
	c.once.Do(c.load)
	return c.err
}

// Categories returns the category names in feed order. Empty when the
// catalog failed to load.
func (c *Catalog) Categories() []string {
	c.once.Do(c.load)
	if c.err != nil {
		return []string{}
	}
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Category returns the raw product records for the named category as fresh
// copies. Unknown or empty names yield an empty map, not an error; the only
// error surfaced here is a failed catalog load.
func (c *Catalog) Category(name string) (map[string]map[string]string, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}
	src := c.products[name]
	out := make(map[string]map[string]string, len(src))
	for prod, attrs := range src {
		cp := make(map[string]string, len(attrs))
		for k, v := range attrs {
			cp[k] = v
		}
		out[prod] = cp
	}
	return out, nil
}

// load reads and parses the catalog file. Top-level keys are read through
// the token stream so category order matches the feed; the deterministic
// price matrix depends on it.
func (c *Catalog) load() {
	data, err := os.ReadFile(c.path)
	if err != nil {
		c.err = fmt.Errorf("catalog: read %q: %w", c.path, err)
		return
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		c.err = fmt.Errorf("catalog: parse %q: %w", c.path, err)
		return
	}

	c.products = make(map[string]map[string]map[string]string)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			c.err = fmt.Errorf("catalog: parse %q: %w", c.path, err)
			return
		}
		category, ok := tok.(string)
		if !ok {
			c.err = fmt.Errorf("catalog: parse %q: unexpected token %v", c.path, tok)
			return
		}

		var items map[string]map[string]any
		if err := dec.Decode(&items); err != nil {
			c.err = fmt.Errorf("catalog: parse category %q: %w", category, err)
			return
		}

		prods := make(map[string]map[string]string, len(items))
		for name, record := range items {
			attrs := make(map[string]string, len(record))
			for k, v := range record {
				attrs[k] = stringify(v)
			}
			prods[name] = attrs
		}
		c.categories = append(c.categories, category)
		c.products[category] = prods
	}
}

// stringify renders a feed value as a string; the schema is open and the
// odd numeric or boolean value shows up.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
