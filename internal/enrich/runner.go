package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/aigentincubator/sales-ctonet/internal/enrich/store"
	"github.com/aigentincubator/sales-ctonet/pkg/models"
)

// Options control one enrichment run.
type Options struct {
	SkipExisting bool
	MaxPages     int
	Timeout      time.Duration
	Delay        time.Duration
}

// DefaultOptions mirror the historical batch-tool defaults.
func DefaultOptions() Options {
	return Options{
		MaxPages: 2,
		Timeout:  25 * time.Second,
		Delay:    400 * time.Millisecond,
	}
}

// CategoryBlock is one catalog category with its raw JSON records, kept in
// feed order so a rewrite does not reshuffle the file.
type CategoryBlock struct {
	Name  string
	Items map[string]map[string]any
}

// Runner annotates catalog records with short descriptions.
type Runner struct {
	logger *zap.Logger
	client *http.Client
	cache  *store.Store // optional
	opts   Options
}

// NewRunner creates a Runner. cache may be nil to disable the fetch cache.
func NewRunner(logger *zap.Logger, cache *store.Store, opts Options) *Runner {
	if opts.MaxPages <= 0 {
		opts.MaxPages = DefaultOptions().MaxPages
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	return &Runner{
		logger: logger,
		client: &http.Client{Timeout: opts.Timeout},
		cache:  cache,
		opts:   opts,
	}
}

// LoadCatalog reads the raw catalog JSON preserving category order.
func LoadCatalog(path string) ([]CategoryBlock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("enrich: read %q: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("enrich: parse %q: %w", path, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("enrich: parse %q: expected object, got %v", path, tok)
	}

	var blocks []CategoryBlock
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("enrich: parse %q: %w", path, err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("enrich: parse %q: unexpected token %v", path, tok)
		}
		var items map[string]map[string]any
		if err := dec.Decode(&items); err != nil {
			return nil, fmt.Errorf("enrich: parse category %q: %w", name, err)
		}
		blocks = append(blocks, CategoryBlock{Name: name, Items: items})
	}
	return blocks, nil
}

// SaveCatalog writes the catalog back, categories in their original order.
// When the target exists it is first moved aside to path+".bak".
func SaveCatalog(path string, blocks []CategoryBlock) error {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, b := range blocks {
		key, err := json.Marshal(b.Name)
		if err != nil {
			return fmt.Errorf("enrich: marshal category name %q: %w", b.Name, err)
		}
		body, err := json.MarshalIndent(b.Items, "  ", "  ")
		if err != nil {
			return fmt.Errorf("enrich: marshal category %q: %w", b.Name, err)
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(body)
		if i < len(blocks)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	if _, err := os.Stat(path); err == nil {
		bak := path + ".bak"
		_ = os.Remove(bak)
		if err := os.Rename(path, bak); err != nil {
			return fmt.Errorf("enrich: backup %q: %w", path, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("enrich: write %q: %w", path, err)
	}
	return nil
}

// Run fills short_description for every product lacking one (or for all,
// when SkipExisting is off). Failures on individual products are logged and
// the run continues; the synthetic fallback guarantees a description.
// Returns how many records were updated.
func (r *Runner) Run(ctx context.Context, blocks []CategoryBlock) int {
	updated := 0
	for _, block := range blocks {
		for name, record := range block.Items {
			if r.opts.SkipExisting {
				if v, ok := record[models.KeyDescription].(string); ok && v != "" {
					continue
				}
			}

			short := ""
			if url, ok := record[models.KeyPDFURL].(string); ok && url != "" {
				short = r.fromPDF(ctx, url, name)
			}
			if short == "" {
				short = Synthetic(name, stringAttrs(record))
			}
			if short != "" {
				record[models.KeyDescription] = short
				updated++
			}
		}
	}
	return updated
}

// fromPDF returns a description picked from the product's datasheet, or ""
// when fetching, extraction, or selection fails.
func (r *Runner) fromPDF(ctx context.Context, url, name string) string {
	text, cached, err := r.cachedText(ctx, url)
	if err != nil {
		r.logger.Warn("pdf text unavailable", zap.String("product", name), zap.String("url", url), zap.Error(err))
		return ""
	}
	if !cached && r.opts.Delay > 0 {
		select {
		case <-time.After(r.opts.Delay):
		case <-ctx.Done():
		}
	}
	return PickDescription(text, name)
}

// cachedText returns the extracted text for url, consulting the cache first.
func (r *Runner) cachedText(ctx context.Context, url string) (string, bool, error) {
	if r.cache != nil {
		if text, ok, err := r.cache.Get(ctx, url); err == nil && ok {
			return text, true, nil
		}
	}

	data, err := FetchPDF(ctx, r.client, url)
	if err != nil {
		return "", false, err
	}
	text, err := ExtractText(data, r.opts.MaxPages)
	if err != nil {
		return "", false, err
	}
	if r.cache != nil {
		if err := r.cache.Put(ctx, url, text); err != nil {
			r.logger.Warn("cache write failed", zap.String("url", url), zap.Error(err))
		}
	}
	return text, false, nil
}

// stringAttrs renders a raw record's values as strings for the synthetic
// description builder.
func stringAttrs(record map[string]any) map[string]string {
	out := make(map[string]string, len(record))
	for k, v := range record {
		if s, ok := v.(string); ok {
			out[k] = s
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out
}
