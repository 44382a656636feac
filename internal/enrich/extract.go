package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// userAgent is sent when fetching datasheets; some hosts reject the Go
// default client string.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"

// maxPDFBytes bounds how much of a response body we will read.
const maxPDFBytes = 32 << 20

// FetchPDF downloads a datasheet. The caller controls the timeout through
// ctx or the client.
func FetchPDF(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("enrich: build request for %q: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("enrich: fetch %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("enrich: fetch %q: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPDFBytes))
	if err != nil {
		return nil, fmt.Errorf("enrich: read %q: %w", url, err)
	}
	return data, nil
}

// ExtractText pulls plain text from the first maxPages pages of a PDF.
func ExtractText(data []byte, maxPages int) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("enrich: open pdf: %w", err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	if maxPages > 0 && pages > maxPages {
		pages = maxPages
	}

	var parts []string
	for i := 0; i < pages; i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("enrich: extract page %d: %w", i+1, err)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n"), nil
}
