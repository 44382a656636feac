// Command enrich annotates the hardware catalog JSON with short product
// descriptions extracted from each product's datasheet PDF, falling back to
// a synthetic description built from key attributes. It runs offline,
// before the selector ever sees the data.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/aigentincubator/sales-ctonet/internal/enrich"
	"github.com/aigentincubator/sales-ctonet/internal/enrich/store"
)

func main() {
	fs := flag.NewFlagSet("enrich", flag.ExitOnError)
	inPath := fs.String("in", "data/hardware_data.json", "input catalog JSON path")
	outPath := fs.String("out", "", "output path (default: in-place, writes a .bak)")
	cachePath := fs.String("cache", "", "sqlite cache for fetched PDF text (empty disables)")
	skipExisting := fs.Bool("skip-existing", false, "skip products that already have a description")
	maxPages := fs.Int("max-pages", 2, "max PDF pages to extract per product")
	timeout := fs.Duration("timeout", 25*time.Second, "network timeout per PDF")
	delay := fs.Duration("delay", 400*time.Millisecond, "delay between downloads")

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	var cache *store.Store
	if *cachePath != "" {
		cache, err = store.Open(*cachePath)
		if err != nil {
			logger.Fatal("failed to open cache", zap.Error(err))
		}
		defer cache.Close()
	}

	blocks, err := enrich.LoadCatalog(*inPath)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}

	runner := enrich.NewRunner(logger, cache, enrich.Options{
		SkipExisting: *skipExisting,
		MaxPages:     *maxPages,
		Timeout:      *timeout,
		Delay:        *delay,
	})
	updated := runner.Run(context.Background(), blocks)

	target := *outPath
	if target == "" {
		target = *inPath
	}
	if err := enrich.SaveCatalog(target, blocks); err != nil {
		logger.Fatal("failed to save catalog", zap.Error(err))
	}

	fmt.Printf("Updated %d short_description fields; wrote %s\n", updated, target)
}
