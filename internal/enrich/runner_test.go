package enrich

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigentincubator/sales-ctonet/internal/testutil"
	"github.com/aigentincubator/sales-ctonet/pkg/models"
)

const runnerFeed = `{
	"Mobile Routers": {
		"BR1 Mini": {
			"Number of Cellular Modems": "1",
			"Router Throughput": "100 Mbps"
		}
	},
	"Branch Routers": {
		"Balance 20X": {
			"Number of Cellular Modems": "1",
			"short_description": "Already described."
		}
	}
}`

func writeFeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hardware_data.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCatalogKeepsFeedOrder(t *testing.T) {
	blocks, err := LoadCatalog(writeFeed(t, runnerFeed))
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "Mobile Routers", blocks[0].Name)
	assert.Equal(t, "Branch Routers", blocks[1].Name)
	assert.Contains(t, blocks[0].Items, "BR1 Mini")
}

func TestLoadCatalogRejectsNonObject(t *testing.T) {
	_, err := LoadCatalog(writeFeed(t, `["a"]`))
	assert.Error(t, err)
}

func TestSaveCatalogRoundTrip(t *testing.T) {
	path := writeFeed(t, runnerFeed)
	blocks, err := LoadCatalog(path)
	require.NoError(t, err)

	require.NoError(t, SaveCatalog(path, blocks))

	// The rewrite preserves category order and leaves a backup behind.
	reloaded, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, reloaded, 2)
	assert.Equal(t, "Mobile Routers", reloaded[0].Name)
	assert.Equal(t, blocks[1].Items["Balance 20X"][models.KeyDescription],
		reloaded[1].Items["Balance 20X"][models.KeyDescription])

	_, err = os.Stat(path + ".bak")
	assert.NoError(t, err, "backup file missing")
}

func TestRunSynthesizesMissingDescriptions(t *testing.T) {
	blocks, err := LoadCatalog(writeFeed(t, runnerFeed))
	require.NoError(t, err)

	r := NewRunner(testutil.Logger(), nil, Options{SkipExisting: true})
	updated := r.Run(context.Background(), blocks)
	assert.Equal(t, 1, updated)

	desc, _ := blocks[0].Items["BR1 Mini"][models.KeyDescription].(string)
	assert.True(t, strings.HasPrefix(desc, "BR1 Mini:"), desc)
	assert.Contains(t, desc, "Throughput: 100 Mbps")

	// The pre-described record is untouched.
	assert.Equal(t, "Already described.",
		blocks[1].Items["Balance 20X"][models.KeyDescription])
}

func TestRunRewritesWhenSkipExistingOff(t *testing.T) {
	blocks, err := LoadCatalog(writeFeed(t, runnerFeed))
	require.NoError(t, err)

	r := NewRunner(testutil.Logger(), nil, Options{})
	updated := r.Run(context.Background(), blocks)
	assert.Equal(t, 2, updated)
	assert.NotEqual(t, "Already described.",
		blocks[1].Items["Balance 20X"][models.KeyDescription])
}
