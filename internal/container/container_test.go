package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitmapindex/indexer/internal/config"
	"bitmapindex/indexer/internal/source"
)

func TestNewSource(t *testing.T) {
	assert.IsType(t, &source.DirSource{}, NewSource(config.SourceConfig{Dir: "bitmaps"}))
	assert.IsType(t, &source.HTTPSource{}, NewSource(config.SourceConfig{Dir: "bitmaps", URL: "http://localhost/bitmaps/"}))
}

func TestNewWithoutSinks(t *testing.T) {
	cfg := &config.Config{
		Source: config.SourceConfig{Dir: t.TempDir(), Extensions: []string{"bmp"}},
		Output: config.OutputConfig{Dir: t.TempDir()},
	}

	c, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Repository)
	assert.Nil(t, c.StateManager)

	res, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Tables)
}
