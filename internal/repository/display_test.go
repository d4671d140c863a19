package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bitmapindex/indexer/internal/catalog"
	"bitmapindex/indexer/internal/parser"
)

func TestFlatten(t *testing.T) {
	res := catalog.NewBuilder(parser.New(nil)).AddAll([]string{
		"1_Central_10.bmp",
		"1_Central_11.bmp",
		"1_Central_1x0.bmp",
		"A2_Pier_20.bmp",
	}).Result()

	rows := Flatten(catalog.Classify(res.Catalog))
	assert.Equal(t, []DisplayPage{
		{Group: "1-1", Route: "1", Destination: "Central", Sequence: "1", Version: "0", Pages: 2},
		{Group: "1-1", Route: "1", Destination: "Central", Sequence: "1", Version: "x0", Pages: 1},
		{Group: "A2-A2", Route: "A2", Destination: "Pier", Sequence: "2", Version: "0", Pages: 1},
	}, rows)
}

func TestFlattenEmpty(t *testing.T) {
	assert.Empty(t, Flatten(nil))
}
