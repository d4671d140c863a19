package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMapKeepsInsertionOrder(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3)
	got := m.GetOrInsert("c", func() int { return 4 })
	again := m.GetOrInsert("c", func() int { return 5 })

	assert.Equal(t, 4, got)
	assert.Equal(t, 4, again)
	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":3,"a":2,"c":4}`, string(data))
	assert.Equal(t, `{"b":3,"a":2,"c":4}`, string(data))
}

func TestVersionCodes(t *testing.T) {
	assert.Equal(t, "0", PlainVersion{}.Code())
	assert.Equal(t, "ooo", PlainVersion{Length: 3}.Field())
	assert.Equal(t, "x2", MarkedVersion{Marker: "x", Length: 2}.Code())
	assert.Equal(t, "xoo", MarkedVersion{Marker: "x", Length: 2}.Field())
}

func TestCatalogJSON(t *testing.T) {
	c := NewCatalog()
	c.Add(ParsedRecord{Route: "9", Destination: "Pier", Sequence: "1", Page: "0", Version: PlainVersion{}})
	c.Add(ParsedRecord{Route: "9", Destination: "Pier", Sequence: "1", Page: "1", Version: PlainVersion{}})
	c.Add(ParsedRecord{Route: "1", Destination: "Pier", Sequence: "1", Page: "0", Version: MarkedVersion{Marker: "s"}})

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `{"9":{"Pier":{"1":{"0":2}}},"1":{"Pier":{"1":{"s0":1}}}}`, string(data))

	grouped := GroupedCatalog{{Label: "1-1", Routes: []RouteID{"1"}, Catalog: c.Restrict([]RouteID{"1"})}}
	data, err = json.Marshal(grouped)
	require.NoError(t, err)
	assert.Equal(t, `{"1-1":{"1":{"Pier":{"1":{"s0":1}}}}}`, string(data))
}

func TestDestinationIndex(t *testing.T) {
	d := NewDestinationIndex()
	d.Add("Town", "3")
	d.Add("Town", "03a")
	d.Add("Town", "3")

	assert.Equal(t, []RouteID{"3", "03a"}, d.Routes("Town"))
	assert.Nil(t, d.Routes("Nowhere"))
}
