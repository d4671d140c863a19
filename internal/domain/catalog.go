package domain

import (
	"bytes"
	"encoding/json"
)

// VersionCount counts the pages seen for one version of a sequence.
type VersionCount struct {
	Version Version
	Count   int
}

// MarshalJSON emits the bare count, the dump format keyed by version code.
func (v *VersionCount) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Count)
}

type (
	// Versions maps a canonical version code to its page count.
	Versions = OrderedMap[*VersionCount]
	// Sequences maps a sequence character to its versions.
	Sequences = OrderedMap[*Versions]
	// Destinations maps a destination to its sequences.
	Destinations = OrderedMap[*Sequences]
)

// Catalog is the nested route -> destination -> sequence -> version -> count structure.
type Catalog struct {
	routes *OrderedMap[*Destinations]
}

func NewCatalog() *Catalog {
	return &Catalog{routes: NewOrderedMap[*Destinations]()}
}

// Add counts one page of rec, creating the intermediate levels on first use.
func (c *Catalog) Add(rec ParsedRecord) {
	dests := c.routes.GetOrInsert(string(rec.Route), NewOrderedMap[*Sequences])
	seqs := dests.GetOrInsert(rec.Destination, NewOrderedMap[*Versions])
	versions := seqs.GetOrInsert(rec.Sequence, NewOrderedMap[*VersionCount])
	vc := versions.GetOrInsert(rec.Version.Code(), func() *VersionCount {
		return &VersionCount{Version: rec.Version}
	})
	vc.Count++
}

// Routes returns the route keys in insertion order.
func (c *Catalog) Routes() []RouteID {
	keys := c.routes.Keys()
	routes := make([]RouteID, len(keys))
	for i, k := range keys {
		routes[i] = RouteID(k)
	}
	return routes
}

func (c *Catalog) Destinations(route RouteID) (*Destinations, bool) {
	return c.routes.Get(string(route))
}

// Count returns the number of pages recorded for a version code, or 0.
func (c *Catalog) Count(route RouteID, dest, seq, code string) int {
	dests, ok := c.routes.Get(string(route))
	if !ok {
		return 0
	}
	seqs, ok := dests.Get(dest)
	if !ok {
		return 0
	}
	versions, ok := seqs.Get(seq)
	if !ok {
		return 0
	}
	vc, ok := versions.Get(code)
	if !ok {
		return 0
	}
	return vc.Count
}

func (c *Catalog) Len() int {
	return c.routes.Len()
}

// Restrict returns a catalog holding only the given routes, in the given order.
// Entries are shared with c, not copied.
func (c *Catalog) Restrict(routes []RouteID) *Catalog {
	out := NewCatalog()
	for _, r := range routes {
		if dests, ok := c.routes.Get(string(r)); ok {
			out.routes.Set(string(r), dests)
		}
	}
	return out
}

func (c *Catalog) MarshalJSON() ([]byte, error) {
	return c.routes.MarshalJSON()
}

// DestinationIndex maps a destination to the routes serving it, without duplicates.
type DestinationIndex struct {
	dests *OrderedMap[[]RouteID]
}

func NewDestinationIndex() *DestinationIndex {
	return &DestinationIndex{dests: NewOrderedMap[[]RouteID]()}
}

func (d *DestinationIndex) Add(dest string, route RouteID) {
	routes, _ := d.dests.Get(dest)
	for _, r := range routes {
		if r == route {
			return
		}
	}
	d.dests.Set(dest, append(routes, route))
}

func (d *DestinationIndex) Routes(dest string) []RouteID {
	routes, _ := d.dests.Get(dest)
	return routes
}

func (d *DestinationIndex) Destinations() []string {
	return d.dests.Keys()
}

func (d *DestinationIndex) MarshalJSON() ([]byte, error) {
	return d.dests.MarshalJSON()
}

// Group is one display group of the sorted catalog, e.g. "1-99", "A10-A29" or "Others".
type Group struct {
	Label   string
	Routes  []RouteID
	Catalog *Catalog
}

// GroupedCatalog is the ordered list of groups consumed by the renderer.
type GroupedCatalog []Group

// MarshalJSON emits the groups as an object keyed by label, in group order.
func (g GroupedCatalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, group := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		label, err := json.Marshal(group.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(label)
		buf.WriteByte(':')
		body, err := json.Marshal(group.Catalog)
		if err != nil {
			return nil, err
		}
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Dump is the machine-readable snapshot of one indexing run.
type Dump struct {
	Timestamp    string            `json:"timestamp"`
	Displays     GroupedCatalog    `json:"displays"`
	Dests        *DestinationIndex `json:"dests"`
	MiscDisplays []string          `json:"miscDisplays"`
	Invalid      []string          `json:"invalid"`
}
