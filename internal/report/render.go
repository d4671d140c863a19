package report

import (
	"fmt"
	"strings"

	"bitmapindex/indexer/internal/domain"
)

// Cell is a merged table cell. RowSpan is 0 for cells covered by a cell above.
type Cell struct {
	Value   string
	RowSpan int
}

// Visible reports whether the cell starts a run and must be written out.
func (c Cell) Visible() bool {
	return c.RowSpan > 0
}

type Page struct {
	Number   int
	Filename string
}

// VersionBlock lists the pages of one version of a sequence.
type VersionBlock struct {
	Label string
	Code  string
	Pages []Page
}

func (v VersionBlock) Heading() string {
	return "Version " + v.Label
}

type Row struct {
	Route       Cell
	Destination Cell
	Sequence    Cell
	Versions    []VersionBlock
}

// Table is the rendered form of one display group.
type Table struct {
	Label    string
	Filename string
	Rows     []Row
}

// Renderer turns a GroupedCatalog into tables.
type Renderer struct {
	// Extension of the regenerated bitmap filenames, without the dot.
	Extension string
	// PagePrefix and PageSuffix wrap the group label to name the report file.
	PagePrefix string
	PageSuffix string
}

func NewRenderer(extension string) *Renderer {
	if extension == "" {
		extension = "bmp"
	}
	return &Renderer{
		Extension:  extension,
		PagePrefix: "index_",
		PageSuffix: ".html",
	}
}

// Render renders every group in order.
func (r *Renderer) Render(groups domain.GroupedCatalog) []Table {
	tables := make([]Table, 0, len(groups))
	for _, g := range groups {
		tables = append(tables, r.RenderGroup(g))
	}
	return tables
}

// RenderGroup builds one row per (route, destination, sequence) and merges the
// route and destination columns.
func (r *Renderer) RenderGroup(g domain.Group) Table {
	t := Table{
		Label:    g.Label,
		Filename: r.PagePrefix + g.Label + r.PageSuffix,
	}

	for _, route := range g.Catalog.Routes() {
		dests, _ := g.Catalog.Destinations(route)
		for _, dest := range dests.Keys() {
			seqs, _ := dests.Get(dest)
			for _, seq := range seqs.Keys() {
				versions, _ := seqs.Get(seq)
				t.Rows = append(t.Rows, Row{
					Route:       Cell{Value: string(route), RowSpan: 1},
					Destination: Cell{Value: dest, RowSpan: 1},
					Sequence:    Cell{Value: seq, RowSpan: 1},
					Versions:    r.versionBlocks(route, dest, seq, versions),
				})
			}
		}
	}

	mergeRows(t.Rows)
	return t
}

// mergeRows folds each route and destination cell equal to the one above into it.
// A destination run never crosses a route boundary.
func mergeRows(rows []Row) {
	for y := len(rows) - 1; y > 0; y-- {
		cur, above := &rows[y], &rows[y-1]
		if cur.Route.Value != above.Route.Value {
			continue
		}
		above.Route.RowSpan += cur.Route.RowSpan
		cur.Route.RowSpan = 0
		if cur.Destination.Value == above.Destination.Value {
			above.Destination.RowSpan += cur.Destination.RowSpan
			cur.Destination.RowSpan = 0
		}
	}
}

func (r *Renderer) versionBlocks(route domain.RouteID, dest, seq string, versions *domain.Versions) []VersionBlock {
	siblings := versions.Len()
	blocks := make([]VersionBlock, 0, siblings)
	for _, code := range versions.Keys() {
		vc, _ := versions.Get(code)
		block := VersionBlock{
			Label: VersionLabel(vc.Version, siblings),
			Code:  code,
			Pages: make([]Page, vc.Count),
		}
		for i := range block.Pages {
			block.Pages[i] = Page{
				Number:   i + 1,
				Filename: r.Filename(route, dest, seq, vc.Version, i),
			}
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// VersionLabel names a version for display. Plain versions are numbered so that the
// longest filler run, the newest display, gets the lowest number; marked versions
// are named by their marker.
func VersionLabel(v domain.Version, siblings int) string {
	switch v := v.(type) {
	case domain.PlainVersion:
		return fmt.Sprint(siblings - v.Length)
	case domain.MarkedVersion:
		return v.Marker
	default:
		return v.Code()
	}
}

// Filename rebuilds the bitmap filename of a page; page is zero-based.
func (r *Renderer) Filename(route domain.RouteID, dest, seq string, v domain.Version, page int) string {
	return fmt.Sprintf("%s_%s_%s%s%d.%s",
		strings.ToUpper(string(route)), dest, seq, v.Field(), page, r.Extension)
}
