package catalog

import (
	"bitmapindex/indexer/internal/domain"
	"bitmapindex/indexer/internal/parser"

	log "github.com/sirupsen/logrus"
)

// Builder accumulates parsed filenames into a Catalog and a DestinationIndex.
type Builder struct {
	parser  *parser.Parser
	catalog *domain.Catalog
	dests   *domain.DestinationIndex
	misc    []string
	invalid []string
	skipped int
}

func NewBuilder(p *parser.Parser) *Builder {
	return &Builder{
		parser:  p,
		catalog: domain.NewCatalog(),
		dests:   domain.NewDestinationIndex(),
		misc:    make([]string, 0),
		invalid: make([]string, 0),
	}
}

// Add parses one filename and records it. It reports how the file was classified.
func (b *Builder) Add(filename string) domain.FileKind {
	res := b.parser.ParseFilename(filename)
	switch res.Kind {
	case domain.FileSkipped:
		b.skipped++
	case domain.FileMisc:
		b.misc = append(b.misc, filename)
	case domain.FileInvalid:
		log.Debugf("Invalid display filename: %s", filename)
		b.invalid = append(b.invalid, filename)
	case domain.FileDisplay:
		b.AddRecord(res.Record)
	}
	return res.Kind
}

// AddRecord counts one already parsed record.
func (b *Builder) AddRecord(rec domain.ParsedRecord) {
	b.catalog.Add(rec)
	b.dests.Add(rec.Destination, rec.Route)
}

// AddAll records every filename in order.
func (b *Builder) AddAll(filenames []string) *Builder {
	for _, f := range filenames {
		b.Add(f)
	}
	return b
}

// Result is the output of the build phase. It is read-only once returned.
type Result struct {
	Catalog      *domain.Catalog
	Destinations *domain.DestinationIndex
	Misc         []string
	Invalid      []string
	Skipped      int
}

func (b *Builder) Result() Result {
	return Result{
		Catalog:      b.catalog,
		Destinations: b.dests,
		Misc:         b.misc,
		Invalid:      b.invalid,
		Skipped:      b.skipped,
	}
}
