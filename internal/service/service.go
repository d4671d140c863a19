package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bitmapindex/indexer/internal/catalog"
	"bitmapindex/indexer/internal/config"
	"bitmapindex/indexer/internal/domain"
	"bitmapindex/indexer/internal/parser"
	"bitmapindex/indexer/internal/report"
	"bitmapindex/indexer/internal/repository"
	"bitmapindex/indexer/internal/source"
	"bitmapindex/indexer/internal/state"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// TimestampLayout formats the generation time shown in page titles and the dump.
const TimestampLayout = "2006-01-02 15:04:05"

type Service struct {
	source       source.Lister
	parser       *parser.Parser
	renderer     *report.Renderer
	output       config.OutputConfig
	repository   repository.DisplayRepository
	stateManager state.StateManager
	now          func() time.Time
}

// NewService wires the pipeline. repository and stateManager may be nil to skip
// publishing to Postgres or Redis.
func NewService(
	lister source.Lister,
	extensions []string,
	output config.OutputConfig,
	repository repository.DisplayRepository,
	stateManager state.StateManager,
) *Service {
	if len(extensions) == 0 {
		extensions = parser.DefaultExtensions
	}
	if output.Dir == "" {
		output.Dir = "."
	}
	renderer := report.NewRenderer(extensions[0])
	if output.PagePrefix != "" {
		renderer.PagePrefix = output.PagePrefix
	}
	return &Service{
		source:       lister,
		parser:       parser.New(extensions),
		renderer:     renderer,
		output:       output,
		repository:   repository,
		stateManager: stateManager,
		now:          time.Now,
	}
}

// Result describes what one run produced.
type Result struct {
	Dump    *domain.Dump
	Tables  []report.Table
	Summary string
	Skipped int
}

// Run lists the bitmaps, builds and sorts the catalog, renders it and writes
// every output. Building and rendering are sequential; only the writers run
// concurrently, on data that is no longer modified.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	if s.source == nil {
		return nil, source.ErrNoSource
	}

	files, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bitmaps: %w", err)
	}
	log.Infof("📂 Found %d files", len(files))

	built := catalog.NewBuilder(s.parser).AddAll(files).Result()
	log.Infof("🗂️ Indexed %d routes, %d destinations (%d misc, %d invalid, %d skipped)",
		built.Catalog.Len(), len(built.Destinations.Destinations()),
		len(built.Misc), len(built.Invalid), built.Skipped)
	for _, name := range built.Invalid {
		log.Warnf("⚠️ No page number in %s", name)
	}

	groups := catalog.Classify(built.Catalog)
	tables := s.renderer.Render(groups)

	res := &Result{
		Dump: &domain.Dump{
			Timestamp:    s.now().Format(TimestampLayout),
			Displays:     groups,
			Dests:        built.Destinations,
			MiscDisplays: built.Misc,
			Invalid:      built.Invalid,
		},
		Tables:  tables,
		Summary: report.Summary(tables),
		Skipped: built.Skipped,
	}

	if err := s.write(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) write(ctx context.Context, res *Result) error {
	if err := os.MkdirAll(s.output.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.writeDump(res.Dump)
	})

	for _, t := range res.Tables {
		g.Go(func() error {
			if err := report.WriteHTMLFile(s.output.Dir, t, res.Dump.Timestamp, s.output.BitmapHref); err != nil {
				return err
			}
			log.Debugf("Wrote %s (%d rows)", t.Filename, len(t.Rows))
			return nil
		})
	}

	g.Go(func() error {
		written, err := report.WriteStylesheet(s.output.Dir)
		if written {
			log.Infof("🎨 Wrote default %s", report.StylesheetName)
		}
		return err
	})

	if s.output.IndexFile != "" {
		g.Go(func() error {
			p := filepath.Join(s.output.Dir, s.output.IndexFile)
			if err := os.WriteFile(p, []byte(res.Summary), 0o644); err != nil {
				return fmt.Errorf("failed to write summary: %w", err)
			}
			return nil
		})
	}

	if s.stateManager != nil {
		g.Go(func() error {
			last, err := s.stateManager.GetLastRun(ctx)
			if err != nil {
				return err
			}
			if last != "" {
				log.Infof("🔄 Replacing dump published at %s", last)
			}
			if err := s.stateManager.SaveDump(ctx, res.Dump); err != nil {
				return err
			}
			log.Info("✅ Published dump to Redis")
			return nil
		})
	}

	if s.repository != nil {
		g.Go(func() error {
			n, err := s.repository.SaveCatalog(ctx, res.Dump.Displays)
			if err != nil {
				return err
			}
			log.Infof("✅ Saved %d display rows to database", n)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Infof("✅ Wrote %d report pages to %s", len(res.Tables), s.output.Dir)
	return nil
}

func (s *Service) writeDump(dump *domain.Dump) error {
	if s.output.DumpFile == "" {
		return nil
	}

	f, err := os.Create(filepath.Join(s.output.Dir, s.output.DumpFile))
	if err != nil {
		return fmt.Errorf("failed to create dump file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	if err := enc.Encode(dump); err != nil {
		f.Close()
		return fmt.Errorf("failed to write dump: %w", err)
	}
	return f.Close()
}
