package repository

import (
	"context"
	"fmt"

	"bitmapindex/indexer/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DisplayPage is one (route, destination, sequence, version) row with its page count.
type DisplayPage struct {
	Group       string
	Route       string
	Destination string
	Sequence    string
	Version     string
	Pages       int
}

type DisplayRepository interface {
	SaveCatalog(ctx context.Context, groups domain.GroupedCatalog) (int, error)
}

type displayRepository struct {
	db *pgxpool.Pool
}

func NewDisplayRepository(db *pgxpool.Pool) DisplayRepository {
	return &displayRepository{
		db: db,
	}
}

const upsertDisplayPage = `
	INSERT INTO display_pages (route, destination, sequence, version, group_label, pages)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (route, destination, sequence, version)
	DO UPDATE SET group_label = $5, pages = $6`

// SaveCatalog upserts every version of the catalog in a single batch and returns
// the number of rows written.
func (r *displayRepository) SaveCatalog(ctx context.Context, groups domain.GroupedCatalog) (int, error) {
	rows := Flatten(groups)
	if len(rows) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, p := range rows {
		batch.Queue(upsertDisplayPage, p.Route, p.Destination, p.Sequence, p.Version, p.Group, p.Pages)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("failed to save display pages: %w", err)
	}
	return len(rows), nil
}

// Flatten lists the catalog as table rows, in group order.
func Flatten(groups domain.GroupedCatalog) []DisplayPage {
	var rows []DisplayPage
	for _, g := range groups {
		for _, route := range g.Catalog.Routes() {
			dests, _ := g.Catalog.Destinations(route)
			for _, dest := range dests.Keys() {
				seqs, _ := dests.Get(dest)
				for _, seq := range seqs.Keys() {
					versions, _ := seqs.Get(seq)
					for _, code := range versions.Keys() {
						vc, _ := versions.Get(code)
						rows = append(rows, DisplayPage{
							Group:       g.Label,
							Route:       string(route),
							Destination: dest,
							Sequence:    seq,
							Version:     code,
							Pages:       vc.Count,
						})
					}
				}
			}
		}
	}
	return rows
}
