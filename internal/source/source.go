package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	log "github.com/sirupsen/logrus"
)

var ErrNoSource = errors.New("no bitmap source configured")

// Lister returns the filenames available for indexing, in a stable order.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}

// DirSource lists the regular files directly inside Dir. Subdirectories are ignored.
type DirSource struct {
	Dir string
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

func (s *DirSource) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read bitmap folder %s: %w", s.Dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	log.Debugf("Listed %d files in %s", len(files), s.Dir)
	return files, nil
}
