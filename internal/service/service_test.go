package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"bitmapindex/indexer/internal/config"
	"bitmapindex/indexer/internal/domain"
	"bitmapindex/indexer/internal/source"
)

type staticSource []string

func (s staticSource) List(ctx context.Context) ([]string, error) {
	return s, nil
}

type failingSource struct{}

func (failingSource) List(ctx context.Context) ([]string, error) {
	return nil, errors.New("boom")
}

type fakeState struct {
	lastRun string
	saved   *domain.Dump
}

func (f *fakeState) GetLastRun(ctx context.Context) (string, error) {
	return f.lastRun, nil
}

func (f *fakeState) SaveDump(ctx context.Context, dump *domain.Dump) error {
	f.saved = dump
	return nil
}

type fakeRepository struct {
	groups domain.GroupedCatalog
	err    error
}

func (f *fakeRepository) SaveCatalog(ctx context.Context, groups domain.GroupedCatalog) (int, error) {
	f.groups = groups
	return len(groups), f.err
}

var files = staticSource{
	"1A_CityA_1o0.bmp",
	"1A_CityA_1o1.bmp",
	"1a_CityA_2x0.bmp",
	"A10_Airport_10.bmp",
	"Weird.bmp",
	"12_Town_5z.bmp",
	"readme.txt",
}

type ServiceSuite struct {
	suite.Suite
	dir    string
	output config.OutputConfig
}

func (s *ServiceSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.output = config.OutputConfig{
		Dir:        s.dir,
		DumpFile:   "indexDump.json",
		IndexFile:  "index.md",
		BitmapHref: "bitmaps",
		PagePrefix: "index_",
	}
}

func (s *ServiceSuite) newService(lister source.Lister) *Service {
	svc := NewService(lister, nil, s.output, nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }
	return svc
}

func (s *ServiceSuite) TestRunWritesOutputs() {
	res, err := s.newService(files).Run(context.Background())
	s.Require().NoError(err)

	s.Equal("2024-05-06 07:08:09", res.Dump.Timestamp)
	s.Equal([]string{"Weird.bmp"}, res.Dump.MiscDisplays)
	s.Equal([]string{"12_Town_5z.bmp"}, res.Dump.Invalid)
	s.Equal(1, res.Skipped)
	s.Equal("- [1A-1A](index_1a-1a.html)\n- [A10-A10](index_A10-A10.html)\n", res.Summary)

	for _, name := range []string{"index_1a-1a.html", "index_A10-A10.html", "style.css", "index.md", "indexDump.json"} {
		_, err := os.Stat(filepath.Join(s.dir, name))
		s.NoError(err, name)
	}
}

func (s *ServiceSuite) TestDumpFormat() {
	_, err := s.newService(files).Run(context.Background())
	s.Require().NoError(err)

	data, err := os.ReadFile(filepath.Join(s.dir, "indexDump.json"))
	s.Require().NoError(err)

	var dump map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal(data, &dump))

	var displays map[string]map[string]map[string]map[string]map[string]int
	s.Require().NoError(json.Unmarshal(dump["displays"], &displays))
	s.Equal(2, displays["1a-1a"]["1a"]["CityA"]["1"]["1"])
	s.Equal(1, displays["1a-1a"]["1a"]["CityA"]["2"]["x0"])

	var dests map[string][]string
	s.Require().NoError(json.Unmarshal(dump["dests"], &dests))
	s.Equal([]string{"A10"}, dests["Airport"])

	text := string(data)
	s.Less(strings.Index(text, `"1a-1a"`), strings.Index(text, `"A10-A10"`), "groups keep their order")
	s.Less(strings.Index(text, `"timestamp"`), strings.Index(text, `"displays"`))
}

func (s *ServiceSuite) TestRunPublishesToSinks() {
	st := &fakeState{lastRun: "2024-01-01 00:00:00"}
	repo := &fakeRepository{}
	svc := NewService(files, nil, s.output, repo, st)

	res, err := svc.Run(context.Background())
	s.Require().NoError(err)
	s.Same(res.Dump, st.saved)
	s.Len(repo.groups, 2)
}

func (s *ServiceSuite) TestRunSinkError() {
	repo := &fakeRepository{err: errors.New("db down")}
	_, err := NewService(files, nil, s.output, repo, nil).Run(context.Background())
	s.ErrorContains(err, "db down")
}

func (s *ServiceSuite) TestRunSourceError() {
	_, err := s.newService(failingSource{}).Run(context.Background())
	s.ErrorContains(err, "failed to list bitmaps")
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func TestRunWithoutSource(t *testing.T) {
	_, err := NewService(nil, nil, config.OutputConfig{Dir: t.TempDir()}, nil, nil).Run(context.Background())
	require.ErrorIs(t, err, source.ErrNoSource)
}

func TestRunFromDirectory(t *testing.T) {
	in := t.TempDir()
	for _, name := range []string{"5_Pier_10.bmp", "5_Pier_11.bmp"} {
		require.NoError(t, os.WriteFile(filepath.Join(in, name), nil, 0o644))
	}
	out := t.TempDir()

	res, err := NewService(source.NewDirSource(in), []string{"bmp"}, config.OutputConfig{Dir: out}, nil, nil).
		Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Tables, 1)
	assert.Equal(t, 2, len(res.Tables[0].Rows[0].Versions[0].Pages))

	_, err = os.Stat(filepath.Join(out, "index_5-5.html"))
	assert.NoError(t, err)
}
