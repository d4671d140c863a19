package source

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// HTTPSource lists the files linked from a web server's directory index page.
type HTTPSource struct {
	URL        string
	httpClient *resty.Client
}

func NewHTTPSource(indexURL string, timeout time.Duration, retries int) *HTTPSource {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(time.Second).
		SetHeader("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	return &HTTPSource{
		URL:        indexURL,
		httpClient: client,
	}
}

func (s *HTTPSource) List(ctx context.Context) ([]string, error) {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		Get(s.URL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to fetch index %s: %w", s.URL, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	files, err := parseIndex(resp.String())
	if err != nil {
		return nil, err
	}

	log.Debugf("Listed %d files from %s", len(files), s.URL)
	return files, nil
}

// parseIndex extracts the file names linked from an autoindex page. Directory
// links, sort links and links leaving the directory are ignored.
func parseIndex(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	seen := make(map[string]bool)
	var files []string
	doc.Find("a[href]").Each(func(i int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		u, err := url.Parse(href)
		if err != nil || u.RawQuery != "" || u.Path == "" || strings.HasSuffix(u.Path, "/") {
			return
		}
		if u.IsAbs() || strings.HasPrefix(u.Path, "/") || strings.Contains(u.Path, "..") {
			return
		}
		name := path.Base(u.Path)
		if !seen[name] {
			seen[name] = true
			files = append(files, name)
		}
	})
	sort.Strings(files)
	return files, nil
}
