package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

var ErrNoTable = errors.New("no report table found")

// Match is one report row whose route matched a filter.
type Match struct {
	Route       string
	Destination string
	Sequence    string
	Versions    []string
}

// FilterRoutes reads a report page and returns the rows whose route contains query,
// compared case-insensitively. Rows covered by a merged route cell inherit its
// route and destination. An empty query matches every row.
func FilterRoutes(r io.Reader, query string) ([]Match, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	if doc.Find("table").Length() == 0 {
		return nil, ErrNoTable
	}
	rows := doc.Find("table > tbody > tr")

	query = strings.ToUpper(query)
	var (
		matches   []Match
		route     string
		dest      string
		remaining int
		show      bool
	)
	rows.Each(func(i int, tr *goquery.Selection) {
		if cell := tr.Children().First(); cell.HasClass("route") {
			route = strings.TrimSpace(cell.Text())
			show = strings.Contains(strings.ToUpper(route), query)
			remaining = rowSpan(cell)
		}
		if cell := tr.Children().Filter("td.dest"); cell.Length() > 0 {
			dest = strings.TrimSpace(cell.Text())
		}
		if remaining <= 0 {
			log.Debugf("Row %d is outside any route cell, skipping", i)
			return
		}
		remaining--
		if !show {
			return
		}

		m := Match{
			Route:       route,
			Destination: dest,
			Sequence:    strings.TrimSpace(tr.Children().Filter("td.seq").Text()),
		}
		tr.Find("td.files h1").Each(func(_ int, h *goquery.Selection) {
			m.Versions = append(m.Versions, strings.TrimSpace(h.Text()))
		})
		matches = append(matches, m)
	})

	return matches, nil
}

func rowSpan(cell *goquery.Selection) int {
	v, ok := cell.Attr("rowspan")
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
