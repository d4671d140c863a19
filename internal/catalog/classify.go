package catalog

import (
	"math"
	"sort"
	"strconv"
	"unicode/utf8"

	"bitmapindex/indexer/internal/domain"
)

// Bucket is the ordering class of a route, chosen by where its first digit run starts.
type Bucket int

const (
	BucketNumeric  Bucket = iota // digits first: "1", "12A"
	BucketAlphabet               // one leading character: "A10", "N21"
	BucketOthers                 // anything else: "NA29", "Airport"
)

// OthersLabel is the label of the group collecting BucketOthers routes.
const OthersLabel = "Others"

func (b Bucket) String() string {
	switch b {
	case BucketNumeric:
		return "numeric"
	case BucketAlphabet:
		return "alphabet"
	default:
		return "others"
	}
}

// Prefix is the first run of ASCII digits in a route.
type Prefix struct {
	Start int
	Value int
}

// NumericPrefix finds the first run of digits in route. ok is false when route has none.
// Start is a character index; values that overflow int saturate.
func NumericPrefix(route domain.RouteID) (p Prefix, ok bool) {
	s := string(route)
	start, end := -1, -1
	chars := 0
	for i, r := range s {
		isDigit := '0' <= r && r <= '9'
		if isDigit && start < 0 {
			start, p.Start = i, chars
		}
		if !isDigit && start >= 0 {
			end = i
			break
		}
		chars++
	}
	if start < 0 {
		return Prefix{}, false
	}
	if end < 0 {
		end = len(s)
	}
	v, err := strconv.Atoi(s[start:end])
	if err != nil {
		v = math.MaxInt
	}
	p.Value = v
	return p, true
}

// BucketOf classifies a route.
func BucketOf(route domain.RouteID) Bucket {
	p, ok := NumericPrefix(route)
	switch {
	case ok && p.Start == 0:
		return BucketNumeric
	case ok && p.Start == 1:
		return BucketAlphabet
	default:
		return BucketOthers
	}
}

type entry struct {
	value int
	route domain.RouteID
}

// Classify orders every route of c into display groups: numeric routes banded by
// hundreds, then alphabet routes grouped by first character, then "Others".
func Classify(c *domain.Catalog) domain.GroupedCatalog {
	var numeric, alphabet, others []entry
	for _, route := range c.Routes() {
		p, _ := NumericPrefix(route)
		e := entry{value: p.Value, route: route}
		switch BucketOf(route) {
		case BucketNumeric:
			numeric = append(numeric, e)
		case BucketAlphabet:
			alphabet = append(alphabet, e)
		default:
			others = append(others, e)
		}
	}

	sort.Slice(numeric, func(i, j int) bool {
		if numeric[i].value != numeric[j].value {
			return numeric[i].value < numeric[j].value
		}
		return numeric[i].route < numeric[j].route
	})
	byRoute := func(es []entry) {
		sort.Slice(es, func(i, j int) bool { return es[i].route < es[j].route })
	}
	byRoute(alphabet)
	byRoute(others)

	groups := make(domain.GroupedCatalog, 0)
	for _, run := range runs(numeric, func(e entry) string { return strconv.Itoa(e.value / 100) }) {
		groups = append(groups, newGroup(c, rangeLabel(run), run))
	}
	for _, run := range runs(alphabet, func(e entry) string { return firstChar(e.route) }) {
		groups = append(groups, newGroup(c, rangeLabel(run), run))
	}
	if len(others) > 0 {
		groups = append(groups, newGroup(c, OthersLabel, others))
	}
	return groups
}

// runs splits sorted entries into maximal runs sharing the same key.
func runs(es []entry, key func(entry) string) [][]entry {
	var out [][]entry
	for i := 0; i < len(es); {
		j := i + 1
		for j < len(es) && key(es[j]) == key(es[i]) {
			j++
		}
		out = append(out, es[i:j])
		i = j
	}
	return out
}

func rangeLabel(run []entry) string {
	return string(run[0].route) + "-" + string(run[len(run)-1].route)
}

func newGroup(c *domain.Catalog, label string, run []entry) domain.Group {
	routes := make([]domain.RouteID, len(run))
	for i, e := range run {
		routes[i] = e.route
	}
	return domain.Group{
		Label:   label,
		Routes:  routes,
		Catalog: c.Restrict(routes),
	}
}

func firstChar(route domain.RouteID) string {
	_, size := utf8.DecodeRuneInString(string(route))
	return string(route)[:size]
}
