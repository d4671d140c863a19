package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"bitmapindex/indexer/internal/domain"

	log "github.com/sirupsen/logrus"
)

// DefaultExtensions are the file extensions indexed when none are configured.
var DefaultExtensions = []string{"bmp"}

// Result is the outcome of parsing one filename. Record is set only for FileDisplay.
type Result struct {
	Kind   domain.FileKind
	Record domain.ParsedRecord
}

type Parser struct {
	extensions map[string]bool
}

func New(extensions []string) *Parser {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts[strings.TrimPrefix(ext, ".")] = true
	}
	return &Parser{extensions: exts}
}

// ParseFilename decodes "{route}_{destination}_{sequence}{version}{page}.bmp".
// The route of a display record is already normalized.
func (p *Parser) ParseFilename(filename string) Result {
	dot := strings.IndexByte(filename, '.')
	if dot < 0 || !p.extensions[filename[dot+1:]] {
		return Result{Kind: domain.FileSkipped}
	}

	fields := strings.Split(filename[:dot], "_")
	if len(fields) != 3 {
		return Result{Kind: domain.FileMisc}
	}
	route, dest, info := fields[0], fields[1], fields[2]

	if len(info) < 2 || !isASCIIDigit(info[len(info)-1]) {
		return Result{Kind: domain.FileInvalid}
	}

	_, seqSize := utf8.DecodeRuneInString(info)
	if seqSize >= len(info) {
		return Result{Kind: domain.FileInvalid}
	}
	field := info[seqSize : len(info)-1]
	version := DecodeVersion(field)
	if version.Field() != field {
		log.Debugf("Version field %q of %s is stored as %q", field, filename, version.Code())
	}

	return Result{
		Kind: domain.FileDisplay,
		Record: domain.ParsedRecord{
			Route:       NormalizeRoute(route),
			Destination: dest,
			Sequence:    info[:seqSize],
			Page:        info[len(info)-1:],
			Version:     version,
		},
	}
}

// DecodeVersion turns the middle part of the info field into a Version.
// An empty or all-filler field is plain; anything else is marked by its first character.
func DecodeVersion(field string) domain.Version {
	if strings.Trim(field, string(domain.Filler)) == "" {
		return domain.PlainVersion{Length: utf8.RuneCountInString(field)}
	}
	marker, size := utf8.DecodeRuneInString(field)
	return domain.MarkedVersion{
		Marker: string(marker),
		Length: utf8.RuneCountInString(field[size:]),
	}
}

// NormalizeRoute lower-cases the letters after the last digit of a route, so that
// "12A" and "12a" are the same route. Routes without digits are returned unchanged.
func NormalizeRoute(route string) domain.RouteID {
	if isNumeric(route) {
		return domain.RouteID(route)
	}

	last := -1
	for i, r := range route {
		if unicode.IsDigit(r) {
			last = i + utf8.RuneLen(r)
		}
	}
	if last < 0 || last >= len(route) {
		return domain.RouteID(route)
	}
	return domain.RouteID(route[:last] + strings.ToLower(route[last:]))
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isASCIIDigit(b byte) bool {
	return '0' <= b && b <= '9'
}
