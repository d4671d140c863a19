package domain

// RouteID is a case-normalized route identifier, the primary catalog key.
type RouteID string

func (r RouteID) String() string {
	return string(r)
}

// ParsedRecord is one successfully decoded display filename.
type ParsedRecord struct {
	Route       RouteID `json:"route"`
	Destination string  `json:"destination"`
	Sequence    string  `json:"sequence"`
	Page        string  `json:"page"`
	Version     Version `json:"-"`
}

// FileKind tells how a filename was classified by the parser.
type FileKind int

const (
	FileSkipped FileKind = iota // extension not indexed
	FileMisc                    // not route_destination_info
	FileInvalid                 // info does not end with a page digit
	FileDisplay                 // decoded into a ParsedRecord
)

func (k FileKind) String() string {
	switch k {
	case FileSkipped:
		return "skipped"
	case FileMisc:
		return "misc"
	case FileInvalid:
		return "invalid"
	case FileDisplay:
		return "display"
	default:
		return "unknown"
	}
}
