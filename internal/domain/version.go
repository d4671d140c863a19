package domain

import "strconv"

// Filler is the placeholder character of an unmarked version field.
const Filler = 'o'

// Version is a decoded version field: either PlainVersion or MarkedVersion.
type Version interface {
	// Code is the canonical version code stored in the catalog and the dump.
	Code() string
	// Field rebuilds the version field as it appears in a filename.
	Field() string
	isVersion()
}

// PlainVersion is a field made only of filler characters; Length is its rank.
type PlainVersion struct {
	Length int
}

func (v PlainVersion) Code() string {
	return strconv.Itoa(v.Length)
}

func (v PlainVersion) Field() string {
	return fillers(v.Length)
}

func (PlainVersion) isVersion() {}

// MarkedVersion is a special version: a marker character followed by Length fillers.
type MarkedVersion struct {
	Marker string
	Length int
}

func (v MarkedVersion) Code() string {
	return v.Marker + strconv.Itoa(v.Length)
}

func (v MarkedVersion) Field() string {
	return v.Marker + fillers(v.Length)
}

func (MarkedVersion) isVersion() {}

func fillers(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = Filler
	}
	return string(b)
}
