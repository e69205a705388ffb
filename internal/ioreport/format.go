// Package ioreport writes dashboard snapshots, family lists and resident
// lists as text, JSON, CSV or PDF.
package ioreport

import (
	"strings"
)

// Format is an output format.
type Format int

const (
	Text Format = iota
	JSON
	CSV
	PDF
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return Text, nil
	case "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	case "pdf":
		return PDF, nil
	default:
		return Text, FormatError(s)
	}
}

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case CSV:
		return "csv"
	case PDF:
		return "pdf"
	default:
		return "text"
	}
}
