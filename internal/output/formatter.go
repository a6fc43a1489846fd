package output

import (
	"fmt"
	"io"
)

// Formatter renders a report
type Formatter interface {
	Format(reports []AuthorReport, w io.Writer) error
}

// Format names an output encoding
type Format string

const (
	FormatText Format = "text" // one line per author
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
	}
}

// NewFormatter creates the formatter for f, falling back to text
func NewFormatter(f Format) Formatter {
	switch f {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TextFormatter{}
	}
}
