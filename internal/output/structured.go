package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// JSONFormatter writes the report as a JSON array
type JSONFormatter struct {
	Indent string
}

func (f *JSONFormatter) Format(reports []AuthorReport, w io.Writer) error {
	if reports == nil {
		reports = []AuthorReport{}
	}
	enc := json.NewEncoder(w)
	if f.Indent != "" {
		enc.SetIndent("", f.Indent)
	}
	return enc.Encode(reports)
}

// YAMLFormatter writes the report as a YAML sequence
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(reports []AuthorReport, w io.Writer) error {
	if reports == nil {
		reports = []AuthorReport{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		return err
	}
	return enc.Close()
}
