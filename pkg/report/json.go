package report

import (
	"encoding/json"
	"io"
)

// JSONFormatter writes an analysis result as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON result formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes the result as indented JSON to the given writer.
func (f *JSONFormatter) Format(w io.Writer, result *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
