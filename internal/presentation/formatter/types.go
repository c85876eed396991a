package formatter

import (
	"fmt"
	"io"
	"time"

	"callscope/internal/core/model"
)

// Report is the printable result of reconciling the call log against a
// single number.
type Report struct {
	Name        string             `json:"name,omitempty"`
	Phone       string             `json:"phone"`
	Aggregates  model.Aggregates   `json:"aggregates"`
	Records     []model.CallRecord `json:"records"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// Formatter renders a report to its writer.
type Formatter interface {
	Format(report Report) error
}

// New returns the formatter for an output format name.
func New(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "table", "":
		return NewTableFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "summary":
		return NewSummaryFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected table, json, csv, summary)", format)
	}
}
