package formatter

import (
	"fmt"
	"io"
	"strings"

	"callscope/internal/util"
)

// SummaryFormatter prints the per-direction aggregates without the
// record listing.
type SummaryFormatter struct {
	w io.Writer
}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter(w io.Writer) *SummaryFormatter {
	return &SummaryFormatter{w: w}
}

// Format outputs the summary of the reconciled call history.
func (f *SummaryFormatter) Format(report Report) error {
	fmt.Fprintln(f.w, strings.Repeat("=", 50))
	if title := reportTitle(report); title != "" {
		fmt.Fprintln(f.w, title)
	} else {
		fmt.Fprintln(f.w, "Call History Summary")
	}
	fmt.Fprintln(f.w, strings.Repeat("=", 50))
	fmt.Fprintln(f.w)

	agg := report.Aggregates
	if agg.Total() == 0 {
		fmt.Fprintln(f.w, "No calls found")
		fmt.Fprintln(f.w)
		fmt.Fprintln(f.w, strings.Repeat("=", 50))
		return nil
	}

	fmt.Fprintln(f.w, "Calls:")
	fmt.Fprintf(f.w, "  Incoming: %s\n", util.FormatCount(agg.Incoming))
	fmt.Fprintf(f.w, "  Outgoing: %s\n", util.FormatCount(agg.Outgoing))
	fmt.Fprintf(f.w, "  Missed:   %s\n", util.FormatCount(agg.Missed))
	if agg.Rejected > 0 {
		fmt.Fprintf(f.w, "  Rejected: %s\n", util.FormatCount(agg.Rejected))
	}
	if agg.Blocked > 0 {
		fmt.Fprintf(f.w, "  Blocked:  %s\n", util.FormatCount(agg.Blocked))
	}
	fmt.Fprintf(f.w, "  Total:    %s\n", util.FormatCount(agg.Total()))
	fmt.Fprintln(f.w)
	fmt.Fprintf(f.w, "Talk time: %s\n", util.FormatCallDuration(agg.TotalDurationSeconds))
	fmt.Fprintln(f.w)
	fmt.Fprintln(f.w, strings.Repeat("=", 50))

	return nil
}
