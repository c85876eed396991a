package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"callscope/internal/core/model"
	"callscope/internal/util"
)

// TableFormatter renders a report as a bordered table, newest call
// first, followed by a per-direction total row.
type TableFormatter struct {
	w       io.Writer
	headers []string
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		w:       w,
		headers: []string{"When", "Direction", "Duration", "Number", "Name"},
	}
}

func (f *TableFormatter) Format(report Report) error {
	if title := reportTitle(report); title != "" {
		fmt.Fprintln(f.w, title)
	}
	if len(report.Records) == 0 {
		fmt.Fprintln(f.w, "No calls found")
		return nil
	}

	rows := f.buildRows(report)
	widths := f.calculateColumnWidths(rows)

	f.printBorder(widths, "top")
	f.printRow(f.headers, widths)
	f.printBorder(widths, "middle")
	for _, row := range rows {
		f.printRow(row, widths)
	}
	f.printBorder(widths, "middle")
	f.printRow(f.totalRow(report.Aggregates), widths)
	f.printBorder(widths, "bottom")

	return nil
}

func (f *TableFormatter) buildRows(report Report) [][]string {
	tp := util.GetTimeProvider()
	rows := make([][]string, 0, len(report.Records))
	for _, rec := range report.Records {
		rows = append(rows, []string{
			tp.FormatRelative(report.GeneratedAt, rec.Timestamp),
			string(rec.Direction),
			util.FormatCallDuration(rec.Duration),
			rec.PhoneNumber,
			rec.Name,
		})
	}
	return rows
}

func (f *TableFormatter) totalRow(agg model.Aggregates) []string {
	return []string{
		"Total",
		fmt.Sprintf("%d calls", agg.Total()),
		util.FormatCallDuration(agg.TotalDurationSeconds),
		fmt.Sprintf("in %d out %d", agg.Incoming, agg.Outgoing),
		fmt.Sprintf("missed %d", agg.Missed),
	}
}

func (f *TableFormatter) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i, value := range row {
			if w := runewidth.StringWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	fmt.Fprint(f.w, left)
	for i, width := range widths {
		fmt.Fprint(f.w, strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			fmt.Fprint(f.w, middle)
		}
	}
	fmt.Fprintln(f.w, right)
}

func (f *TableFormatter) printRow(values []string, widths []int) {
	fmt.Fprint(f.w, "│")
	for i, value := range values {
		pad := widths[i] - runewidth.StringWidth(value)
		if pad < 0 {
			pad = 0
		}
		fmt.Fprintf(f.w, " %s%s │", value, strings.Repeat(" ", pad))
	}
	fmt.Fprintln(f.w)
}

func reportTitle(report Report) string {
	switch {
	case report.Name != "" && report.Phone != "":
		return fmt.Sprintf("Call history for %s (%s)", report.Name, report.Phone)
	case report.Phone != "":
		return fmt.Sprintf("Call history for %s", report.Phone)
	default:
		return ""
	}
}
