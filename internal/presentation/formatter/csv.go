package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// CSVFormatter writes one record per row with RFC3339 timestamps, meant
// for piping into other tools.
type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

func (f *CSVFormatter) Format(report Report) error {
	w := csv.NewWriter(f.w)
	defer w.Flush()

	headers := []string{"ID", "Timestamp", "Direction", "Duration (s)", "Number", "Name"}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, rec := range report.Records {
		record := []string{
			rec.ID,
			rec.Timestamp.Format(time.RFC3339),
			string(rec.Direction),
			fmt.Sprintf("%d", rec.Duration),
			rec.PhoneNumber,
			rec.Name,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}
