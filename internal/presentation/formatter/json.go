package formatter

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
)

// JSONFormatter writes the report as indented JSON.
type JSONFormatter struct {
	w io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

func (f *JSONFormatter) Format(report Report) error {
	data, err := sonic.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f.w, string(data))
	return err
}
