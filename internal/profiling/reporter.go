package profiling

import (
	"fmt"
	"io"
	"os"
)

// WriterReporter writes observability lines to an io.Writer, one per call.
type WriterReporter struct {
	w io.Writer
}

// NewWriterReporter creates a reporter over w
func NewWriterReporter(w io.Writer) *WriterReporter {
	return &WriterReporter{w: w}
}

// NewStdoutReporter creates a reporter that prints to standard output
func NewStdoutReporter() *WriterReporter {
	return &WriterReporter{w: os.Stdout}
}

// Line formats and writes a single line. Write errors are ignored: the
// output is a debugging aid.
func (r *WriterReporter) Line(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

// NopReporter discards every line.
type NopReporter struct{}

func (NopReporter) Line(string, ...any) {}
