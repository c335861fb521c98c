// Package views implements the screens of the price-comparison client
// (search, product detail, watch list) as framework-free state machines
// over {idle, loading, error, empty, populated} that render to an
// io.Writer.
package views

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// ViewState is the render state a view derives from its query results.
type ViewState int

// View states.
const (
	ViewIdle ViewState = iota
	ViewLoading
	ViewError
	ViewEmpty
	ViewPopulated
)

func (s ViewState) String() string {
	switch s {
	case ViewIdle:
		return "idle"
	case ViewLoading:
		return "loading"
	case ViewError:
		return "error"
	case ViewEmpty:
		return "empty"
	case ViewPopulated:
		return "populated"
	default:
		return "unknown"
	}
}

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

// renderError writes the shared error affordance: a message plus an
// explicit way to retry. Partial results are never rendered alongside it.
func renderError(w io.Writer, err error, retryHint string) error {
	if _, werr := fmt.Fprintf(w, "요청에 실패했습니다: %v\n%s\n", err, retryHint); werr != nil {
		return werr
	}
	return nil
}

// truncate shortens s to at most maxLen runes. Cutting on runes, not
// bytes, keeps Hangul product names valid UTF-8.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
