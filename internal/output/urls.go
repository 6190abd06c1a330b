package output

import (
	"bufio"
	"fmt"
	"io"
)

// URLWriter writes one source URL per line.
type URLWriter struct {
	w *bufio.Writer
}

// NewURLWriter creates a URL writer.
func NewURLWriter(w io.Writer) *URLWriter {
	return &URLWriter{
		w: bufio.NewWriter(w),
	}
}

// Write writes the URL of data, which must be a Locator or a string, and
// flushes it.
func (w *URLWriter) Write(data any) error {
	var u string
	switch v := data.(type) {
	case Locator:
		u = v.Location()
	case string:
		u = v
	default:
		return fmt.Errorf("cannot emit %T as a URL", data)
	}

	if _, err := w.w.WriteString(u); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

// Flush flushes the buffer.
func (w *URLWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *URLWriter) Close() error {
	return w.Flush()
}
