package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// JSONLWriter writes newline-delimited JSON (JSONL).
type JSONLWriter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewJSONLWriter creates a JSONL writer. URLs and non-ASCII prices are
// written verbatim rather than HTML-escaped.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	return &JSONLWriter{
		w:   bw,
		enc: enc,
	}
}

// Write writes a single item as a JSON line and flushes it.
func (w *JSONLWriter) Write(data any) error {
	// Encode terminates the value with a newline.
	if err := w.enc.Encode(data); err != nil {
		return err
	}
	return w.w.Flush()
}

// Flush flushes the buffer.
func (w *JSONLWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONLWriter) Close() error {
	return w.Flush()
}
