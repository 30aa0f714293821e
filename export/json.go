package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// JSONWriter writes the run's output envelope as a single indented JSON
// document, or records as newline-delimited JSON.
type JSONWriter struct {
	w  io.Writer
	mu sync.Mutex
}

// NewJSONWriter initialises the JSON writer on w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// WriteOutput writes one output envelope as an indented JSON document.
func (jw *JSONWriter) WriteOutput(out any) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode json output: %w", err)
	}
	return nil
}

// WriteLines writes one JSON object per line for each record.
func WriteLines[T any](w io.Writer, records []T) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode json record: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush json records: %w", err)
	}
	return nil
}
