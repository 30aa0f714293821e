// Package export serializes finalized scrape results to flat-file
// formats: row-flattened CSV, newline-delimited JSON, and an XML tree.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	amazonapi "github.com/belo-research/amazon-product-api"
)

// Filename builds the conventional output name for a run:
// "<kind>(<term>)_<unix-ms>.<ext>". term is the keyword for listing runs
// and the item identifier otherwise.
func Filename(kind amazonapi.Kind, term, ext string) string {
	return fmt.Sprintf("%s(%s)_%d.%s", kind, term, time.Now().UnixMilli(), ext)
}

// Create opens the named file for writing, creating parent directories
// as needed.
func Create(filename string) (*os.File, error) {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return f, nil
}
