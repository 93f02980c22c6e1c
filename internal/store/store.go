// Package store persists run artifacts: the running inventory snapshot and
// the final combined report.
package store

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/DedPeredoz/rustyloot-scraper/internal/inventory"
)

// Report is the final document written once at the end of a run.
type Report struct {
	Inventory    inventory.Aggregate `json:"inventory"`
	MarketSample []any               `json:"market_sample"`
}

// SaveJSON writes v to path as pretty-printed UTF-8 JSON. Non-ASCII
// characters are preserved literally. The write goes to a temp file first,
// then renames, so readers never observe a partial document.
func SaveJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
