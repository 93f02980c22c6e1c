package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/DedPeredoz/rustyloot-scraper/internal/inventory"
	"github.com/DedPeredoz/rustyloot-scraper/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// echoLimit caps the rendered argument text of one event.
const echoLimit = 500

// Renderer writes decoded events to an output stream.
type Renderer interface {
	Render(ev model.SocketEvent) error
	Summary(agg inventory.Aggregate) error
}

// ---------------------------------------------------------------------------
// Text Renderer (colorized terminal output)
// ---------------------------------------------------------------------------

var (
	styleIn   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))  // green
	styleOut  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // orange
	styleName = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	styleDim  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
)

// TextRenderer echoes events to the terminal with direction-based colors.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer returns a Renderer that writes colorized text to stdout.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{w: os.Stdout}
}

func (r *TextRenderer) Render(ev model.SocketEvent) error {
	stamp := time.Now().Format("15:04:05.000")
	dir := styleDirTag(ev.Direction)
	name := styleName.Render(fmt.Sprintf("'%v'", ev.Name))

	line := fmt.Sprintf("[%s] %s EVENT %s: %s", stamp, dir, name, truncate(fmt.Sprintf("%v", ev.Args), echoLimit))
	_, err := fmt.Fprintln(r.w, line)
	return err
}

// Summary prints the first few inventory entries after a run, sorted by name
// for stable output.
func (r *TextRenderer) Summary(agg inventory.Aggregate) error {
	if len(agg) == 0 {
		_, err := fmt.Fprintln(r.w, styleDim.Render("No inventory captured."))
		return err
	}

	names := make([]string, 0, len(agg))
	for name := range agg {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > 5 {
		names = names[:5]
	}

	if _, err := fmt.Fprintln(r.w, "\nTop inventory entries:"); err != nil {
		return err
	}
	for _, name := range names {
		rec := agg[name]
		line := fmt.Sprintf(" • %s — qty=%d  total≈$%s", name, rec.Amount, rec.TotalPrice.StringFixed(2))
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	return nil
}

func styleDirTag(d model.Direction) string {
	switch d {
	case model.Out:
		return styleOut.Render(string(d))
	default:
		return styleIn.Render(string(d))
	}
}

// truncate clips s to at most n bytes, marking the cut.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

// ---------------------------------------------------------------------------
// JSON Renderer (structured output for piping)
// ---------------------------------------------------------------------------

// JSONRenderer prints each decoded event as a single JSON object per line.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer returns a Renderer that writes JSON lines to stdout.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(os.Stdout)}
}

func (r *JSONRenderer) Render(ev model.SocketEvent) error {
	return r.enc.Encode(ev)
}

func (r *JSONRenderer) Summary(agg inventory.Aggregate) error {
	return r.enc.Encode(agg)
}
