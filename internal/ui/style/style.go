// Package style provides shared terminal styling: brand colors, icons and the styles
// used by log and plan output.
package style

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Brand Colors.
var (
	Iris   = lipgloss.Color("#5D3FD3")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
)

// Palette holds styles bound to one output. Colors are dropped when the output is not a
// terminal.
type Palette struct {
	Title  lipgloss.Style
	Muted  lipgloss.Style
	OK     lipgloss.Style
	Warn   lipgloss.Style
	Error  lipgloss.Style
	Cached lipgloss.Style
}

// For returns the palette for w.
func For(w io.Writer) Palette {
	r := lipgloss.NewRenderer(w)
	return Palette{
		Title:  r.NewStyle().Foreground(Iris).Bold(true),
		Muted:  r.NewStyle().Foreground(Slate),
		OK:     r.NewStyle().Foreground(Green),
		Warn:   r.NewStyle().Foreground(Yellow),
		Error:  r.NewStyle().Foreground(Red),
		Cached: r.NewStyle().Foreground(Slate).Faint(true),
	}
}
