package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + frame for one output stream.
// Styles are bound to a renderer, so writing to a pipe or buffer
// produces plain text.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done                                lipgloss.Style
	Frame                                         lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
}

// ThemeNames lists the accepted theme names.
var ThemeNames = []string{"classic", "neon", "mono"}

// ValidTheme reports whether name is a known theme.
func ValidTheme(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range ThemeNames {
		if n == name {
			return true
		}
	}
	return false
}

var asciiBorder = lipgloss.Border{
	Top: "-", Bottom: "-", Left: "|", Right: "|",
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
}

// NewTheme builds the named theme for output written to w.
func NewTheme(name string, w io.Writer) (Theme, error) {
	return ThemeFor(name, lipgloss.NewRenderer(w))
}

// ThemeFor builds the named theme on an existing renderer.
func ThemeFor(name string, r *lipgloss.Renderer) (Theme, error) {
	s := r.NewStyle
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		return Theme{
			Name:         "neon",
			Title:        s().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:        s().Foreground(lipgloss.Color("8")),
			Accent:       s().Foreground(lipgloss.Color("14")),
			Success:      s().Foreground(lipgloss.Color("10")),
			Error:        s().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      s().Foreground(lipgloss.Color("11")),
			Selected:     s().Bold(true).Reverse(true),
			Done:         s().Faint(true).Strikethrough(true),
			Frame:        s().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("13")).Padding(0, 1),
			BoxUnchecked: "◻",
			BoxChecked:   "◼",
			SymDone:      "✔",
			SymPending:   "•",
		}, nil
	case "mono":
		return Theme{
			Name:         "mono",
			Title:        s(),
			Muted:        s(),
			Accent:       s(),
			Success:      s(),
			Error:        s(),
			Pending:      s(),
			Selected:     s(),
			Done:         s(),
			Frame:        s().Border(asciiBorder).Padding(0, 1),
			BoxUnchecked: "[ ]",
			BoxChecked:   "[x]",
			SymDone:      "x",
			SymPending:   "-",
		}, nil
	case "", "classic":
		return Theme{
			Name:         "classic",
			Title:        s().Bold(true),
			Muted:        s().Faint(true),
			Accent:       s().Foreground(lipgloss.Color("12")),
			Success:      s().Foreground(lipgloss.Color("42")),
			Error:        s().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      s().Foreground(lipgloss.Color("214")),
			Selected:     s().Bold(true).Reverse(true),
			Done:         s().Faint(true).Strikethrough(true),
			Frame:        s().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1),
			BoxUnchecked: "☐",
			BoxChecked:   "☑",
			SymDone:      "✔",
			SymPending:   "•",
		}, nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q (want one of %s)", name, strings.Join(ThemeNames, ", "))
}
