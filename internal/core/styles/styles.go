// Package styles provides shared lipgloss styles for the TUI.
package styles

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the named palette and whether it exists.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

var (
	mu     sync.RWMutex
	active = themes[DefaultTheme]
)

// SetTheme installs the palette used by the style accessors.
func SetTheme(p Palette) {
	mu.Lock()
	defer mu.Unlock()
	active = p
}

// Theme returns the active palette.
func Theme() Palette {
	mu.RLock()
	defer mu.RUnlock()
	return active
}

// Title styles section headers.
func Title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Theme().Primary)
}

// Participant styles the speaker label of a chunk.
func Participant() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Theme().Secondary)
}

// Muted styles secondary text (timestamps, model names, hints).
func Muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Theme().Muted)
}

// Selected styles the cursor row.
func Selected() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Background(Theme().Surface).Foreground(Theme().Foreground)
}

// ErrorBanner styles the fetch-failure message with its retry hint.
func ErrorBanner() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Theme().Error)
}

// StatusBar styles the bottom status line.
func StatusBar() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Theme().Muted)
}

// Badge styles small inline markers (mode name, page indicator).
func Badge() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Theme().Warning)
}

// Expanded styles the nested micro-thread block under a chunk.
func Expanded() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Theme().Foreground).MarginLeft(4)
}
