package render

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the color scheme of the chat window
type Palette struct {
	Name        string
	Description string

	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	UserBubble  lipgloss.Color
	BotBubble   lipgloss.Color
	ErrorBubble lipgloss.Color

	Primary lipgloss.Color
	Accent  lipgloss.Color
	Warning lipgloss.Color

	Text    lipgloss.Color
	TextDim lipgloss.Color
}

// DefaultPaletteName is used when no palette is configured
const DefaultPaletteName = "redactor"

var (
	// RedactorPalette is the gray/blue/red scheme of the original web chat
	RedactorPalette = Palette{
		Name:        "redactor",
		Description: "Gray panels, blue user bubbles, red error bubbles",

		Background: lipgloss.Color("#111827"),
		Surface:    lipgloss.Color("#1f2937"),
		Border:     lipgloss.Color("#374151"),

		UserBubble:  lipgloss.Color("#2563eb"),
		BotBubble:   lipgloss.Color("#374151"),
		ErrorBubble: lipgloss.Color("#dc2626"),

		Primary: lipgloss.Color("#3b82f6"),
		Accent:  lipgloss.Color("#9ca3af"),
		Warning: lipgloss.Color("#f59e0b"),

		Text:    lipgloss.Color("#f3f4f6"),
		TextDim: lipgloss.Color("#9ca3af"),
	}

	TokyoNightPalette = Palette{
		Name:        "tokyonight",
		Description: "Tokyo Night dark with blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		UserBubble:  lipgloss.Color("#3d59a1"),
		BotBubble:   lipgloss.Color("#292e42"),
		ErrorBubble: lipgloss.Color("#db4b4b"),

		Primary: lipgloss.Color("#7aa2f7"),
		Accent:  lipgloss.Color("#bb9af7"),
		Warning: lipgloss.Color("#e0af68"),

		Text:    lipgloss.Color("#c0caf5"),
		TextDim: lipgloss.Color("#565f89"),
	}

	NordPalette = Palette{
		Name:        "nord",
		Description: "Nord arctic tones",

		Background: lipgloss.Color("#2e3440"),
		Surface:    lipgloss.Color("#3b4252"),
		Border:     lipgloss.Color("#4c566a"),

		UserBubble:  lipgloss.Color("#5e81ac"),
		BotBubble:   lipgloss.Color("#434c5e"),
		ErrorBubble: lipgloss.Color("#bf616a"),

		Primary: lipgloss.Color("#88c0d0"),
		Accent:  lipgloss.Color("#b48ead"),
		Warning: lipgloss.Color("#ebcb8b"),

		Text:    lipgloss.Color("#eceff4"),
		TextDim: lipgloss.Color("#7b88a1"),
	}
)

var (
	paletteMu sync.RWMutex
	palettes  = map[string]Palette{
		RedactorPalette.Name:   RedactorPalette,
		TokyoNightPalette.Name: TokyoNightPalette,
		NordPalette.Name:       NordPalette,
	}
	current = RedactorPalette
)

// CurrentPalette returns the active palette
func CurrentPalette() Palette {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return current
}

// UsePalette activates the named palette; unknown names leave the current
// one in place and report false
func UsePalette(name string) bool {
	p, ok := PaletteByName(name)
	if !ok {
		return false
	}
	paletteMu.Lock()
	current = p
	paletteMu.Unlock()
	return true
}

// PaletteByName looks up a built-in palette
func PaletteByName(name string) (Palette, bool) {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	p, ok := palettes[name]
	return p, ok
}

// PaletteNames returns the built-in palette names, sorted
func PaletteNames() []string {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
