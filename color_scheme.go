package ask

import (
	"fmt"
	"strings"
)

// ColorScheme defines the colors of the terminal primitives.
type ColorScheme struct {
	Name        string `json:"name"`
	Bar         Color  `json:"bar"`         // Guide bar and frame symbols
	Active      Color  `json:"active"`      // Symbol of the prompt being answered
	Message     Color  `json:"message"`     // Question text
	Input       Color  `json:"input"`       // Typed text
	Placeholder Color  `json:"placeholder"` // Placeholder shown on empty input
	Option      Color  `json:"option"`      // Unselected options
	Hint        Color  `json:"hint"`        // Option hints and submitted values
	Selected    Color  `json:"selected"`    // Highlighted or checked option
	Error       Color  `json:"error"`       // Validation messages
	Success     Color  `json:"success"`     // Symbol of an answered prompt
	Cancel      Color  `json:"cancel"`      // Symbol of an aborted prompt
	// Plain disables every escape sequence.
	Plain bool `json:"plain"`
}

// Color represents an RGB color with optional formatting.
type Color struct {
	R    uint8 `json:"r"`
	G    uint8 `json:"g"`
	B    uint8 `json:"b"`
	Bold bool  `json:"bold"`
}

// ThemeDefault is the default color scheme with cyan accents
var ThemeDefault = &ColorScheme{
	Name:        "default",
	Bar:         Color{R: 128, G: 128, B: 128},
	Active:      Color{R: 0, G: 255, B: 255, Bold: true},
	Message:     Color{R: 255, G: 255, B: 255, Bold: true},
	Input:       Color{R: 255, G: 255, B: 255},
	Placeholder: Color{R: 128, G: 128, B: 128},
	Option:      Color{R: 200, G: 200, B: 200},
	Hint:        Color{R: 128, G: 128, B: 128},
	Selected:    Color{R: 0, G: 255, B: 0, Bold: true},
	Error:       Color{R: 255, G: 215, B: 0},
	Success:     Color{R: 0, G: 255, B: 0},
	Cancel:      Color{R: 255, G: 85, B: 85},
}

// ThemeDark is a dark theme with light blue accents and off-white text
var ThemeDark = &ColorScheme{
	Name:        "dark",
	Bar:         Color{R: 98, G: 114, B: 164},
	Active:      Color{R: 102, G: 217, B: 239, Bold: true},
	Message:     Color{R: 248, G: 248, B: 242, Bold: true},
	Input:       Color{R: 248, G: 248, B: 242},
	Placeholder: Color{R: 98, G: 114, B: 164},
	Option:      Color{R: 189, G: 147, B: 249},
	Hint:        Color{R: 98, G: 114, B: 164},
	Selected:    Color{R: 80, G: 250, B: 123, Bold: true},
	Error:       Color{R: 255, G: 184, B: 108},
	Success:     Color{R: 80, G: 250, B: 123},
	Cancel:      Color{R: 255, G: 85, B: 85},
}

// ThemeLight is a light theme with blue accents and dark gray text
var ThemeLight = &ColorScheme{
	Name:        "light",
	Bar:         Color{R: 149, G: 157, B: 165},
	Active:      Color{R: 0, G: 119, B: 187, Bold: true},
	Message:     Color{R: 36, G: 41, B: 46, Bold: true},
	Input:       Color{R: 36, G: 41, B: 46},
	Placeholder: Color{R: 149, G: 157, B: 165},
	Option:      Color{R: 88, G: 96, B: 105},
	Hint:        Color{R: 149, G: 157, B: 165},
	Selected:    Color{R: 40, G: 167, B: 69, Bold: true},
	Error:       Color{R: 215, G: 58, B: 73},
	Success:     Color{R: 40, G: 167, B: 69},
	Cancel:      Color{R: 215, G: 58, B: 73},
}

// ThemeAccessible is a colorblind-safe theme with high contrast
var ThemeAccessible = &ColorScheme{
	Name:        "accessible",
	Bar:         Color{R: 204, G: 204, B: 204},
	Active:      Color{R: 0, G: 114, B: 178, Bold: true},
	Message:     Color{R: 255, G: 255, B: 255, Bold: true},
	Input:       Color{R: 255, G: 255, B: 255},
	Placeholder: Color{R: 204, G: 204, B: 204},
	Option:      Color{R: 255, G: 255, B: 255},
	Hint:        Color{R: 204, G: 204, B: 204},
	Selected:    Color{R: 230, G: 159, B: 0, Bold: true},
	Error:       Color{R: 240, G: 228, B: 66, Bold: true},
	Success:     Color{R: 0, G: 158, B: 115},
	Cancel:      Color{R: 213, G: 94, B: 0},
}

// ThemeDracula is the Dracula color scheme
var ThemeDracula = &ColorScheme{
	Name:        "dracula",
	Bar:         Color{R: 98, G: 114, B: 164},
	Active:      Color{R: 255, G: 121, B: 198, Bold: true},
	Message:     Color{R: 248, G: 248, B: 242, Bold: true},
	Input:       Color{R: 248, G: 248, B: 242},
	Placeholder: Color{R: 98, G: 114, B: 164},
	Option:      Color{R: 139, G: 233, B: 253},
	Hint:        Color{R: 98, G: 114, B: 164},
	Selected:    Color{R: 80, G: 250, B: 123, Bold: true},
	Error:       Color{R: 241, G: 250, B: 140, Bold: true},
	Success:     Color{R: 80, G: 250, B: 123},
	Cancel:      Color{R: 255, G: 85, B: 85},
}

// ThemePlain writes no escape sequences for colors. Useful for logs and tests.
var ThemePlain = &ColorScheme{
	Name:  "plain",
	Plain: true,
}

var themes = []*ColorScheme{ThemeDefault, ThemeDark, ThemeLight, ThemeAccessible, ThemeDracula, ThemePlain}

// ThemeByName returns the built-in theme with the given name, case-insensitively.
func ThemeByName(name string) (*ColorScheme, bool) {
	for _, theme := range themes {
		if strings.EqualFold(theme.Name, name) {
			return theme, true
		}
	}
	return nil, false
}

// ThemeNames lists the built-in theme names.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, theme := range themes {
		names[i] = theme.Name
	}
	return names
}

// paint wraps s in the color's escape sequences unless the scheme is plain.
func (cs *ColorScheme) paint(c Color, s string) string {
	if cs == nil || cs.Plain || s == "" {
		return s
	}
	return c.ToANSI() + s + Reset()
}

// ToANSI converts a Color to an ANSI escape sequence.
func (c Color) ToANSI() string {
	var codes []string

	if c.Bold {
		codes = append(codes, "1")
	}

	// RGB color (true color support)
	codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B))

	return fmt.Sprintf("\x1b[%sm", strings.Join(codes, ";"))
}

// Reset returns the ANSI reset sequence.
func Reset() string {
	return "\x1b[0m"
}
