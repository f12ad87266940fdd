package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/agrismart/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Field-and-harvest palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#b8bb26")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PersonaStyle returns the accent used for an assistant's name and replies.
func PersonaStyle(p domain.Persona) lipgloss.Style {
	switch p {
	case domain.PersonaAgriculture:
		return StyleGreen
	case domain.PersonaPest:
		return StyleRed
	case domain.PersonaBuyer:
		return StyleYellow
	case domain.PersonaWeather:
		return StyleBlue
	default:
		return StyleDim
	}
}

// PersonaIcon returns the dashboard glyph of an assistant.
func PersonaIcon(p domain.Persona) string {
	switch p {
	case domain.PersonaAgriculture:
		return "🌱"
	case domain.PersonaPest:
		return "🐛"
	case domain.PersonaBuyer:
		return "🛒"
	case domain.PersonaWeather:
		return "☁"
	default:
		return "•"
	}
}

// Header renders a section header with an underline sized to the text.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
