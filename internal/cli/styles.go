// Package cli holds the styled console output shared by the filterbox commands.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#1E88E5") // Filterbox blue
	accentColor  = lipgloss.Color("#FFA500") // Orange
	errorColor   = lipgloss.Color("#A40000") // Red
	mutedColor   = lipgloss.Color("#888888") // Gray
	textColor    = lipgloss.Color("#FFFFFF") // White
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	WarnStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

// PrintVersion prints version information
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render("Filterbox"))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Println()
}

// PrintError prints an error message
func PrintError(message string) {
	FprintError(os.Stderr, message)
}

// FprintError prints an error message to w
func FprintError(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// FprintWarning prints a warning to w
func FprintWarning(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", WarnStyle.Render("Warning:"), message)
}

// PrintKV prints an aligned key/value line
func PrintKV(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "  %s %s\n", KeyStyle.Render(fmt.Sprintf("%-12s", key+":")), ValueStyle.Render(fmt.Sprint(value)))
}

const (
	// levelBarWidth is the number of cells for a 0 dB level.
	levelBarWidth = 30

	// LevelFloor is the bottom of the band level bars.
	LevelFloor = -90.0
)

// LevelBar draws a horizontal bar for a dB level over a floor (e.g. -90 dB).
func LevelBar(db, floor float64) string {
	if db <= floor {
		return ""
	}
	frac := (db - floor) / -floor
	frac = min(frac, 1)
	return strings.Repeat("█", int(frac*levelBarWidth+0.5))
}

// FormatHz joins frequencies as "700.0 Hz, 1400.0 Hz", or "none".
func FormatHz(freqs []float64) string {
	if len(freqs) == 0 {
		return "none"
	}
	parts := make([]string, len(freqs))
	for i, f := range freqs {
		parts[i] = fmt.Sprintf("%.1f Hz", f)
	}
	return strings.Join(parts, ", ")
}
