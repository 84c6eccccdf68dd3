package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tphakala/go-audio-filter/internal/cli"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1E88E5"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AA00"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#1E88E5")).
			Padding(0, 1).
			Width(64)
)

// renderHeader renders the application header
func renderHeader(subtitle string) string {
	return titleStyle.Render("Filterbox - Audio Filter Workbench") + "\n" +
		subtitleStyle.Render(subtitle)
}

// renderFooter renders the status or error line and key help
func renderFooter(m Model, keys string) string {
	var b strings.Builder
	switch {
	case m.Err != nil:
		b.WriteString(cli.ErrorStyle.Render("Error: "))
		b.WriteString(m.Err.Error())
	case m.Status != "":
		b.WriteString(subtitleStyle.Render(m.Status))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(keys))
	return b.String()
}

// renderList renders the audio file list with the preset keys
func renderList(m Model) string {
	var b strings.Builder

	selected := m.session.Selected()
	b.WriteString(renderHeader(fmt.Sprintf("%d file(s), %d selected", len(m.Files), len(selected))))
	b.WriteString("\n\n")

	var files strings.Builder
	if len(m.Files) == 0 {
		files.WriteString(helpStyle.Render("No audio files yet. Press a to add a WAV file."))
	}
	for i, name := range m.Files {
		pointer := "  "
		if i == m.Cursor {
			pointer = cursorStyle.Render("> ")
		}
		box := "[ ]"
		line := name
		if m.session.IsSelected(name) {
			box = selectedStyle.Render("[x]")
			line = selectedStyle.Render(name)
		}
		fmt.Fprintf(&files, "%s%s %s", pointer, box, line)
		if i < len(m.Files)-1 {
			files.WriteString("\n")
		}
	}
	b.WriteString(boxStyle.Render(files.String()))
	b.WriteString("\n\n")

	b.WriteString(cli.SectionStyle.Render("Fixed filters"))
	b.WriteString("\n")
	for i, p := range m.session.Presets() {
		fmt.Fprintf(&b, "  %s %s\n", cursorStyle.Render(fmt.Sprintf("%d", i+1)), p.Label)
	}
	fmt.Fprintf(&b, "  %s Configurable Butterworth\n", cursorStyle.Render("d"))

	if m.Mode == ModeAddFile {
		b.WriteString("\n")
		b.WriteString(cli.SectionStyle.Render("Add WAV file: "))
		b.WriteString(m.pathBuf)
		b.WriteString(cursorStyle.Render("█"))
		b.WriteString("\n")
		b.WriteString(renderFooter(m, "enter add • esc cancel"))
		return b.String()
	}

	if m.Mode == ModeBusy {
		b.WriteString("\n")
		b.WriteString(renderFooter(m, "working..."))
		return b.String()
	}

	b.WriteString("\n")
	keys := "↑/↓ move • space toggle • enter select only • 1-4 apply preset • d design • a add file • q quit"
	if m.Result != nil {
		keys += " • r last result"
	}
	b.WriteString(renderFooter(m, keys))
	return b.String()
}

// renderForm renders the configurable filter form
func renderForm(m Model) string {
	var b strings.Builder
	b.WriteString(renderHeader("Configurable Butterworth filter"))
	b.WriteString("\n\n")

	f := m.form
	var rows strings.Builder
	for field := fieldType; field < fieldCount; field++ {
		if !f.visible(field) {
			continue
		}
		label := fmt.Sprintf("%-10s", fieldLabel(field))
		value := f.values[field]
		if field == fieldType {
			value = "< " + f.filterType().String() + " >"
		}
		if field == f.focus {
			label = cursorStyle.Render("> " + label)
			value += cursorStyle.Render("█")
		} else {
			label = "  " + cli.KeyStyle.Render(label)
		}
		fmt.Fprintf(&rows, "%s %s\n", label, value)
	}
	b.WriteString(boxStyle.Render(strings.TrimRight(rows.String(), "\n")))
	b.WriteString("\n")

	if f.err != nil {
		b.WriteString(cli.ErrorStyle.Render("Error: "))
		b.WriteString(f.err.Error())
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab/↑/↓ field • ←/→ type • enter apply • esc back"))
	return b.String()
}

// renderResult renders band levels of the original and filtered spectra
func renderResult(m Model) string {
	var b strings.Builder
	r := m.Result

	b.WriteString(renderHeader(fmt.Sprintf("%s on %s", r.Filter.Name, strings.Join(r.Inputs, " + "))))
	b.WriteString("\n\n")

	var info strings.Builder
	fmt.Fprintf(&info, "%s %d Hz, %s\n", cli.KeyStyle.Render("Signal:"),
		r.Original.SampleRate, r.Original.Duration().Round(time.Millisecond))
	fmt.Fprintf(&info, "%s %d sections, order %d\n", cli.KeyStyle.Render("Filter:"),
		r.Filter.NumSections(), r.Filter.Order())
	fmt.Fprintf(&info, "%s %.0f Hz → %.0f Hz\n", cli.KeyStyle.Render("Peak:"),
		r.OriginalSpectrum.PeakFrequency(), r.FilteredSpectrum.PeakFrequency())
	fmt.Fprintf(&info, "%s %s", cli.KeyStyle.Render("-3 dB edges:"), cli.FormatHz(r.ResponseEdges()))
	b.WriteString(boxStyle.Render(info.String()))
	b.WriteString("\n\n")

	b.WriteString(cli.SectionStyle.Render("Octave band levels (dB)"))
	b.WriteString("\n")
	b.WriteString(renderBandTable(r.BandLevels()))

	keys := "p play/stop • e export WAV+CSV • esc back • q quit"
	b.WriteString("\n")
	b.WriteString(renderFooter(m, keys))
	return b.String()
}

func renderBandTable(edges, original, filtered []float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %-13s %8s %8s\n", "Band Hz", "orig", "filt")
	for i := range original {
		band := fmt.Sprintf("%.0f-%.0f", edges[i], edges[i+1])
		fmt.Fprintf(&b, "  %-13s %8.1f %8.1f %s\n", band, original[i], filtered[i],
			selectedStyle.Render(cli.LevelBar(filtered[i], cli.LevelFloor)))
	}
	return b.String()
}
