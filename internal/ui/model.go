// Package ui provides the Bubbletea terminal user interface for filterbox
package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-audio-filter/internal/app"
)

// Mode is the screen the UI is showing
type Mode int

const (
	ModeList Mode = iota
	ModeForm
	ModeAddFile
	ModeBusy
	ModeResult
)

// Model is the Bubbletea model for the filterbox UI. The session is only
// mutated from Update; long-running work runs in commands.
type Model struct {
	session *app.Session
	ctx     context.Context
	log     logrus.FieldLogger

	Mode   Mode
	Cursor int
	Files  []string

	form    designForm
	pathBuf string

	Result  *app.Result
	Playing bool
	Status  string
	Err     error

	cancelPlay context.CancelFunc

	// Terminal dimensions
	Width  int
	Height int
}

// NewModel creates the UI model for a session.
func NewModel(ctx context.Context, s *app.Session, logger logrus.FieldLogger) Model {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return Model{
		session: s,
		ctx:     ctx,
		log:     logger,
		Files:   s.Files(),
		form:    newDesignForm(s.Config().DefaultDesign),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.stopPlayback()
			return m, tea.Quit
		}
		switch m.Mode {
		case ModeForm:
			return m.updateForm(msg)
		case ModeAddFile:
			return m.updateAddFile(msg)
		case ModeBusy:
			return m, nil
		case ModeResult:
			return m.updateResult(msg)
		default:
			return m.updateList(msg)
		}

	case ResultMsg:
		if msg.Err != nil {
			m.log.WithError(msg.Err).Warn("Filtering failed")
			m.Err = msg.Err
			m.Mode = ModeList
			return m, nil
		}
		m.Result = msg.Result
		m.Err = nil
		m.Status = fmt.Sprintf("%s applied in %s", msg.Result.Filter.Name, msg.Result.Elapsed.Round(time.Millisecond))
		m.Mode = ModeResult
		return m, nil

	case PlayDoneMsg:
		m.Playing = false
		m.cancelPlay = nil
		switch {
		case errors.Is(msg.Err, context.Canceled):
			m.Status = "Playback stopped"
		case msg.Err != nil:
			m.Err = msg.Err
		default:
			m.Status = "Playback finished"
		}
		return m, nil

	case ExportDoneMsg:
		if msg.Err != nil {
			m.Err = msg.Err
			return m, nil
		}
		m.Err = nil
		m.Status = fmt.Sprintf("Exported %s, %s and %s", msg.Paths.WAV, msg.Paths.Spectra, msg.Paths.Response)
		return m, nil
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "esc":
		m.stopPlayback()
		return m, tea.Quit

	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}

	case "down", "j":
		if m.Cursor < len(m.Files)-1 {
			m.Cursor++
		}

	case " ", "x":
		if name, ok := m.current(); ok {
			if _, err := m.session.Toggle(name); err != nil {
				m.Err = err
			}
		}

	case "enter":
		if name, ok := m.current(); ok {
			if err := m.session.SelectOnly(name); err != nil {
				m.Err = err
			}
		}

	case "a":
		m.Mode = ModeAddFile
		m.pathBuf = ""
		m.Err = nil

	case "d":
		m.Mode = ModeForm
		m.form.err = nil

	case "r":
		if m.Result != nil {
			m.Mode = ModeResult
		}

	default:
		if n, err := strconv.Atoi(key); err == nil {
			presets := m.session.Presets()
			if n >= 1 && n <= len(presets) {
				return m.startPreset(presets[n-1].Name)
			}
		}
	}
	return m, nil
}

func (m Model) startPreset(name string) (tea.Model, tea.Cmd) {
	if len(m.session.Selected()) == 0 {
		m.Err = app.ErrNoSelection
		return m, nil
	}
	m.Err = nil
	m.Mode = ModeBusy
	m.Status = "Filtering with " + name + "..."
	m.log.WithField("preset", name).Debug("Applying preset")
	return m, applyPresetCmd(m.ctx, m.session, name)
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = ModeList
	case "tab", "down":
		m.form.next()
	case "shift+tab", "up":
		m.form.prev()
	case "enter":
		p, err := m.form.params()
		if err != nil {
			m.form.err = err
			return m, nil
		}
		if len(m.session.Selected()) == 0 {
			m.form.err = app.ErrNoSelection
			return m, nil
		}
		m.Mode = ModeBusy
		m.Status = "Designing " + p.String() + "..."
		return m, applyDesignCmd(m.ctx, m.session, p)
	default:
		m.form.input(msg.String())
	}
	return m, nil
}

func (m Model) updateAddFile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.Mode = ModeList
	case tea.KeyEnter:
		if m.pathBuf != "" {
			added := m.session.AddFiles(m.pathBuf)
			m.Files = m.session.Files()
			if len(added) == 0 {
				m.Status = "Already in the list"
			} else {
				m.Status = "Added " + added[0]
			}
		}
		m.Mode = ModeList
	case tea.KeyBackspace:
		if r := []rune(m.pathBuf); len(r) > 0 {
			m.pathBuf = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.pathBuf += " "
	case tea.KeyRunes:
		m.pathBuf += string(msg.Runes)
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.stopPlayback()
		return m, tea.Quit
	case "esc", "b":
		m.Mode = ModeList
	case "p":
		if m.Playing {
			m.stopPlayback()
			return m, nil
		}
		ctx, cancel := context.WithCancel(m.ctx)
		m.cancelPlay = cancel
		m.Playing = true
		m.Err = nil
		m.Status = "Playing original, then filtered..."
		return m, playCmd(ctx, m.session, m.Result)
	case "e":
		m.Status = "Exporting..."
		return m, exportCmd(m.session, m.Result)
	}
	return m, nil
}

func (m *Model) stopPlayback() {
	if m.cancelPlay != nil {
		m.cancelPlay()
	}
}

func (m Model) current() (string, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Files) {
		return "", false
	}
	return m.Files[m.Cursor], true
}

// View renders the UI
func (m Model) View() string {
	switch m.Mode {
	case ModeForm:
		return renderForm(m)
	case ModeResult:
		return renderResult(m)
	default:
		return renderList(m)
	}
}
