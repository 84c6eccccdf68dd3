package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	audiofilter "github.com/tphakala/go-audio-filter"
	"github.com/tphakala/go-audio-filter/internal/app"
	"github.com/tphakala/go-audio-filter/internal/cli"
)

// errAborted ends a single menu operation without leaving the menu.
var errAborted = errors.New("operation cancelled")

// Menu choices
const (
	choiceQuit = iota
	choiceToggle
	choiceAdd
	choicePreset
	choiceDesign
	choicePlay
	choiceExport
)

// menu is the numbered console front end. Every operation reads its own
// answers; a bad answer aborts that operation and returns to the main menu.
type menu struct {
	ctx  context.Context
	s    *app.Session
	in   *bufio.Scanner
	out  io.Writer
	last *app.Result
}

func newMenu(ctx context.Context, s *app.Session, in io.Reader, out io.Writer) *menu {
	return &menu{ctx: ctx, s: s, in: bufio.NewScanner(in), out: out}
}

// run loops until quit, end of input or context cancellation.
func (m *menu) run() error {
	for {
		if err := m.ctx.Err(); err != nil {
			return nil
		}
		m.printMenu()

		choice, err := m.readInt("Choice")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			cli.FprintError(m.out, err.Error())
			continue
		}
		if choice == choiceQuit {
			return nil
		}

		if err := m.dispatch(choice); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			cli.FprintError(m.out, err.Error())
		}
	}
}

func (m *menu) dispatch(choice int) error {
	switch choice {
	case choiceToggle:
		return m.toggle()
	case choiceAdd:
		return m.addFile()
	case choicePreset:
		return m.applyPreset()
	case choiceDesign:
		return m.design()
	case choicePlay:
		return m.play()
	case choiceExport:
		return m.export()
	default:
		return fmt.Errorf("%w: no menu entry %d", errAborted, choice)
	}
}

func (m *menu) printMenu() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, cli.TitleStyle.Render("Filterbox"))
	fmt.Fprintln(m.out, cli.SectionStyle.Render("Audio files"))
	files := m.s.Files()
	if len(files) == 0 {
		fmt.Fprintln(m.out, "  (none)")
	}
	for i, name := range files {
		box := "[ ]"
		if m.s.IsSelected(name) {
			box = "[x]"
		}
		fmt.Fprintf(m.out, "  %d) %s %s\n", i+1, box, name)
	}
	fmt.Fprintln(m.out, cli.SectionStyle.Render("Actions"))
	fmt.Fprintf(m.out, "  %d) Toggle file selection\n", choiceToggle)
	fmt.Fprintf(m.out, "  %d) Add WAV file\n", choiceAdd)
	fmt.Fprintf(m.out, "  %d) Apply fixed filter\n", choicePreset)
	fmt.Fprintf(m.out, "  %d) Configurable Butterworth filter\n", choiceDesign)
	fmt.Fprintf(m.out, "  %d) Play last result\n", choicePlay)
	fmt.Fprintf(m.out, "  %d) Export last result\n", choiceExport)
	fmt.Fprintf(m.out, "  %d) Quit\n", choiceQuit)
}

func (m *menu) toggle() error {
	files := m.s.Files()
	if len(files) == 0 {
		return fmt.Errorf("%w: no audio files loaded", errAborted)
	}
	n, err := m.readChoice("File number", len(files))
	if err != nil {
		return err
	}
	on, err := m.s.Toggle(files[n-1])
	if err != nil {
		return err
	}
	state := "deselected"
	if on {
		state = "selected"
	}
	fmt.Fprintf(m.out, "%s %s\n", files[n-1], state)
	return nil
}

func (m *menu) addFile() error {
	path, err := m.readLine("WAV path")
	if err != nil {
		return err
	}
	if path == "" {
		return errAborted
	}
	if added := m.s.AddFiles(path); len(added) == 0 {
		fmt.Fprintln(m.out, "Already in the list")
	}
	return nil
}

func (m *menu) applyPreset() error {
	if len(m.s.Selected()) == 0 {
		return app.ErrNoSelection
	}
	presets := m.s.Presets()
	for i, p := range presets {
		fmt.Fprintf(m.out, "  %d) %s\n", i+1, p.Label)
	}
	n, err := m.readChoice("Filter", len(presets))
	if err != nil {
		return err
	}
	r, err := m.s.ApplyPreset(m.ctx, presets[n-1].Name)
	if err != nil {
		return err
	}
	return m.show(r)
}

func (m *menu) design() error {
	if len(m.s.Selected()) == 0 {
		return app.ErrNoSelection
	}
	p, err := m.readDesign()
	if err != nil {
		return err
	}
	r, err := m.s.ApplyDesign(m.ctx, p)
	if err != nil {
		return err
	}
	return m.show(r)
}

// readDesign prompts for the Butterworth parameters.
func (m *menu) readDesign() (audiofilter.DesignParams, error) {
	var p audiofilter.DesignParams
	for i, t := range filterTypes {
		fmt.Fprintf(m.out, "  %d) %s\n", i+1, t)
	}
	n, err := m.readChoice("Type", len(filterTypes))
	if err != nil {
		return p, err
	}
	p.Type = filterTypes[n-1]

	if p.Order, err = m.readInt("Order"); err != nil {
		return p, err
	}
	if p.Type.IsBand() {
		if p.Low, err = m.readFloat("Low frequency (Hz)"); err != nil {
			return p, err
		}
		if p.High, err = m.readFloat("High frequency (Hz)"); err != nil {
			return p, err
		}
		return p, nil
	}
	p.Cutoff, err = m.readFloat("Cutoff frequency (Hz)")
	return p, err
}

var filterTypes = []audiofilter.FilterType{
	audiofilter.Lowpass,
	audiofilter.Highpass,
	audiofilter.Bandpass,
	audiofilter.Bandstop,
}

// show prints a result and plays it.
func (m *menu) show(r *app.Result) error {
	m.last = r
	printResult(m.out, r)
	return m.play()
}

func (m *menu) play() error {
	if m.last == nil {
		return fmt.Errorf("%w: nothing filtered yet", errAborted)
	}
	fmt.Fprintln(m.out, "Playing original, then filtered...")
	return playResult(m.ctx, m.s, m.last, m.out)
}

func (m *menu) export() error {
	if m.last == nil {
		return fmt.Errorf("%w: nothing filtered yet", errAborted)
	}
	paths, err := m.s.Export(m.last, "")
	if err != nil {
		return err
	}
	printExport(m.out, paths)
	return nil
}

// readLine prompts and returns the trimmed answer, or io.EOF at end of input.
func (m *menu) readLine(prompt string) (string, error) {
	fmt.Fprintf(m.out, "%s: ", prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *menu) readInt(prompt string) (int, error) {
	s, err := m.readLine(prompt)
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 0, errAborted
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", errAborted, s)
	}
	return n, nil
}

func (m *menu) readFloat(prompt string) (float64, error) {
	s, err := m.readLine(prompt)
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 0, errAborted
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errAborted, s)
	}
	return v, nil
}

// readChoice reads a number in 1..n.
func (m *menu) readChoice(prompt string, n int) (int, error) {
	v, err := m.readInt(prompt)
	if err != nil {
		return 0, err
	}
	if v < 1 || v > n {
		return 0, fmt.Errorf("%w: choose 1-%d", errAborted, n)
	}
	return v, nil
}
