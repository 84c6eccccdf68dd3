package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	audiofilter "github.com/tphakala/go-audio-filter"
	"github.com/tphakala/go-audio-filter/internal/app"
	"github.com/tphakala/go-audio-filter/internal/cli"
	"github.com/tphakala/go-audio-filter/internal/ui"
)

// TUICmd starts the terminal interface
type TUICmd struct {
	Files   []string `arg:"" name:"files" help:"WAV files to load" type:"existingfile" optional:""`
	Output  string   `short:"o" default:"." type:"path" help:"Export directory"`
	LogFile string   `name:"log-file" default:"filterbox.log" type:"path" help:"Log file (the screen is owned by the UI)"`
}

// Run implements the tui command.
func (c *TUICmd) Run(g *Globals) error {
	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	logger := g.newLogger(logFile)

	s, release, err := g.newSession(logger, c.Output)
	if err != nil {
		return err
	}
	defer release()
	s.AddFiles(c.Files...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(ui.NewModel(ctx, s, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("UI error: %w", err)
	}
	return nil
}

// MenuCmd runs the numbered console menu
type MenuCmd struct {
	Files  []string `arg:"" name:"files" help:"WAV files to load" type:"existingfile" optional:""`
	Output string   `short:"o" default:"." type:"path" help:"Export directory"`
}

// Run implements the menu command.
func (c *MenuCmd) Run(g *Globals) error {
	logger := g.newLogger(os.Stderr)
	s, release, err := g.newSession(logger, c.Output)
	if err != nil {
		return err
	}
	defer release()
	s.AddFiles(c.Files...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return newMenu(ctx, s, os.Stdin, os.Stdout).run()
}

// ApplyCmd filters files with a preset or an .fcf file
type ApplyCmd struct {
	Preset string   `short:"p" xor:"source" required:"" help:"Preset name (lowpass, highpass, bandpass, bandstop)"`
	Filter string   `short:"f" xor:"source" required:"" type:"existingfile" help:"Path to an .fcf filter file"`
	Files  []string `arg:"" name:"files" help:"WAV files to combine and filter" type:"existingfile"`
	Output string   `short:"o" default:"." type:"path" help:"Export directory"`
	Play   bool     `help:"Play the original then the filtered audio"`
}

// Run implements the apply command.
func (c *ApplyCmd) Run(g *Globals) error {
	logger := g.newLogger(os.Stderr)
	s, release, err := g.newSession(logger, c.Output)
	if err != nil {
		return err
	}
	defer release()
	if err := selectAll(s, c.Files); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var r *app.Result
	if c.Preset != "" {
		r, err = s.ApplyPreset(ctx, c.Preset)
	} else {
		var f *audiofilter.Filter
		if f, err = s.LoadFilterFile(c.Filter, ""); err != nil {
			return err
		}
		r, err = s.ApplyFilter(ctx, f)
	}
	if err != nil {
		return err
	}

	return finish(ctx, s, r, c.Play)
}

// DesignCmd filters files with a Butterworth design
type DesignCmd struct {
	Type   string   `short:"t" default:"lowpass" enum:"lowpass,highpass,bandpass,bandstop" help:"Filter type"`
	Order  int      `short:"n" default:"4" help:"Filter order"`
	Cutoff float64  `short:"c" default:"1000" help:"Cutoff in Hz (lowpass, highpass)"`
	Low    float64  `default:"300" help:"Lower band edge in Hz (bandpass, bandstop)"`
	High   float64  `default:"3400" help:"Upper band edge in Hz (bandpass, bandstop)"`
	Save   string   `type:"path" placeholder:"FILE" help:"Also write the designed filter as .fcf"`
	Files  []string `arg:"" name:"files" help:"WAV files to combine and filter" type:"existingfile"`
	Output string   `short:"o" default:"." type:"path" help:"Export directory"`
	Play   bool     `help:"Play the original then the filtered audio"`
}

// params converts the flags to design parameters.
func (c *DesignCmd) params() (audiofilter.DesignParams, error) {
	t, err := audiofilter.ParseFilterType(c.Type)
	if err != nil {
		return audiofilter.DesignParams{}, err
	}
	return audiofilter.DesignParams{
		Type:   t,
		Order:  c.Order,
		Cutoff: c.Cutoff,
		Low:    c.Low,
		High:   c.High,
	}, nil
}

// Run implements the design command.
func (c *DesignCmd) Run(g *Globals) error {
	p, err := c.params()
	if err != nil {
		return err
	}

	logger := g.newLogger(os.Stderr)
	s, release, err := g.newSession(logger, c.Output)
	if err != nil {
		return err
	}
	defer release()
	if err := selectAll(s, c.Files); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r, err := s.ApplyDesign(ctx, p)
	if err != nil {
		return err
	}

	if c.Save != "" {
		if err := saveFCF(c.Save, r.Filter); err != nil {
			return err
		}
		logger.WithField("file", c.Save).Info("Saved filter")
	}

	return finish(ctx, s, r, c.Play)
}

// finish prints, exports and optionally plays a result.
func finish(ctx context.Context, s *app.Session, r *app.Result, play bool) error {
	printResult(os.Stdout, r)

	paths, err := s.Export(r, "")
	if err != nil {
		return err
	}
	fmt.Println()
	printExport(os.Stdout, paths)

	if !play {
		return nil
	}
	return playResult(ctx, s, r, os.Stderr)
}

// playResult plays a result. Cancellation ends playback quietly and a silent
// signal is reported as a warning on w.
func playResult(ctx context.Context, s *app.Session, r *app.Result, w io.Writer) error {
	err := s.Play(ctx, r)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return nil
	case errors.Is(err, audiofilter.ErrSilentSignal):
		cli.FprintWarning(w, fmt.Sprintf("skipped playback: %v", err))
		return nil
	default:
		return err
	}
}

func saveFCF(path string, f *audiofilter.Filter) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create filter file: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()
	return audiofilter.WriteFCF(out, f)
}

// SpectrumCmd writes the spectrum of the combined input
type SpectrumCmd struct {
	Files  []string `arg:"" name:"files" help:"WAV files to combine" type:"existingfile"`
	Output string   `short:"o" default:"-" help:"CSV output file, - for stdout"`
}

// Run implements the spectrum command.
func (c *SpectrumCmd) Run(g *Globals) error {
	logger := g.newLogger(os.Stderr)

	sig, err := audiofilter.CombineFiles(c.Files...)
	if err != nil {
		return err
	}
	spec, err := audiofilter.AnalyzeSpectrum(sig.Samples, sig.SampleRate)
	if err != nil {
		return err
	}

	out, err := createOutput(c.Output)
	if err != nil {
		return err
	}
	if err := audiofilter.WriteSpectrumCSV(out, spec); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write spectrum: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"files":   len(c.Files),
		"rate":    sig.SampleRate,
		"samples": sig.Len(),
		"peak_hz": spec.PeakFrequency(),
	}).Info("Spectrum written")
	return nil
}

// ResponseCmd writes the frequency response of a filter file
type ResponseCmd struct {
	Filter string `arg:"" name:"filter" help:"Path to an .fcf filter file" type:"existingfile"`
	Rate   int    `short:"r" default:"44100" help:"Sample rate in Hz"`
	Points int    `default:"2000" help:"Number of frequency points"`
	Output string `short:"o" default:"-" help:"CSV output file, - for stdout"`
}

// Run implements the response command.
func (c *ResponseCmd) Run(g *Globals) error {
	logger := g.newLogger(os.Stderr)
	silent := *g
	silent.NoAudio = true
	s, release, err := silent.newSession(logger, "")
	if err != nil {
		return err
	}
	defer release()

	f, err := s.LoadFilterFile(c.Filter, "")
	if err != nil {
		return err
	}
	resp, err := f.Response(c.Points, c.Rate)
	if err != nil {
		return err
	}

	out, err := createOutput(c.Output)
	if err != nil {
		return err
	}
	if err := audiofilter.WriteSpectrumCSV(out, resp); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write response: %w", err)
	}
	return out.Close()
}
