// Command filterbox filters WAV audio with second-order-section cascades read
// from .fcf files or designed on the fly, and compares the spectra before and
// after filtering.
//
// Usage:
//
//	filterbox [files...]                          # terminal UI
//	filterbox menu [files...]                     # numbered console menu
//	filterbox apply -p lowpass a.wav b.wav        # preset on the combined files
//	filterbox apply -f custom.fcf a.wav
//	filterbox design -t bandpass --low 300 --high 3400 a.wav
//	filterbox spectrum a.wav -o spectrum.csv
//	filterbox response presets/lowpass.fcf --rate 44100
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-audio-filter/internal/app"
	"github.com/tphakala/go-audio-filter/internal/cli"
	"github.com/tphakala/go-audio-filter/internal/playback"
)

var (
	version = "0.1.0"
)

// Globals are the flags shared by every command
type Globals struct {
	Version   bool   `short:"v" help:"Show version information"`
	PresetDir string `name:"preset-dir" env:"FILTERBOX_PRESET_DIR" default:"presets" type:"path" help:"Directory holding the preset .fcf files"`
	NoAudio   bool   `name:"no-audio" env:"FILTERBOX_NO_AUDIO" help:"Disable audio playback"`
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
}

// CLI defines the command-line interface
type CLI struct {
	Globals

	TUI      TUICmd      `cmd:"" name:"tui" default:"withargs" help:"Interactive terminal interface (default)"`
	Menu     MenuCmd     `cmd:"" help:"Numbered console menu"`
	Apply    ApplyCmd    `cmd:"" help:"Filter WAV files with a preset or an .fcf file"`
	Design   DesignCmd   `cmd:"" help:"Filter WAV files with a Butterworth design"`
	Spectrum SpectrumCmd `cmd:"" help:"Write the magnitude spectrum of WAV files as CSV"`
	Response ResponseCmd `cmd:"" help:"Write the frequency response of an .fcf file as CSV"`
}

func main() {
	if err := run(); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("filterbox"),
		kong.Description("SOS audio filter workbench"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if cliArgs.Version {
		cli.PrintVersion(version)
		return nil
	}

	return ctx.Run(&cliArgs.Globals)
}

// newLogger builds the command logger writing to out.
func (g *Globals) newLogger(out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	level, err := logrus.ParseLevel(g.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// newSession creates a session exporting into exportDir. The returned func
// releases the audio device.
func (g *Globals) newSession(logger logrus.FieldLogger, exportDir string) (*app.Session, func(), error) {
	cfg := app.DefaultConfig()
	cfg.PresetDir = g.PresetDir
	if exportDir != "" {
		cfg.ExportDir = exportDir
	}

	player, release := g.newPlayer(logger)
	s, err := app.NewSession(cfg, player, logger)
	if err != nil {
		release()
		return nil, nil, err
	}
	return s, release, nil
}

// newPlayer opens PortAudio unless audio is disabled. A missing audio device
// falls back to discarding playback.
func (g *Globals) newPlayer(logger logrus.FieldLogger) (playback.Player, func()) {
	if g.NoAudio {
		return playback.Discard{}, func() {}
	}
	pa, err := playback.NewPortAudio()
	if err != nil {
		logger.WithError(err).Warn("Audio output unavailable, playback disabled")
		return playback.Discard{}, func() {}
	}
	return pa, func() {
		if err := pa.Close(); err != nil {
			logger.WithError(err).Debug("Failed to release audio device")
		}
	}
}

// selectAll adds paths to the catalog and selects every catalog entry.
func selectAll(s *app.Session, paths []string) error {
	s.AddFiles(paths...)
	s.ClearSelection()
	for _, name := range s.Files() {
		if _, err := s.Toggle(name); err != nil {
			return err
		}
	}
	if len(s.Selected()) == 0 {
		return fmt.Errorf("%w: no input files", app.ErrNoSelection)
	}
	return nil
}
