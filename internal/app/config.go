// Package app holds the interactive session shared by the filterbox front ends:
// the catalog of known audio files, the current selection, the preset table and
// the load, filter, analyse and play workflow.
package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	audiofilter "github.com/tphakala/go-audio-filter"
)

// Errors returned by the session.
var (
	// ErrInvalidConfig indicates invalid session configuration.
	ErrInvalidConfig = errors.New("invalid filterbox configuration")

	// ErrNoSelection indicates that an action needs at least one selected file.
	ErrNoSelection = errors.New("select at least one audio file")

	// ErrUnknownPreset indicates a preset name that isn't in the table.
	ErrUnknownPreset = errors.New("unknown preset")

	// ErrUnknownFile indicates a file name that isn't in the catalog.
	ErrUnknownFile = errors.New("unknown audio file")
)

// Preset is a named filter stored as an .fcf file.
type Preset struct {
	// Name is the short key, e.g. "lowpass".
	Name string

	// Label is the display name.
	Label string

	// File is the .fcf path, relative to Config.PresetDir unless absolute.
	File string
}

// Config configures a Session.
type Config struct {
	// PresetDir is where relative preset files are looked up.
	PresetDir string

	// Presets is the fixed filter table, in display order.
	Presets []Preset

	// ExportDir receives exported WAV and CSV files.
	ExportDir string

	// BitDepth of exported WAV files.
	BitDepth int

	// ResponsePoints is the frequency response grid size.
	ResponsePoints int

	// DefaultDesign seeds the configurable filter prompts.
	DefaultDesign audiofilter.DesignParams
}

// DefaultPresets returns the four fixed filters shipped in presets/.
func DefaultPresets() []Preset {
	return []Preset{
		{Name: "lowpass", Label: "Lowpass", File: "lowpass.fcf"},
		{Name: "highpass", Label: "Highpass", File: "highpass.fcf"},
		{Name: "bandpass", Label: "Bandpass", File: "bandpass.fcf"},
		{Name: "bandstop", Label: "Bandstop", File: "bandstop.fcf"},
	}
}

// DefaultConfig returns a Config using ./presets and the current directory.
func DefaultConfig() Config {
	return Config{
		PresetDir:      "presets",
		Presets:        DefaultPresets(),
		ExportDir:      ".",
		BitDepth:       audiofilter.DefaultBitDepth,
		ResponsePoints: audiofilter.DefaultResponsePoints,
		DefaultDesign: audiofilter.DesignParams{
			Type:   audiofilter.Lowpass,
			Order:  4,
			Cutoff: 1000,
			Low:    300,
			High:   3400,
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Presets))
	for i, p := range c.Presets {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: preset %d has no name", ErrInvalidConfig, i+1)
		}
		if p.File == "" {
			return fmt.Errorf("%w: preset %q has no file", ErrInvalidConfig, p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate preset %q", ErrInvalidConfig, p.Name)
		}
		seen[p.Name] = true
	}

	switch c.BitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: bit depth must be 16, 24 or 32", ErrInvalidConfig)
	}

	if c.ResponsePoints < 1 {
		return fmt.Errorf("%w: response points must be positive", ErrInvalidConfig)
	}

	if c.DefaultDesign.Order < 1 || c.DefaultDesign.Order > audiofilter.MaxOrder {
		return fmt.Errorf("%w: default order must be 1-%d", ErrInvalidConfig, audiofilter.MaxOrder)
	}

	return nil
}

// PresetPath resolves the preset's file against PresetDir.
func (c *Config) PresetPath(p Preset) string {
	if filepath.IsAbs(p.File) || c.PresetDir == "" {
		return p.File
	}
	return filepath.Join(c.PresetDir, p.File)
}
