package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	audiofilter "github.com/tphakala/go-audio-filter"
	"github.com/tphakala/go-audio-filter/internal/playback"
)

// Result is the outcome of filtering the selected files.
type Result struct {
	// Filter is the cascade that was applied.
	Filter *audiofilter.Filter

	// Inputs are the catalog names that were combined.
	Inputs []string

	Original *audiofilter.Signal
	Filtered *audiofilter.Signal

	OriginalSpectrum *audiofilter.Spectrum
	FilteredSpectrum *audiofilter.Spectrum

	// Response is the filter's magnitude response at the signal's rate.
	Response *audiofilter.Spectrum

	Elapsed time.Duration
}

// BandLevels returns octave band edges and the original and filtered levels in dB.
func (r *Result) BandLevels() (edges, original, filtered []float64) {
	edges = audiofilter.OctaveBandEdges(r.Original.SampleRate)
	return edges, r.OriginalSpectrum.BandLevels(edges), r.FilteredSpectrum.BandLevels(edges)
}

// Session is the application state behind a front end. Its methods are safe to
// call from a UI goroutine and from background work at the same time.
type Session struct {
	cfg    Config
	player playback.Player
	log    logrus.FieldLogger

	mu       sync.Mutex
	names    []string
	paths    map[string]string
	selected map[string]bool
}

// NewSession creates a session. A nil player discards audio; a nil logger uses
// the logrus standard logger.
func NewSession(cfg Config, player playback.Player, logger logrus.FieldLogger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if player == nil {
		player = playback.Discard{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Session{
		cfg:      cfg,
		player:   player,
		log:      logger,
		paths:    make(map[string]string),
		selected: make(map[string]bool),
	}, nil
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// AddFiles adds audio files to the catalog under their base names. A name already
// in the catalog is kept with its original path. It returns the names added.
func (s *Session) AddFiles(paths ...string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var added []string
	for _, p := range paths {
		name := filepath.Base(p)
		if _, ok := s.paths[name]; ok {
			s.log.WithFields(logrus.Fields{"name": name, "path": p}).Debug("Audio file already in catalog")
			continue
		}
		s.paths[name] = p
		s.names = append(s.names, name)
		added = append(added, name)
	}

	if len(added) > 0 {
		s.log.WithFields(logrus.Fields{"added": len(added), "total": len(s.names)}).Info("Audio files added")
	}
	return added
}

// Files returns the catalog names in insertion order.
func (s *Session) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.names)
}

// Path returns the file path registered under name.
func (s *Session) Path(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.paths[name]
	return p, ok
}

// Toggle flips the selection of name and reports whether it is now selected.
func (s *Session) Toggle(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.paths[name]; !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownFile, name)
	}
	if s.selected[name] {
		delete(s.selected, name)
		return false, nil
	}
	s.selected[name] = true
	return true, nil
}

// SelectOnly replaces the selection with name.
func (s *Session) SelectOnly(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.paths[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFile, name)
	}
	clear(s.selected)
	s.selected[name] = true
	return nil
}

// ClearSelection deselects every file.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.selected)
}

// IsSelected reports whether name is selected.
func (s *Session) IsSelected(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected[name]
}

// Selected returns the selected names in catalog order.
func (s *Session) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	for _, n := range s.names {
		if s.selected[n] {
			out = append(out, n)
		}
	}
	return out
}

func (s *Session) selectedPaths() ([]string, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var names, paths []string
	for _, n := range s.names {
		if s.selected[n] {
			names = append(names, n)
			paths = append(paths, s.paths[n])
		}
	}
	if len(paths) == 0 {
		return nil, nil, ErrNoSelection
	}
	return names, paths, nil
}

// Presets returns the preset table.
func (s *Session) Presets() []Preset {
	return slices.Clone(s.cfg.Presets)
}

// Preset looks up a preset by name, ignoring case.
func (s *Session) Preset(name string) (Preset, error) {
	for _, p := range s.cfg.Presets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
}

// LoadPreset reads and reconstructs a preset filter. Lines the parser skipped are
// logged as warnings.
func (s *Session) LoadPreset(name string) (*audiofilter.Filter, error) {
	p, err := s.Preset(name)
	if err != nil {
		return nil, err
	}
	return s.LoadFilterFile(s.cfg.PresetPath(p), p.Label)
}

// LoadFilterFile reads and reconstructs the .fcf file at path.
func (s *Session) LoadFilterFile(path, label string) (*audiofilter.Filter, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", audiofilter.ErrFileNotFound, path)
	}

	ff, err := audiofilter.ReadFCF(path)
	if err != nil {
		return nil, err
	}
	for _, sk := range ff.Skipped {
		s.log.WithFields(logrus.Fields{
			"file":   path,
			"line":   sk.Line,
			"text":   sk.Text,
			"reason": sk.Reason.String(),
		}).Warn("Skipped filter file line")
	}

	f, err := audiofilter.NewFilter(ff.Sections, ff.Scales)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if label == "" {
		label = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	f.Name = label
	return f, nil
}

// ApplyPreset filters the selected files with a preset.
func (s *Session) ApplyPreset(ctx context.Context, name string) (*Result, error) {
	if _, _, err := s.selectedPaths(); err != nil {
		return nil, err
	}
	f, err := s.LoadPreset(name)
	if err != nil {
		return nil, err
	}
	return s.ApplyFilter(ctx, f)
}

// ApplyDesign filters the selected files with a Butterworth filter designed for
// their sample rate.
func (s *Session) ApplyDesign(ctx context.Context, params audiofilter.DesignParams) (*Result, error) {
	names, paths, err := s.selectedPaths()
	if err != nil {
		return nil, err
	}

	original, err := audiofilter.CombineFiles(paths...)
	if err != nil {
		return nil, err
	}
	f, err := audiofilter.Design(params, original.SampleRate)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, f, names, original)
}

// ApplyFilter combines the selected files and filters them with f.
func (s *Session) ApplyFilter(ctx context.Context, f *audiofilter.Filter) (*Result, error) {
	names, paths, err := s.selectedPaths()
	if err != nil {
		return nil, err
	}

	original, err := audiofilter.CombineFiles(paths...)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, f, names, original)
}

func (s *Session) run(ctx context.Context, f *audiofilter.Filter, names []string, original *audiofilter.Signal) (*Result, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filtered := &audiofilter.Signal{
		Samples:    f.Apply(original.Samples),
		SampleRate: original.SampleRate,
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := &Result{
		Filter:   f,
		Inputs:   names,
		Original: original,
		Filtered: filtered,
	}

	var err error
	if r.OriginalSpectrum, err = audiofilter.AnalyzeSpectrum(original.Samples, original.SampleRate); err != nil {
		return nil, fmt.Errorf("original spectrum: %w", err)
	}
	if r.FilteredSpectrum, err = audiofilter.AnalyzeSpectrum(filtered.Samples, filtered.SampleRate); err != nil {
		return nil, fmt.Errorf("filtered spectrum: %w", err)
	}
	if r.Response, err = f.Response(s.cfg.ResponsePoints, original.SampleRate); err != nil {
		return nil, fmt.Errorf("filter response: %w", err)
	}
	r.Elapsed = time.Since(start)

	s.log.WithFields(logrus.Fields{
		"filter":      f.Name,
		"sections":    f.NumSections(),
		"inputs":      len(names),
		"samples":     original.Len(),
		"sample_rate": original.SampleRate,
		"elapsed":     r.Elapsed,
	}).Info("Filter applied")

	return r, nil
}

// Play normalises and plays the original signal, then the filtered one. Each is
// normalised by its own peak.
func (s *Session) Play(ctx context.Context, r *Result) error {
	for _, step := range []struct {
		label string
		sig   *audiofilter.Signal
	}{
		{"original", r.Original},
		{"filtered", r.Filtered},
	} {
		buf, err := audiofilter.NormalizeFloat32(step.sig.Samples)
		if err != nil {
			return fmt.Errorf("%s audio: %w", step.label, err)
		}

		s.log.WithFields(logrus.Fields{
			"signal":   step.label,
			"duration": step.sig.Duration(),
		}).Debug("Playing")

		if err := s.player.Play(ctx, buf, step.sig.SampleRate); err != nil {
			return fmt.Errorf("%s audio: %w", step.label, err)
		}
	}
	return nil
}

// ExportPaths are the files written by Export.
type ExportPaths struct {
	WAV      string
	Spectra  string
	Response string
}

// Export writes the filtered signal as WAV, both spectra as CSV and the filter
// response as CSV into dir (the configured export directory when empty).
func (s *Session) Export(r *Result, dir string) (ExportPaths, error) {
	if dir == "" {
		dir = s.cfg.ExportDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ExportPaths{}, fmt.Errorf("failed to create export directory: %w", err)
	}

	base := exportBase(r)
	paths := ExportPaths{
		WAV:     filepath.Join(dir, base+".wav"),
		Spectra: filepath.Join(dir, base+".csv"),
	}

	if err := audiofilter.WriteWAV(paths.WAV, r.Filtered.Samples, r.Filtered.SampleRate, s.cfg.BitDepth); err != nil {
		return ExportPaths{}, err
	}
	err := writeCSV(paths.Spectra, func(w io.Writer) error {
		return audiofilter.WriteSpectraCSV(w, r.OriginalSpectrum, r.FilteredSpectrum)
	})
	if err != nil {
		return ExportPaths{}, fmt.Errorf("failed to write spectra: %w", err)
	}
	if r.Response != nil {
		paths.Response = filepath.Join(dir, base+"_response.csv")
		err = writeCSV(paths.Response, func(w io.Writer) error {
			return audiofilter.WriteSpectrumCSV(w, r.Response)
		})
		if err != nil {
			return ExportPaths{}, fmt.Errorf("failed to write response: %w", err)
		}
	}

	s.log.WithFields(logrus.Fields{
		"wav":      paths.WAV,
		"csv":      paths.Spectra,
		"response": paths.Response,
	}).Info("Exported result")
	return paths, nil
}

func writeCSV(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()
	return write(f)
}

// ResponseEdges returns the frequencies where the filter response sits 3 dB
// under its peak.
func (r *Result) ResponseEdges() []float64 {
	if r.Response == nil {
		return nil
	}
	return r.Response.EdgesBelowPeak(cutoffDrop)
}

// cutoffDrop is the level under the response peak reported as a band edge.
const cutoffDrop = 3.0

// exportBase builds "<first input>_<filter>" with unsafe characters replaced.
func exportBase(r *Result) string {
	input := "mix"
	if len(r.Inputs) == 1 {
		input = strings.TrimSuffix(r.Inputs[0], filepath.Ext(r.Inputs[0]))
	}
	name := "filtered"
	if r.Filter != nil && r.Filter.Name != "" {
		name = r.Filter.Name
	}
	return slug(input + "_" + name)
}

func slug(s string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
