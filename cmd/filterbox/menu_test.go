package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-filter/internal/app"
	"github.com/tphakala/go-audio-filter/internal/playback"
	"github.com/tphakala/go-audio-filter/internal/testutil"
)

func newTestSession(t *testing.T) (*app.Session, string) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := app.DefaultConfig()
	cfg.PresetDir = filepath.Join("..", "..", "presets")
	cfg.ExportDir = t.TempDir()
	s, err := app.NewSession(cfg, playback.Discard{}, logger)
	require.NoError(t, err)

	dir := t.TempDir()
	s.AddFiles(
		testutil.WriteWAV16(t, dir, "tone.wav", testutil.Sine(440, 8000, 1600), 8000, 1),
		testutil.WriteWAV16(t, dir, "hum.wav", testutil.Sine(60, 8000, 1600), 8000, 1),
	)
	return s, cfg.ExportDir
}

func runMenu(t *testing.T, s *app.Session, input string) string {
	t.Helper()
	var out bytes.Buffer
	err := newMenu(context.Background(), s, strings.NewReader(input), &out).run()
	require.NoError(t, err)
	return out.String()
}

func TestMenu_QuitAndEndOfInput(t *testing.T) {
	s, _ := newTestSession(t)

	out := runMenu(t, s, "0\n")
	assert.Contains(t, out, "Filterbox")
	assert.Contains(t, out, "1) [ ] tone.wav")
	assert.Contains(t, out, "2) [ ] hum.wav")

	out = runMenu(t, s, "")
	assert.Contains(t, out, "Choice:")
}

func TestMenu_ApplyPresetAndExport(t *testing.T) {
	s, exportDir := newTestSession(t)

	// toggle tone.wav, apply the first preset, export, quit
	out := runMenu(t, s, "1\n1\n3\n1\n6\n0\n")

	assert.Equal(t, []string{"tone.wav"}, s.Selected())
	assert.Contains(t, out, "tone.wav selected")
	assert.Contains(t, out, "Lowpass")
	assert.Contains(t, out, "Octave band levels")
	assert.Contains(t, out, "Playing original, then filtered")
	assert.FileExists(t, filepath.Join(exportDir, "tone_lowpass.wav"))
	assert.FileExists(t, filepath.Join(exportDir, "tone_lowpass.csv"))
	assert.FileExists(t, filepath.Join(exportDir, "tone_lowpass_response.csv"))
	assert.Contains(t, out, "-3 dB edges:")
	assert.Contains(t, out, "Response:")
}

func TestMenu_SilentResultWarnsInsteadOfFailing(t *testing.T) {
	s, _ := newTestSession(t)
	s.AddFiles(testutil.WriteWAV16(t, t.TempDir(), "silence.wav", make([]float64, 800), 8000, 1))

	// select silence.wav, apply the first preset, quit
	out := runMenu(t, s, "1\n3\n3\n1\n0\n")
	assert.Equal(t, []string{"silence.wav"}, s.Selected())
	assert.Contains(t, out, "Warning:")
	assert.Contains(t, out, "skipped playback")
	assert.NotContains(t, out, "Error:")
}

func TestMenu_InvalidInputAbortsOnlyThatOperation(t *testing.T) {
	s, _ := newTestSession(t)

	input := strings.Join([]string{
		// no such entry, then not a number
		"9",
		"x",
		// preset without a selection
		"3",
		// select hum.wav
		"1", "2",
		// design: blank order, then a bad order
		"4", "1", "",
		"4", "1", "abc",
		// design: lowpass order 2 at 500 Hz
		"4", "1", "2", "500",
		"0",
	}, "\n") + "\n"
	out := runMenu(t, s, input)

	assert.Contains(t, out, "no menu entry 9")
	assert.Contains(t, out, `"x" is not a whole number`)
	assert.Contains(t, out, "select at least one audio file")
	assert.Contains(t, out, `"abc" is not a whole number`)
	assert.Contains(t, out, "Butterworth lowpass, order 2, 500 Hz")
	assert.Equal(t, []string{"hum.wav"}, s.Selected())
}

func TestMenu_DesignRejectsCutoffAboveNyquist(t *testing.T) {
	s, _ := newTestSession(t)

	// 8 kHz files: 5000 Hz is above Nyquist
	out := runMenu(t, s, "1\n1\n4\n1\n4\n5000\n0\n")
	assert.Contains(t, out, "invalid cutoff range")
	assert.NotContains(t, out, "Octave band levels")
}

func TestMenu_BandDesignPromptsForEdges(t *testing.T) {
	s, _ := newTestSession(t)

	out := runMenu(t, s, "1\n1\n4\n3\n2\n300\n1000\n0\n")
	assert.Contains(t, out, "Low frequency (Hz)")
	assert.Contains(t, out, "High frequency (Hz)")
	assert.Contains(t, out, "Butterworth bandpass, order 2, 300-1000 Hz")
}

func TestMenu_NothingFilteredYet(t *testing.T) {
	s, _ := newTestSession(t)

	out := runMenu(t, s, "5\n6\n0\n")
	assert.Equal(t, 2, strings.Count(out, "nothing filtered yet"))
}

func TestMenu_AddFile(t *testing.T) {
	s, _ := newTestSession(t)

	out := runMenu(t, s, "2\n/music/new.wav\n2\n/other/new.wav\n0\n")
	assert.Equal(t, []string{"tone.wav", "hum.wav", "new.wav"}, s.Files())
	assert.Contains(t, out, "Already in the list")
}

func TestMenu_CancelledContext(t *testing.T) {
	s, _ := newTestSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := newMenu(ctx, s, strings.NewReader("1\n1\n"), &out).run()
	require.NoError(t, err)
	assert.Empty(t, s.Selected())
}
