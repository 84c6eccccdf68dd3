package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audiofilter "github.com/tphakala/go-audio-filter"
	"github.com/tphakala/go-audio-filter/internal/testutil"
)

func TestAnalyze_ReferenceLowpass(t *testing.T) {
	var out bytes.Buffer
	err := analyze(&out, filepath.Join("..", "..", "testdata", "lowpass.fcf"), 8000, 4000)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Sections: 2, scale values: 2")
	assert.Contains(t, text, "Order: 4")
	assert.Contains(t, text, "Stable: true")
	assert.Regexp(t, `DC gain:\s+-?0\.000 dB`, text)
	// maximally flat: the peak sits on or next to DC
	assert.Regexp(t, `Peak:\s+-?0\.000 dB at \d{1,2}\.\d Hz`, text)
	// -3 dB sits just below the -3.01 dB cutoff
	assert.Regexp(t, `-3 dB crossings: 99\d\.\d Hz\n`, text)
}

func TestAnalyze_ReportsSkippedLines(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "skip.fcf", "SOS Matrix:\n1 2 1 1 0 0\n1 2 3\nScale Values:\n0.25\n")

	var out bytes.Buffer
	require.NoError(t, analyze(&out, path, 8000, 100))
	assert.Contains(t, out.String(), "Skipped lines:")
	assert.Contains(t, out.String(), "line 3")
}

func TestAnalyze_Errors(t *testing.T) {
	var out bytes.Buffer
	err := analyze(&out, "/nonexistent/filter.fcf", 8000, 100)
	assert.ErrorIs(t, err, audiofilter.ErrFileNotFound)

	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "bad.fcf", "SOS Matrix:\n1 2 1 1 0 0\nScale Values:\n")
	err = analyze(&out, path, 8000, 100)
	assert.ErrorIs(t, err, audiofilter.ErrMalformedFilterFile)
}

func TestPoleRadius(t *testing.T) {
	// poles at 0.5 and -0.5: z^2 - 0.25
	s := audiofilter.Section{B0: 1, A0: 1, A1: 0, A2: -0.25}
	assert.InDelta(t, 0.5, poleRadius(s), 1e-12)

	// complex pair with radius 0.9
	s = audiofilter.Section{B0: 1, A0: 2, A1: 0, A2: 2 * 0.81}
	assert.InDelta(t, 0.9, poleRadius(s), 1e-12)
}
