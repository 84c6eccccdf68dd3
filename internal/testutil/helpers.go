// Package testutil provides reusable test helpers for filter and signal tests.
package testutil

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tolerances shared by the filter and signal tests.
const (
	DefaultTolerance = 1e-10
	DBTolerance      = 0.01

	// PCM16Tolerance covers one 16-bit quantisation step.
	PCM16Tolerance = 1.0 / 32767
)

const fullScale16 = 32767

// Sine returns n samples of a unit-amplitude sine at freq Hz.
func Sine(freq float64, sampleRate, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return out
}

// Constant returns n copies of v.
func Constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// WriteWAV16 writes interleaved samples in [-1, 1] as a 16-bit PCM WAV under dir
// and returns its path.
func WriteWAV16(t *testing.T, dir, name string, samples []float64, sampleRate, channels int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(math.Round(s * fullScale16))
	}

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	return path
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// AssertNoNaNOrInf fails on the first sample that is NaN or infinite.
func AssertNoNaNOrInf(t *testing.T, samples []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return assert.Fail(t, fmt.Sprintf("sample %d is %v", i, v), msgAndArgs...)
		}
	}
	return true
}

// AssertAllInRange fails on the first sample outside [lo, hi].
func AssertAllInRange(t *testing.T, samples []float64, lo, hi float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range samples {
		if v < lo || v > hi {
			return assert.Fail(t, fmt.Sprintf("sample %d = %g not in [%g, %g]", i, v, lo, hi), msgAndArgs...)
		}
	}
	return true
}

// AssertAllZero fails on the first non-zero sample.
func AssertAllZero(t *testing.T, samples []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range samples {
		if v != 0 {
			return assert.Fail(t, fmt.Sprintf("sample %d = %g, want 0", i, v), msgAndArgs...)
		}
	}
	return true
}

// AssertRelativeError checks |got-want|/|want| <= tol. A zero want falls back to
// an absolute check.
func AssertRelativeError(t *testing.T, want, got, tol float64, msgAndArgs ...any) bool {
	t.Helper()
	if want == 0 {
		return assert.InDelta(t, want, got, tol, msgAndArgs...)
	}
	rel := math.Abs(got-want) / math.Abs(want)
	if rel > tol {
		return assert.Fail(t, fmt.Sprintf("got %g, want %g (relative error %.3e > %.3e)", got, want, rel, tol), msgAndArgs...)
	}
	return true
}

// AssertInRange checks lo <= v <= hi.
func AssertInRange(t *testing.T, v, lo, hi float64, msgAndArgs ...any) bool {
	t.Helper()
	if v < lo || v > hi {
		return assert.Fail(t, fmt.Sprintf("%g not in [%g, %g]", v, lo, hi), msgAndArgs...)
	}
	return true
}
