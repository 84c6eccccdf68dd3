package audiofilter

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-filter/internal/testutil"
)

func TestCombine(t *testing.T) {
	tests := []struct {
		name    string
		signals [][]float64
		want    []float64
	}{
		{"equal length", [][]float64{{1, 1, 1}, {3, 3, 3}}, []float64{2, 2, 2}},
		{"unequal length pads with zeros", [][]float64{{1, 1}, {2, 2, 2, 2}}, []float64{1.5, 1.5, 1, 1}},
		{"single input", [][]float64{{0.25, -0.5}}, []float64{0.25, -0.5}},
		{"three inputs", [][]float64{{3}, {0, 3}, {0, 0, 3}}, []float64{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]*Signal, len(tt.signals))
			for i, s := range tt.signals {
				in[i] = &Signal{Samples: s, SampleRate: 8000}
			}

			got, err := Combine(in...)
			require.NoError(t, err)
			assert.Equal(t, 8000, got.SampleRate)
			assert.InDeltaSlice(t, tt.want, got.Samples, testutil.DefaultTolerance)
		})
	}
}

func TestCombine_DoesNotModifyInputs(t *testing.T) {
	a := &Signal{Samples: []float64{1, 1}, SampleRate: 8000}
	b := &Signal{Samples: []float64{2, 2, 2, 2}, SampleRate: 8000}

	_, err := Combine(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, a.Samples)
	assert.Equal(t, []float64{2, 2, 2, 2}, b.Samples)
}

func TestCombine_Errors(t *testing.T) {
	_, err := Combine()
	assert.ErrorIs(t, err, ErrNoInput)

	out, err := Combine(
		&Signal{Samples: []float64{1, 1}, SampleRate: 44100},
		&Signal{Samples: []float64{1, 1}, SampleRate: 48000},
	)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrSampleRateMismatch)
}

func TestCombineFiles(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WriteWAV16(t, dir, "a.wav", []float64{0.5, 0.5, 0.5}, 8000, 1)
	b := testutil.WriteWAV16(t, dir, "b.wav", []float64{-0.5, -0.5}, 8000, 1)

	got, err := CombineFiles(a, b)
	require.NoError(t, err)
	assert.Equal(t, 8000, got.SampleRate)
	assert.InDeltaSlice(t, []float64{0, 0, 0.25}, got.Samples, testutil.PCM16Tolerance)
}

func TestCombineFiles_Errors(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WriteWAV16(t, dir, "a.wav", []float64{0.1, 0.2}, 44100, 1)
	b := testutil.WriteWAV16(t, dir, "b.wav", []float64{0.1, 0.2}, 48000, 1)

	_, err := CombineFiles()
	assert.ErrorIs(t, err, ErrNoInput)

	_, err = CombineFiles(a, b)
	assert.ErrorIs(t, err, ErrSampleRateMismatch)

	_, err = CombineFiles(a, dir+"/missing.wav")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestNormalize(t *testing.T) {
	x := []float64{0.1, -0.4, 0.2}

	got, err := Normalize(x)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.25, -1, 0.5}, got, testutil.DefaultTolerance)
	assert.Equal(t, []float64{0.1, -0.4, 0.2}, x)

	got32, err := NormalizeFloat32(x)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0.25, -1, 0.5}, got32, 1e-6)
}

func TestNormalize_Silent(t *testing.T) {
	_, err := Normalize(make([]float64, 64))
	assert.ErrorIs(t, err, ErrSilentSignal)

	_, err = NormalizeFloat32(make([]float64, 64))
	assert.ErrorIs(t, err, ErrSilentSignal)

	_, err = Normalize(nil)
	assert.ErrorIs(t, err, ErrEmptySignal)
}

func TestPeakAndRMS(t *testing.T) {
	assert.InDelta(t, 0.8, Peak([]float64{0.1, -0.8, 0.5}), 0)
	assert.InDelta(t, 0.5, Peak([]float64{0.5, 0.2}), 0)
	assert.Zero(t, Peak(nil))

	sine := testutil.Sine(100, 8000, 8000)
	assert.InDelta(t, 1/math.Sqrt2, RMS(sine), 1e-6)
	assert.Zero(t, RMS(nil))
}

func TestSignal_Duration(t *testing.T) {
	s := &Signal{Samples: make([]float64, 22050), SampleRate: 44100}
	assert.Equal(t, 500*time.Millisecond, s.Duration())
	assert.Equal(t, 22050, s.Len())
	assert.Zero(t, (&Signal{}).Duration())
}
