package audiofilter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-filter/internal/testutil"
)

func TestNewFilter_ScalesNumeratorOnly(t *testing.T) {
	s := Section{B0: 1, B1: 2, B2: 3, A0: 1, A1: -0.5, A2: 0.25}

	f, err := NewFilter([]Section{s}, []float64{0.5})
	require.NoError(t, err)

	got := f.Sections()
	require.Len(t, got, 1)
	assert.Equal(t, Section{B0: 0.5, B1: 1, B2: 1.5, A0: 1, A1: -0.5, A2: 0.25}, got[0])
	assert.Equal(t, []float64{0.5}, f.Scales())
}

func TestNewFilter_Malformed(t *testing.T) {
	s := Section{B0: 1, A0: 1}

	tests := []struct {
		name     string
		sections []Section
		scales   []float64
	}{
		{"more scales than sections", []Section{s}, []float64{1, 1}},
		{"more sections than scales", []Section{s, s}, []float64{1}},
		{"no sections", nil, nil},
		{"zero a0", []Section{{B0: 1}}, []float64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilter(tt.sections, tt.scales)
			assert.Nil(t, f)
			assert.ErrorIs(t, err, ErrMalformedFilterFile)
		})
	}
}

func TestNewFilter_MismatchMessage(t *testing.T) {
	_, err := NewFilter([]Section{{A0: 1}, {A0: 1}, {A0: 1}}, []float64{1, 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 sections but 2 scale values")
}

func TestFilter_Order(t *testing.T) {
	f, err := NewFilter([]Section{
		{B0: 1, B1: 2, B2: 1, A0: 1, A1: -0.5, A2: 0.25},
		{B0: 1, B1: 1, A0: 1, A1: -0.5},
	}, []float64{1, 1})
	require.NoError(t, err)

	assert.Equal(t, 2, f.NumSections())
	assert.Equal(t, 3, f.Order())
}

func TestFilter_ApplyImpulse(t *testing.T) {
	// y[n] = 0.5*x[n] + 0.5*y[n-1]
	f, err := NewFilter([]Section{{B0: 1, A0: 1, A1: -0.5}}, []float64{0.5})
	require.NoError(t, err)

	x := []float64{1, 0, 0, 0}
	y := f.Apply(x)

	assert.InDeltaSlice(t, []float64{0.5, 0.25, 0.125, 0.0625}, y, testutil.DefaultTolerance)
	assert.Equal(t, []float64{1, 0, 0, 0}, x, "input must not be modified")
}

func TestFilter_NormalisesByA0(t *testing.T) {
	plain, err := NewFilter([]Section{{B0: 1, B1: 0.5, A0: 1, A1: -0.25}}, []float64{1})
	require.NoError(t, err)
	doubled, err := NewFilter([]Section{{B0: 2, B1: 1, A0: 2, A1: -0.5}}, []float64{1})
	require.NoError(t, err)

	x := testutil.Sine(440, 8000, 256)
	assert.InDeltaSlice(t, plain.Apply(x), doubled.Apply(x), testutil.DefaultTolerance)
}

func TestFilter_CascadeOrder(t *testing.T) {
	// Section outputs feed the next section; for LTI sections the result equals
	// applying each section's filter in turn.
	a := Section{B0: 1, B1: 0.3, A0: 1, A1: -0.2}
	b := Section{B0: 0.5, B1: 0, B2: 0.5, A0: 1, A1: 0.1, A2: 0.05}

	both, err := NewFilter([]Section{a, b}, []float64{1, 2})
	require.NoError(t, err)
	first, err := NewFilter([]Section{a}, []float64{1})
	require.NoError(t, err)
	second, err := NewFilter([]Section{b}, []float64{2})
	require.NoError(t, err)

	x := testutil.Sine(1000, 8000, 128)
	assert.InDeltaSlice(t, second.Apply(first.Apply(x)), both.Apply(x), 1e-12)
}

func TestFilter_ZeroSignal(t *testing.T) {
	f, err := ReadFCF(filepath.Join("testdata", "lowpass.fcf"))
	require.NoError(t, err)
	lp, err := NewFilter(f.Sections, f.Scales)
	require.NoError(t, err)

	for _, n := range []int{0, 1, 17, 4096} {
		y := lp.Apply(make([]float64, n))
		require.Len(t, y, n)
		testutil.AssertAllZero(t, y)

		_, err := Normalize(y)
		if n == 0 {
			assert.ErrorIs(t, err, ErrEmptySignal)
		} else {
			assert.ErrorIs(t, err, ErrSilentSignal)
		}
	}
}

func TestFilter_ApplyIsRepeatable(t *testing.T) {
	f, err := NewFilter([]Section{{B0: 1, B1: 2, B2: 1, A0: 1, A1: -0.8, A2: 0.2}}, []float64{0.1})
	require.NoError(t, err)

	x := testutil.Sine(300, 8000, 512)
	assert.Equal(t, f.Apply(x), f.Apply(x))
}

func TestFilter_String(t *testing.T) {
	f, err := NewFilter([]Section{{B0: 1, A0: 1}}, []float64{1})
	require.NoError(t, err)
	assert.Equal(t, "filter (1 sections, order 1)", f.String())

	f.Name = "Lowpass"
	assert.Equal(t, "Lowpass (1 sections, order 1)", f.String())
}
