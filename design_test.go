package audiofilter

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-filter/internal/testutil"
)

const testRate = 8000

func gainAt(t *testing.T, f *Filter, freq float64) float64 {
	t.Helper()
	return cmplx.Abs(f.ResponseAt(freq, testRate))
}

func TestDesign_Lowpass(t *testing.T) {
	for _, order := range []int{1, 2, 3, 4, 7} {
		f, err := Design(DesignParams{Type: Lowpass, Order: order, Cutoff: 1000}, testRate)
		require.NoError(t, err)

		assert.Equal(t, order, f.Order())
		assert.Equal(t, (order+1)/2, f.NumSections())
		assert.InDelta(t, 1.0, gainAt(t, f, 0), 1e-9, "order %d DC gain", order)
		assert.InDelta(t, math.Sqrt2/2, gainAt(t, f, 1000), 1e-9, "order %d cutoff gain", order)
		if order >= 4 {
			assert.Less(t, gainAt(t, f, 3000), 0.01, "order %d stopband", order)
		}
	}
}

func TestDesign_MatchesReferenceFile(t *testing.T) {
	ff, err := ReadFCF("testdata/lowpass.fcf")
	require.NoError(t, err)

	f, err := Design(DesignParams{Type: Lowpass, Order: 4, Cutoff: 1000}, testRate)
	require.NoError(t, err)

	got := f.Sections()
	want, err := NewFilter(ff.Sections, ff.Scales)
	require.NoError(t, err)
	for i, s := range want.Sections() {
		w, g := s.Row(), got[i].Row()
		assert.InDeltaSlice(t, w[:], g[:], 1e-12, "section %d", i)
	}
}

func TestDesign_Highpass(t *testing.T) {
	f, err := Design(DesignParams{Type: Highpass, Order: 3, Cutoff: 1000}, testRate)
	require.NoError(t, err)

	assert.Less(t, gainAt(t, f, 0), 1e-9)
	assert.InDelta(t, 1.0, gainAt(t, f, testRate/2), 1e-9)
	assert.InDelta(t, math.Sqrt2/2, gainAt(t, f, 1000), 1e-9)

	y := f.Apply(testutil.Constant(1, 4000))
	assert.InDelta(t, 0, y[len(y)-1], 1e-6, "DC should decay to zero")
}

func TestDesign_Bandpass(t *testing.T) {
	f, err := Design(DesignParams{Type: Bandpass, Order: 2, Low: 300, High: 1200}, testRate)
	require.NoError(t, err)

	resp, err := f.Response(DefaultResponsePoints, testRate)
	require.NoError(t, err)

	peak := resp.PeakFrequency()
	testutil.AssertInRange(t, peak, 300, 1200)
	assert.Less(t, resp.MagnitudeDB[0], -100.0, "DC is a zero of the bandpass")
	assert.InDelta(t, math.Sqrt2/2, gainAt(t, f, 300), 1e-9)
	assert.InDelta(t, math.Sqrt2/2, gainAt(t, f, 1200), 1e-9)
}

func TestDesign_Bandstop(t *testing.T) {
	f, err := Design(DesignParams{Type: Bandstop, Order: 2, Low: 300, High: 1200}, testRate)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, gainAt(t, f, 0), 1e-9)
	assert.InDelta(t, 1.0, gainAt(t, f, testRate/2), 1e-9)
	assert.Less(t, gainAt(t, f, 600), 0.01)
}

func TestDesign_Stable(t *testing.T) {
	params := []DesignParams{
		{Type: Lowpass, Order: 8, Cutoff: 50},
		{Type: Highpass, Order: 8, Cutoff: 3900},
		{Type: Bandpass, Order: 6, Low: 100, High: 150},
		{Type: Bandstop, Order: 5, Low: 1000, High: 1100},
	}

	for _, p := range params {
		t.Run(p.String(), func(t *testing.T) {
			f, err := Design(p, testRate)
			require.NoError(t, err)

			for i, s := range f.Sections() {
				// poles inside the unit circle: |a2| < 1 and |a1| < 1 + a2
				assert.Less(t, math.Abs(s.A2), 1.0, "section %d", i)
				assert.Less(t, math.Abs(s.A1), 1+s.A2, "section %d", i)
			}

			y := f.Apply(testutil.Sine(440, testRate, 8000))
			testutil.AssertNoNaNOrInf(t, y)
		})
	}
}

func TestDesignParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  DesignParams
		wantErr error
	}{
		{"bandpass low above high", DesignParams{Type: Bandpass, Order: 4, Low: 500, High: 400}, ErrInvalidCutoffRange},
		{"bandpass equal edges", DesignParams{Type: Bandpass, Order: 4, Low: 500, High: 500}, ErrInvalidCutoffRange},
		{"bandpass high at nyquist", DesignParams{Type: Bandpass, Order: 4, Low: 500, High: 4000}, ErrInvalidCutoffRange},
		{"bandstop zero low", DesignParams{Type: Bandstop, Order: 2, Low: 0, High: 400}, ErrInvalidCutoffRange},
		{"lowpass above nyquist", DesignParams{Type: Lowpass, Order: 4, Cutoff: 5000}, ErrInvalidCutoffRange},
		{"highpass negative", DesignParams{Type: Highpass, Order: 4, Cutoff: -1}, ErrInvalidCutoffRange},
		{"zero order", DesignParams{Type: Lowpass, Order: 0, Cutoff: 1000}, ErrInvalidOrder},
		{"order too high", DesignParams{Type: Lowpass, Order: MaxOrder + 1, Cutoff: 1000}, ErrInvalidOrder},
		{"valid lowpass", DesignParams{Type: Lowpass, Order: 4, Cutoff: 1000}, nil},
		{"valid bandpass", DesignParams{Type: Bandpass, Order: 4, Low: 400, High: 500}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate(testRate)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)

			f, err := Design(tt.params, testRate)
			assert.Nil(t, f)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseFilterType(t *testing.T) {
	tests := map[string]FilterType{
		"lowpass":  Lowpass,
		"HP":       Highpass,
		" band ":   Bandpass,
		"notch":    Bandstop,
		"bandstop": Bandstop,
	}
	for in, want := range tests {
		got, err := ParseFilterType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFilterType("comb")
	assert.Error(t, err)
}

func TestDesignParams_String(t *testing.T) {
	assert.Equal(t, "Butterworth bandpass, order 4, 300-3400 Hz",
		DesignParams{Type: Bandpass, Order: 4, Low: 300, High: 3400}.String())
	assert.Equal(t, "Butterworth lowpass, order 2, 1000 Hz",
		DesignParams{Type: Lowpass, Order: 2, Cutoff: 1000}.String())
}
