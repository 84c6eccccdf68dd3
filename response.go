package audiofilter

import (
	"fmt"
	"math"
	"math/cmplx"
)

// ResponseAt evaluates the cascade's transfer function at freq Hz.
func (f *Filter) ResponseAt(freq float64, sampleRate int) complex128 {
	w := 2 * math.Pi * freq / float64(sampleRate)
	z := cmplx.Exp(complex(0, w))

	h := complex(1, 0)
	for _, s := range f.sections {
		h *= sectionResponse(s, z)
	}
	return h
}

// Response samples the magnitude response at points frequencies evenly spaced
// over [0, sampleRate/2).
func (f *Filter) Response(points, sampleRate int) (*Spectrum, error) {
	if points <= 0 {
		return nil, fmt.Errorf("response needs at least one point, got %d", points)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	s := &Spectrum{
		Freqs:       make([]float64, points),
		MagnitudeDB: make([]float64, points),
	}
	step := float64(sampleRate) / nyquistDivide / float64(points)
	for k := range points {
		freq := float64(k) * step
		s.Freqs[k] = freq
		s.MagnitudeDB[k] = toDB(cmplx.Abs(f.ResponseAt(freq, sampleRate)))
	}
	return s, nil
}
