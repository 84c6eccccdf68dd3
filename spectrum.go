package audiofilter

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// Spectrum is a magnitude curve over frequency. Freqs are in Hz, ascending, and
// MagnitudeDB has the same length.
type Spectrum struct {
	Freqs       []float64
	MagnitudeDB []float64
}

// Len returns the number of points.
func (s *Spectrum) Len() int {
	return len(s.Freqs)
}

// AnalyzeSpectrum computes the one-sided magnitude spectrum of x: |X[k]|/N in dB
// for k = 0..N/2, at frequencies k*sampleRate/N.
func AnalyzeSpectrum(x []float64, sampleRate int) (*Spectrum, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrEmptySignal
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, x)

	bins := len(coeffs)
	re := make([]float64, bins)
	im := make([]float64, bins)
	invN := 1 / float64(n)
	for i, c := range coeffs {
		re[i] = real(c) * invN
		im[i] = imag(c) * invN
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	s := &Spectrum{
		Freqs:       make([]float64, bins),
		MagnitudeDB: mag,
	}
	rate := float64(sampleRate)
	for k := range bins {
		s.Freqs[k] = fft.Freq(k) * rate
		s.MagnitudeDB[k] = toDB(mag[k])
	}

	return s, nil
}

func toDB(mag float64) float64 {
	return dbScale * math.Log10(mag+dbFloor)
}

// PeakFrequency returns the frequency of the loudest bin.
func (s *Spectrum) PeakFrequency() float64 {
	freq, _ := s.Peak()
	return freq
}

// Peak returns the frequency and level of the loudest bin, or zeros for an
// empty spectrum.
func (s *Spectrum) Peak() (freq, db float64) {
	if len(s.MagnitudeDB) == 0 {
		return 0, 0
	}
	k := floats.MaxIdx(s.MagnitudeDB)
	return s.Freqs[k], s.MagnitudeDB[k]
}

// Crossings returns the frequencies where the magnitude crosses level, linearly
// interpolated between bins. A bin sitting exactly on level does not count.
func (s *Spectrum) Crossings(level float64) []float64 {
	var out []float64
	for k := 1; k < s.Len(); k++ {
		a, b := s.MagnitudeDB[k-1]-level, s.MagnitudeDB[k]-level
		if a == 0 || a*b >= 0 {
			continue
		}
		t := a / (a - b)
		out = append(out, s.Freqs[k-1]+t*(s.Freqs[k]-s.Freqs[k-1]))
	}
	return out
}

// EdgesBelowPeak returns the crossings drop dB under the peak level, e.g. the
// -3 dB band edges of a frequency response for drop 3.
func (s *Spectrum) EdgesBelowPeak(drop float64) []float64 {
	_, peak := s.Peak()
	return s.Crossings(peak - drop)
}

// BandLevels returns the RMS level in dB of the bins falling in each band
// [edges[i], edges[i+1]). Bands without bins report the dB floor.
func (s *Spectrum) BandLevels(edges []float64) []float64 {
	if len(edges) < 2 {
		return nil
	}

	levels := make([]float64, len(edges)-1)
	for b := range levels {
		lo, hi := edges[b], edges[b+1]
		var power float64
		count := 0
		for k, f := range s.Freqs {
			if f < lo || f >= hi {
				continue
			}
			mag := math.Pow(10, s.MagnitudeDB[k]/dbScale)
			power += mag * mag
			count++
		}
		if count == 0 {
			levels[b] = toDB(0)
			continue
		}
		levels[b] = toDB(math.Sqrt(power / float64(count)))
	}
	return levels
}

// Octave band layout
const (
	lowestBandEdge = 31.25
	octaveRatio    = 2
)

// OctaveBandEdges returns octave band edges from 31.25 Hz up to the Nyquist
// frequency, which closes the last band.
func OctaveBandEdges(sampleRate int) []float64 {
	nyquist := float64(sampleRate) / nyquistDivide
	if nyquist <= lowestBandEdge {
		return []float64{0, nyquist}
	}

	edges := []float64{0}
	for e := lowestBandEdge; e < nyquist; e *= octaveRatio {
		edges = append(edges, e)
	}
	return append(edges, nyquist)
}

// WriteSpectraCSV writes the original and filtered spectra side by side. Both
// must come from signals of the same length.
func WriteSpectraCSV(w io.Writer, original, filtered *Spectrum) error {
	if original.Len() != filtered.Len() {
		return fmt.Errorf("spectra differ in length: %d vs %d", original.Len(), filtered.Len())
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"frequency_hz", "original_db", "filtered_db"}); err != nil {
		return err
	}
	for k := range original.Freqs {
		row := []string{
			strconv.FormatFloat(original.Freqs[k], 'f', 4, 64),
			strconv.FormatFloat(original.MagnitudeDB[k], 'f', 4, 64),
			strconv.FormatFloat(filtered.MagnitudeDB[k], 'f', 4, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSpectrumCSV writes a single curve, e.g. a filter response.
func WriteSpectrumCSV(w io.Writer, s *Spectrum) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"frequency_hz", "magnitude_db"}); err != nil {
		return err
	}
	for k := range s.Freqs {
		row := []string{
			strconv.FormatFloat(s.Freqs[k], 'f', 4, 64),
			strconv.FormatFloat(s.MagnitudeDB[k], 'f', 4, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
