package audiofilter

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-audio-filter/internal/simdops"
)

// Signal is a mono sample sequence at a fixed sample rate. Samples are nominally
// in [-1, 1].
type Signal struct {
	Samples    []float64
	SampleRate int
}

// Len returns the number of samples.
func (s *Signal) Len() int {
	return len(s.Samples)
}

// Duration returns the playing time of the signal.
func (s *Signal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(s.Samples)) / float64(s.SampleRate) * float64(time.Second))
}

// Combine averages signals sample by sample. Shorter signals are zero-padded to
// the longest, so the tail of a mix is attenuated by the number of inputs.
// All signals must share a sample rate.
func Combine(signals ...*Signal) (*Signal, error) {
	if len(signals) == 0 {
		return nil, ErrNoInput
	}

	rate := signals[0].SampleRate
	longest := 0
	for i, s := range signals {
		if s.SampleRate != rate {
			return nil, fmt.Errorf("%w: input %d is %d Hz, input 1 is %d Hz",
				ErrSampleRateMismatch, i+1, s.SampleRate, rate)
		}
		longest = max(longest, len(s.Samples))
	}

	out := make([]float64, longest)
	for _, s := range signals {
		vecmath.AddBlockInPlace(out[:len(s.Samples)], s.Samples)
	}
	simdops.For[float64]().Scale(out, out, 1/float64(len(signals)))

	return &Signal{Samples: out, SampleRate: rate}, nil
}

// CombineFiles loads WAV files concurrently and combines them.
func CombineFiles(paths ...string) (*Signal, error) {
	if len(paths) == 0 {
		return nil, ErrNoInput
	}

	signals := make([]*Signal, len(paths))

	// Load files concurrently
	var wg sync.WaitGroup
	errChan := make(chan error, len(paths))

	for i := range paths {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s, err := LoadWAV(paths[idx])
			if err != nil {
				errChan <- fmt.Errorf("input %d: %w", idx+1, err)
				return
			}
			signals[idx] = s
		}(i)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	return Combine(signals...)
}

// Peak returns the largest absolute sample value.
func Peak(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Max(floats.Max(x), -floats.Min(x))
}

// RMS returns the root-mean-square level of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(simdops.Energy(x) / float64(len(x)))
}

// Normalize returns a copy of x scaled so its peak absolute value is 1.
func Normalize(x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptySignal
	}
	peak := Peak(x)
	if peak == 0 {
		return nil, ErrSilentSignal
	}

	out := make([]float64, len(x))
	simdops.For[float64]().Scale(out, x, 1/peak)
	return out, nil
}

// NormalizeFloat32 is Normalize for playback buffers.
func NormalizeFloat32(x []float64) ([]float32, error) {
	if len(x) == 0 {
		return nil, ErrEmptySignal
	}
	peak := Peak(x)
	if peak == 0 {
		return nil, ErrSilentSignal
	}

	out := make([]float32, len(x))
	for i, v := range x {
		out[i] = float32(v)
	}
	simdops.For[float32]().Scale(out, out, float32(1/peak))
	return out, nil
}
