package audiofilter

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"strings"
)

// FilterType selects the band shape of a designed filter.
type FilterType int

const (
	// Lowpass passes frequencies below Cutoff.
	Lowpass FilterType = iota

	// Highpass passes frequencies above Cutoff.
	Highpass

	// Bandpass passes frequencies between Low and High.
	Bandpass

	// Bandstop rejects frequencies between Low and High.
	Bandstop
)

func (t FilterType) String() string {
	switch t {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	case Bandstop:
		return "bandstop"
	default:
		return fmt.Sprintf("FilterType(%d)", int(t))
	}
}

// IsBand reports whether the type takes two cutoff frequencies.
func (t FilterType) IsBand() bool {
	return t == Bandpass || t == Bandstop
}

// ParseFilterType maps a name such as "lowpass" or "bp" to a FilterType.
func ParseFilterType(s string) (FilterType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lowpass", "lp", "low":
		return Lowpass, nil
	case "highpass", "hp", "high":
		return Highpass, nil
	case "bandpass", "bp", "band":
		return Bandpass, nil
	case "bandstop", "bs", "notch", "bandreject":
		return Bandstop, nil
	default:
		return 0, fmt.Errorf("unknown filter type %q", s)
	}
}

// DesignParams describes a Butterworth filter. Lowpass and Highpass use Cutoff;
// Bandpass and Bandstop use Low and High. All frequencies are in Hz.
type DesignParams struct {
	Type   FilterType
	Order  int
	Cutoff float64
	Low    float64
	High   float64
}

// Validate checks the parameters against the sample rate.
func (p DesignParams) Validate(sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidCutoffRange)
	}
	if p.Order < 1 || p.Order > MaxOrder {
		return fmt.Errorf("%w: order %d outside 1..%d", ErrInvalidOrder, p.Order, MaxOrder)
	}

	nyquist := float64(sampleRate) / nyquistDivide
	if p.Type.IsBand() {
		if p.Low <= 0 || p.Low >= p.High || p.High >= nyquist {
			return fmt.Errorf("%w: need 0 < f_low < f_high < %g Hz, got %g and %g",
				ErrInvalidCutoffRange, nyquist, p.Low, p.High)
		}
		return nil
	}

	if p.Cutoff <= 0 || p.Cutoff >= nyquist {
		return fmt.Errorf("%w: need 0 < cutoff < %g Hz, got %g", ErrInvalidCutoffRange, nyquist, p.Cutoff)
	}
	return nil
}

// String describes the design, e.g. "Butterworth bandpass, order 4, 300-3400 Hz".
func (p DesignParams) String() string {
	if p.Type.IsBand() {
		return fmt.Sprintf("Butterworth %s, order %d, %g-%g Hz", p.Type, p.Order, p.Low, p.High)
	}
	return fmt.Sprintf("Butterworth %s, order %d, %g Hz", p.Type, p.Order, p.Cutoff)
}

// Design synthesises a digital Butterworth cascade for the given sample rate.
//
// The analog prototype is frequency-transformed, mapped with the bilinear transform
// (cutoffs prewarped), and grouped into sections by conjugate pole pairs. Each
// section's gain goes into its scale value so the passband peaks at unity.
func Design(p DesignParams, sampleRate int) (*Filter, error) {
	if err := p.Validate(sampleRate); err != nil {
		return nil, err
	}

	fs2 := 2 * float64(sampleRate)
	warp := func(f float64) float64 {
		return fs2 * math.Tan(math.Pi*f/float64(sampleRate))
	}

	proto := butterworthPrototype(p.Order)
	analog := make([]complex128, 0, 2*p.Order)

	var center complex128
	switch p.Type {
	case Lowpass:
		wc := complex(warp(p.Cutoff), 0)
		for _, pole := range proto {
			analog = append(analog, wc*pole)
		}
	case Highpass:
		wc := complex(warp(p.Cutoff), 0)
		for _, pole := range proto {
			analog = append(analog, wc/pole)
		}
	case Bandpass, Bandstop:
		wl, wh := warp(p.Low), warp(p.High)
		bw := complex(wh-wl, 0)
		w0 := math.Sqrt(wl * wh)
		w0sq := complex(w0*w0, 0)
		for _, pole := range proto {
			var base complex128
			if p.Type == Bandpass {
				base = pole * bw / 2
			} else {
				base = bw / 2 / pole
			}
			d := cmplx.Sqrt(base*base - w0sq)
			analog = append(analog, base+d, base-d)
		}
		center = bilinear(complex(0, w0), fs2)
	}

	digital := make([]complex128, len(analog))
	for i, pa := range analog {
		digital[i] = bilinear(pa, fs2)
	}

	groups := pairPoles(digital)
	sections := make([]Section, len(groups))
	for i, g := range groups {
		sections[i] = sectionFromPoles(g, p.Type, center)
	}

	ref := referencePoint(p.Type, center)
	scales := make([]float64, len(sections))
	total := complex(1, 0)
	for i, s := range sections {
		h := sectionResponse(s, ref)
		scales[i] = 1 / cmplx.Abs(h)
		total *= h * complex(scales[i], 0)
	}
	if real(total) < 0 {
		scales[0] = -scales[0]
	}

	f, err := NewFilter(sections, scales)
	if err != nil {
		return nil, err
	}
	f.Name = p.String()
	return f, nil
}

// butterworthPrototype returns the n left-half-plane poles of the unit-cutoff
// analog Butterworth lowpass.
func butterworthPrototype(n int) []complex128 {
	poles := make([]complex128, n)
	for k := range n {
		theta := math.Pi * float64(2*k+1) / float64(2*n)
		poles[k] = complex(-math.Sin(theta), math.Cos(theta))
	}
	return poles
}

// bilinear maps an s-plane point to the z-plane; fs2 is twice the sample rate.
func bilinear(s complex128, fs2 float64) complex128 {
	k := complex(fs2, 0)
	return (k + s) / (k - s)
}

// poleTolerance decides when a pole counts as real.
const poleTolerance = 1e-10

// pairPoles groups conjugate pairs, then pairs the remaining real poles. A leftover
// real pole forms a first-order group. Groups are ordered by pole radius so the
// sections closest to the unit circle run last.
func pairPoles(poles []complex128) [][]complex128 {
	var groups [][]complex128
	var reals []float64

	for _, p := range poles {
		switch {
		case imag(p) > poleTolerance:
			groups = append(groups, []complex128{p, cmplx.Conj(p)})
		case imag(p) < -poleTolerance:
			// conjugate of a pole already grouped
		default:
			reals = append(reals, real(p))
		}
	}

	sort.Float64s(reals)
	for i := 0; i+1 < len(reals); i += 2 {
		groups = append(groups, []complex128{complex(reals[i], 0), complex(reals[i+1], 0)})
	}
	if len(reals)%2 == 1 {
		groups = append(groups, []complex128{complex(reals[len(reals)-1], 0)})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return cmplx.Abs(groups[i][0]) < cmplx.Abs(groups[j][0])
	})
	return groups
}

// sectionFromPoles builds an unscaled section from a pole group and the zeros the
// filter type places at z = 1, z = -1 or on the unit circle at the band centre.
func sectionFromPoles(g []complex128, t FilterType, center complex128) Section {
	s := Section{A0: 1}
	if len(g) == 1 {
		s.A1 = -real(g[0])
		switch t {
		case Highpass:
			s.B0, s.B1 = 1, -1
		default:
			s.B0, s.B1 = 1, 1
		}
		return s
	}

	sum := g[0] + g[1]
	prod := g[0] * g[1]
	s.A1 = -real(sum)
	s.A2 = real(prod)

	switch t {
	case Lowpass:
		s.B0, s.B1, s.B2 = 1, 2, 1
	case Highpass:
		s.B0, s.B1, s.B2 = 1, -2, 1
	case Bandpass:
		s.B0, s.B1, s.B2 = 1, 0, -1
	case Bandstop:
		s.B0, s.B1, s.B2 = 1, -2*real(center), 1
	}
	return s
}

// referencePoint is where the designed filter has unit gain.
func referencePoint(t FilterType, center complex128) complex128 {
	switch t {
	case Highpass:
		return -1
	case Bandpass:
		return center
	default:
		return 1
	}
}

// sectionResponse evaluates one section's transfer function at z.
func sectionResponse(s Section, z complex128) complex128 {
	zi := 1 / z
	zi2 := zi * zi
	num := complex(s.B0, 0) + complex(s.B1, 0)*zi + complex(s.B2, 0)*zi2
	den := complex(s.A0, 0) + complex(s.A1, 0)*zi + complex(s.A2, 0)*zi2
	return num / den
}
