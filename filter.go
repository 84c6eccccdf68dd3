package audiofilter

import (
	"fmt"
)

// Section holds one second-order section in the row order used by .fcf files.
// A0 is conventionally 1; the cascade divides through by it.
type Section struct {
	B0, B1, B2 float64 // numerator
	A0, A1, A2 float64 // denominator
}

// SectionFromSlice builds a Section from b0 b1 b2 a0 a1 a2. It panics if v has
// fewer than six elements.
func SectionFromSlice(v []float64) Section {
	return Section{B0: v[0], B1: v[1], B2: v[2], A0: v[3], A1: v[4], A2: v[5]}
}

// Row returns the coefficients as b0 b1 b2 a0 a1 a2.
func (s Section) Row() [sectionFields]float64 {
	return [sectionFields]float64{s.B0, s.B1, s.B2, s.A0, s.A1, s.A2}
}

// Scaled multiplies the numerator by k. The denominator is left untouched.
func (s Section) Scaled(k float64) Section {
	s.B0 *= k
	s.B1 *= k
	s.B2 *= k
	return s
}

// firstOrder reports whether the section degenerates to a first-order stage.
func (s Section) firstOrder() bool {
	return s.B2 == 0 && s.A2 == 0
}

// Filter is a scaled SOS cascade ready to apply. It holds no processing state, so
// one Filter can be applied to many signals and from several goroutines.
type Filter struct {
	// Name is a display label, e.g. the preset or design description.
	Name string

	raw      []Section
	scales   []float64
	sections []Section
}

// NewFilter pairs each section with its scale value by position and returns the
// scaled cascade. The counts must match.
func NewFilter(sections []Section, scales []float64) (*Filter, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: no SOS sections", ErrMalformedFilterFile)
	}
	if len(sections) != len(scales) {
		return nil, fmt.Errorf("%w: %d sections but %d scale values",
			ErrMalformedFilterFile, len(sections), len(scales))
	}

	f := &Filter{
		raw:      make([]Section, len(sections)),
		scales:   make([]float64, len(scales)),
		sections: make([]Section, len(sections)),
	}
	copy(f.raw, sections)
	copy(f.scales, scales)

	for i, s := range sections {
		if s.A0 == 0 {
			return nil, fmt.Errorf("%w: section %d has a0 = 0", ErrMalformedFilterFile, i+1)
		}
		f.sections[i] = s.Scaled(scales[i])
	}

	return f, nil
}

// Sections returns a copy of the scaled sections in cascade order.
func (f *Filter) Sections() []Section {
	out := make([]Section, len(f.sections))
	copy(out, f.sections)
	return out
}

// Scales returns a copy of the per-section scale values.
func (f *Filter) Scales() []float64 {
	out := make([]float64, len(f.scales))
	copy(out, f.scales)
	return out
}

// NumSections returns the number of sections in the cascade.
func (f *Filter) NumSections() int {
	return len(f.sections)
}

// Order returns the filter order: two per biquad, one per first-order section.
func (f *Filter) Order() int {
	order := 0
	for _, s := range f.sections {
		if s.firstOrder() {
			order++
		} else {
			order += 2
		}
	}
	return order
}

// Apply filters x through the cascade and returns a new slice. x is not modified.
func (f *Filter) Apply(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	f.ApplyInPlace(out)
	return out
}

// ApplyInPlace filters buf through the cascade, starting from zero state.
func (f *Filter) ApplyInPlace(buf []float64) {
	c := newCascade(f.sections)
	c.processBlock(buf)
}

func (f *Filter) String() string {
	name := f.Name
	if name == "" {
		name = "filter"
	}
	return fmt.Sprintf("%s (%d sections, order %d)", name, len(f.sections), f.Order())
}
