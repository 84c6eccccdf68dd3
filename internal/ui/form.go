package ui

import (
	"fmt"
	"strconv"
	"strings"

	audiofilter "github.com/tphakala/go-audio-filter"
)

// formField identifies a row of the design form
type formField int

const (
	fieldType formField = iota
	fieldOrder
	fieldCutoff
	fieldLow
	fieldHigh
	fieldCount
)

var filterTypes = []audiofilter.FilterType{
	audiofilter.Lowpass,
	audiofilter.Highpass,
	audiofilter.Bandpass,
	audiofilter.Bandstop,
}

// designForm collects Butterworth parameters. Numeric fields are kept as text
// until submit so partial input can be edited.
type designForm struct {
	typeIdx int
	values  [fieldCount]string
	focus   formField
	err     error
}

func newDesignForm(p audiofilter.DesignParams) designForm {
	f := designForm{}
	for i, t := range filterTypes {
		if t == p.Type {
			f.typeIdx = i
		}
	}
	f.values[fieldOrder] = strconv.Itoa(p.Order)
	f.values[fieldCutoff] = formatHz(p.Cutoff)
	f.values[fieldLow] = formatHz(p.Low)
	f.values[fieldHigh] = formatHz(p.High)
	return f
}

func formatHz(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (f *designForm) filterType() audiofilter.FilterType {
	return filterTypes[f.typeIdx]
}

// visible reports whether a field applies to the selected filter type.
func (f *designForm) visible(field formField) bool {
	switch field {
	case fieldCutoff:
		return !f.filterType().IsBand()
	case fieldLow, fieldHigh:
		return f.filterType().IsBand()
	default:
		return true
	}
}

func (f *designForm) next() {
	for {
		f.focus = (f.focus + 1) % fieldCount
		if f.visible(f.focus) {
			return
		}
	}
}

func (f *designForm) prev() {
	for {
		f.focus = (f.focus + fieldCount - 1) % fieldCount
		if f.visible(f.focus) {
			return
		}
	}
}

func (f *designForm) cycleType(step int) {
	n := len(filterTypes)
	f.typeIdx = ((f.typeIdx+step)%n + n) % n
}

// input applies a key to the focused field.
func (f *designForm) input(key string) {
	f.err = nil
	if f.focus == fieldType {
		switch key {
		case "left", "h":
			f.cycleType(-1)
		case "right", "l", " ":
			f.cycleType(1)
		}
		return
	}

	v := f.values[f.focus]
	switch {
	case key == "backspace":
		if v != "" {
			f.values[f.focus] = v[:len(v)-1]
		}
	case len(key) == 1 && strings.ContainsAny(key, "0123456789."):
		f.values[f.focus] = v + key
	}
}

// params parses and checks the form. Missing or malformed values are errors.
func (f *designForm) params() (audiofilter.DesignParams, error) {
	p := audiofilter.DesignParams{Type: f.filterType()}

	order, err := strconv.Atoi(strings.TrimSpace(f.values[fieldOrder]))
	if err != nil {
		return p, fmt.Errorf("order must be a whole number, got %q", f.values[fieldOrder])
	}
	p.Order = order

	parse := func(field formField, label string) (float64, error) {
		v, err := strconv.ParseFloat(strings.TrimSpace(f.values[field]), 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be a number in Hz, got %q", label, f.values[field])
		}
		return v, nil
	}

	if p.Type.IsBand() {
		if p.Low, err = parse(fieldLow, "low cutoff"); err != nil {
			return p, err
		}
		if p.High, err = parse(fieldHigh, "high cutoff"); err != nil {
			return p, err
		}
		return p, check(p)
	}

	if p.Cutoff, err = parse(fieldCutoff, "cutoff"); err != nil {
		return p, err
	}
	return p, check(p)
}

// check applies the limits that don't depend on the sample rate. The Nyquist
// limit is checked once the selected audio is loaded.
func check(p audiofilter.DesignParams) error {
	if p.Order < 1 || p.Order > audiofilter.MaxOrder {
		return fmt.Errorf("%w: order must be 1-%d", audiofilter.ErrInvalidOrder, audiofilter.MaxOrder)
	}
	if p.Type.IsBand() {
		if p.Low <= 0 || p.Low >= p.High {
			return fmt.Errorf("%w: need 0 < low < high", audiofilter.ErrInvalidCutoffRange)
		}
		return nil
	}
	if p.Cutoff <= 0 {
		return fmt.Errorf("%w: cutoff must be positive", audiofilter.ErrInvalidCutoffRange)
	}
	return nil
}

func fieldLabel(field formField) string {
	switch field {
	case fieldType:
		return "Type"
	case fieldOrder:
		return "Order"
	case fieldCutoff:
		return "Cutoff Hz"
	case fieldLow:
		return "Low Hz"
	case fieldHigh:
		return "High Hz"
	default:
		return ""
	}
}
