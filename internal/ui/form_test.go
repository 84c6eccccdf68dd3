package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audiofilter "github.com/tphakala/go-audio-filter"
)

func TestDesignForm_Params(t *testing.T) {
	f := newDesignForm(audiofilter.DesignParams{Type: audiofilter.Highpass, Order: 2, Cutoff: 250.5, Low: 1, High: 2})
	p, err := f.params()
	require.NoError(t, err)
	assert.Equal(t, audiofilter.DesignParams{Type: audiofilter.Highpass, Order: 2, Cutoff: 250.5}, p)

	f.values[fieldOrder] = ""
	_, err = f.params()
	assert.ErrorContains(t, err, "order must be a whole number")

	f.values[fieldOrder] = "40"
	_, err = f.params()
	assert.ErrorIs(t, err, audiofilter.ErrInvalidOrder)

	f.values[fieldOrder] = "2"
	f.values[fieldCutoff] = "."
	_, err = f.params()
	assert.ErrorContains(t, err, "cutoff must be a number")
}

func TestDesignForm_Navigation(t *testing.T) {
	f := newDesignForm(audiofilter.DesignParams{Type: audiofilter.Lowpass, Order: 4, Cutoff: 1000})

	f.next()
	assert.Equal(t, fieldOrder, f.focus)
	f.next()
	assert.Equal(t, fieldCutoff, f.focus)
	f.next()
	assert.Equal(t, fieldType, f.focus, "band fields are skipped for lowpass")
	f.prev()
	assert.Equal(t, fieldCutoff, f.focus)

	f.focus = fieldType
	f.input("left")
	assert.Equal(t, audiofilter.Bandstop, f.filterType(), "cycling wraps around")
	f.next()
	f.next()
	assert.Equal(t, fieldLow, f.focus)
}

func TestDesignForm_InputFiltersCharacters(t *testing.T) {
	f := newDesignForm(audiofilter.DesignParams{Order: 4})
	f.focus = fieldOrder
	f.input("x")
	f.input("2")
	assert.Equal(t, "42", f.values[fieldOrder])
	f.input("backspace")
	f.input("backspace")
	f.input("backspace")
	assert.Empty(t, f.values[fieldOrder])
}
