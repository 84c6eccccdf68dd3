package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelBar(t *testing.T) {
	assert.Empty(t, LevelBar(-90, -90))
	assert.Empty(t, LevelBar(-120, -90))
	assert.Equal(t, levelBarWidth, strings.Count(LevelBar(0, -90), "█"))
	assert.Equal(t, levelBarWidth, strings.Count(LevelBar(6, -90), "█"), "clamped at full scale")
	assert.Equal(t, levelBarWidth/2, strings.Count(LevelBar(-45, -90), "█"))
}

func TestFprintError(t *testing.T) {
	var buf bytes.Buffer
	FprintError(&buf, "no files selected")
	assert.Contains(t, buf.String(), "Error:")
	assert.Contains(t, buf.String(), "no files selected")
}

func TestPrintKV(t *testing.T) {
	var buf bytes.Buffer
	PrintKV(&buf, "Sections", 4)
	assert.Contains(t, buf.String(), "Sections:")
	assert.Contains(t, buf.String(), "4")
}

func TestFprintWarning(t *testing.T) {
	var buf bytes.Buffer
	FprintWarning(&buf, "skipped playback")
	assert.Contains(t, buf.String(), "Warning:")
	assert.Contains(t, buf.String(), "skipped playback")
}

func TestFormatHz(t *testing.T) {
	assert.Equal(t, "none", FormatHz(nil))
	assert.Equal(t, "999.4 Hz", FormatHz([]float64{999.43}))
	assert.Equal(t, "700.0 Hz, 1400.0 Hz", FormatHz([]float64{700, 1400}))
}

func TestLevelBar_Floor(t *testing.T) {
	assert.Empty(t, LevelBar(LevelFloor, LevelFloor))
	assert.Equal(t, levelBarWidth/3, strings.Count(LevelBar(LevelFloor*2/3, LevelFloor), "█"))
}
