package audiofilter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
)

// SkipReason describes why a filter file line was ignored.
type SkipReason int

const (
	// SkipFieldCount marks a section line without exactly six tokens.
	SkipFieldCount SkipReason = iota

	// SkipBadScale marks a scale line that isn't a single number.
	SkipBadScale
)

func (r SkipReason) String() string {
	switch r {
	case SkipFieldCount:
		return "section line needs 6 values"
	case SkipBadScale:
		return "scale line is not a number"
	default:
		return "unknown"
	}
}

// SkippedLine records a line the parser discarded.
type SkippedLine struct {
	Line   int
	Text   string
	Reason SkipReason
}

// FilterFile is the raw content of a parsed .fcf file.
// Sections and Scales are not checked against each other; see NewFilter.
type FilterFile struct {
	Sections []Section
	Scales   []float64
	Skipped  []SkippedLine
}

type fcfMode int

const (
	modeNone fcfMode = iota
	modeSections
	modeScales
)

// ReadFCF parses the filter file at path.
func ReadFCF(path string) (*FilterFile, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open filter file: %w", err)
	}
	defer func() { _ = f.Close() }()

	ff, err := ParseFCF(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ff, nil
}

// ParseFCF reads the SOS matrix and scale values from r.
//
// Section lines with the wrong token count and scale lines that don't parse are
// skipped. A bad number on an otherwise well-formed section line is an error.
func ParseFCF(r io.Reader) (*FilterFile, error) {
	ff := &FilterFile{}
	mode := modeNone

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, fcfCommentPrefix) {
			continue
		}

		if strings.Contains(line, fcfSOSMarker) {
			mode = modeSections
			continue
		}
		if strings.Contains(line, fcfScaleMarker) {
			mode = modeScales
			continue
		}

		switch mode {
		case modeSections:
			fields := strings.Fields(line)
			if len(fields) != sectionFields {
				ff.Skipped = append(ff.Skipped, SkippedLine{Line: lineNo, Text: line, Reason: SkipFieldCount})
				continue
			}
			sec, err := parseSection(fields)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Text: line, Err: err}
			}
			ff.Sections = append(ff.Sections, sec)

		case modeScales:
			v, err := strconv.ParseFloat(line, 64)
			if err != nil {
				ff.Skipped = append(ff.Skipped, SkippedLine{Line: lineNo, Text: line, Reason: SkipBadScale})
				continue
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &ParseError{Line: lineNo, Text: line, Err: errors.New("scale value is not finite")}
			}
			ff.Scales = append(ff.Scales, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read filter file: %w", err)
	}

	return ff, nil
}

func parseSection(fields []string) (Section, error) {
	var v [sectionFields]float64
	for i, tok := range fields {
		x, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return Section{}, err
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Section{}, fmt.Errorf("coefficient %d is not finite", i)
		}
		v[i] = x
	}
	return SectionFromSlice(v[:]), nil
}

// WriteFCF writes f in .fcf format. Numerators are written unscaled; the per-section
// scales go in the Scale Values block so the output parses back to the same filter.
func WriteFCF(w io.Writer, f *Filter) error {
	bw := bufio.NewWriter(w)

	name := f.Name
	if name == "" {
		name = "filter"
	}
	fmt.Fprintf(bw, "%% Filter: %s\n", name)
	fmt.Fprintf(bw, "%% Sections: %d\n", len(f.sections))
	fmt.Fprintf(bw, "%%\n\n%s\n", fcfSOSMarker)
	for _, s := range f.raw {
		fmt.Fprintf(bw, "%s %s %s %s %s %s\n",
			formatCoef(s.B0), formatCoef(s.B1), formatCoef(s.B2),
			formatCoef(s.A0), formatCoef(s.A1), formatCoef(s.A2))
	}
	fmt.Fprintf(bw, "\n%s\n", fcfScaleMarker)
	for _, s := range f.scales {
		fmt.Fprintln(bw, formatCoef(s))
	}

	return bw.Flush()
}

func formatCoef(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
