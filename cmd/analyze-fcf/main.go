// Command analyze-fcf prints the contents of an .fcf filter file and a summary of
// its frequency response.
//
// Usage:
//
//	analyze-fcf -rate 44100 presets/lowpass.fcf
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"os"

	audiofilter "github.com/tphakala/go-audio-filter"
)

const (
	defaultRate   = 44100
	defaultPoints = 4096

	// Level used to report the band edges
	edgeLevelDB = -3.0
)

func main() {
	rate := flag.Int("rate", defaultRate, "Sample rate in Hz the filter is evaluated at")
	points := flag.Int("points", defaultPoints, "Frequency grid size")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] filter.fcf\n\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := analyze(os.Stdout, flag.Arg(0), *rate, *points); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func analyze(w io.Writer, path string, rate, points int) error {
	ff, err := audiofilter.ReadFCF(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "=== %s ===\n", path)
	fmt.Fprintf(w, "Sections: %d, scale values: %d\n", len(ff.Sections), len(ff.Scales))
	if len(ff.Skipped) > 0 {
		fmt.Fprintf(w, "\nSkipped lines:\n")
		for _, sk := range ff.Skipped {
			fmt.Fprintf(w, "  line %d (%s): %s\n", sk.Line, sk.Reason, sk.Text)
		}
	}

	f, err := audiofilter.NewFilter(ff.Sections, ff.Scales)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nSOS matrix (b0 b1 b2 a0 a1 a2) and scale:\n")
	for i, s := range ff.Sections {
		fmt.Fprintf(w, "  %2d: % .10f % .10f % .10f % .10f % .10f % .10f  x %.10g\n",
			i+1, s.B0, s.B1, s.B2, s.A0, s.A1, s.A2, ff.Scales[i])
	}

	fmt.Fprintf(w, "\nOrder: %d\n", f.Order())

	// poles of each section
	fmt.Fprintf(w, "\nPole radius per section:\n")
	stable := true
	for i, s := range f.Sections() {
		r := poleRadius(s)
		if r >= 1 {
			stable = false
		}
		fmt.Fprintf(w, "  %2d: %.6f\n", i+1, r)
	}
	fmt.Fprintf(w, "Stable: %v\n", stable)

	resp, err := f.Response(points, rate)
	if err != nil {
		return err
	}
	summarize(w, f, resp, rate)
	return nil
}

// poleRadius returns the largest pole magnitude of a normalized section.
func poleRadius(s audiofilter.Section) float64 {
	a1, a2 := s.A1/s.A0, s.A2/s.A0
	disc := cmplx.Sqrt(complex(a1*a1-4*a2, 0))
	p1 := (complex(-a1, 0) + disc) / 2
	p2 := (complex(-a1, 0) - disc) / 2
	return math.Max(cmplx.Abs(p1), cmplx.Abs(p2))
}

func summarize(w io.Writer, f *audiofilter.Filter, resp *audiofilter.Spectrum, rate int) {
	nyquist := float64(rate) / 2

	fmt.Fprintf(w, "\nResponse at %d Hz:\n", rate)
	fmt.Fprintf(w, "  DC gain:      %8.3f dB\n", db(f.ResponseAt(0, rate)))
	fmt.Fprintf(w, "  Nyquist gain: %8.3f dB\n", db(f.ResponseAt(nyquist, rate)))

	peakHz, peakDB := resp.Peak()
	fmt.Fprintf(w, "  Peak:         %8.3f dB at %.1f Hz\n", peakDB, peakHz)

	edges := resp.Crossings(peakDB + edgeLevelDB)
	if len(edges) == 0 {
		fmt.Fprintf(w, "  No %.0f dB crossings\n", edgeLevelDB)
		return
	}
	fmt.Fprintf(w, "  %.0f dB crossings:", edgeLevelDB)
	for _, e := range edges {
		fmt.Fprintf(w, " %.1f Hz", e)
	}
	fmt.Fprintln(w)
}

func db(h complex128) float64 {
	return 20 * math.Log10(math.Max(cmplx.Abs(h), 1e-12))
}
