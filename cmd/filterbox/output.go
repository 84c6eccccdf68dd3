package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/tphakala/go-audio-filter/internal/app"
	"github.com/tphakala/go-audio-filter/internal/cli"
)

// printResult prints the signal, filter response and octave band summary of a run.
func printResult(w io.Writer, r *app.Result) {
	fmt.Fprintln(w, cli.TitleStyle.Render(r.Filter.Name))
	cli.PrintKV(w, "Inputs", strings.Join(r.Inputs, " + "))
	cli.PrintKV(w, "Signal", fmt.Sprintf("%d Hz, %s", r.Original.SampleRate, r.Original.Duration().Round(time.Millisecond)))
	cli.PrintKV(w, "Filter", fmt.Sprintf("%d sections, order %d", r.Filter.NumSections(), r.Filter.Order()))
	cli.PrintKV(w, "Peak", fmt.Sprintf("%.0f Hz -> %.0f Hz", r.OriginalSpectrum.PeakFrequency(), r.FilteredSpectrum.PeakFrequency()))
	cli.PrintKV(w, "-3 dB edges", cli.FormatHz(r.ResponseEdges()))
	cli.PrintKV(w, "Elapsed", r.Elapsed.Round(time.Millisecond))
	fmt.Fprintln(w)

	edges, original, filtered := r.BandLevels()
	fmt.Fprintln(w, cli.SectionStyle.Render("Octave band levels (dB)"))
	fmt.Fprintf(w, "  %-13s %8s %8s\n", "Band Hz", "orig", "filt")
	for i := range original {
		band := fmt.Sprintf("%.0f-%.0f", edges[i], edges[i+1])
		fmt.Fprintf(w, "  %-13s %8.1f %8.1f %s\n", band, original[i], filtered[i], cli.LevelBar(filtered[i], cli.LevelFloor))
	}
}

// printExport lists the files written by an export.
func printExport(w io.Writer, paths app.ExportPaths) {
	cli.PrintKV(w, "Audio", paths.WAV)
	cli.PrintKV(w, "Spectra", paths.Spectra)
	if paths.Response != "" {
		cli.PrintKV(w, "Response", paths.Response)
	}
}

// createOutput opens path for writing, or stdout for "-" and "".
func createOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
