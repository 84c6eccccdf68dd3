// Package audiofilter applies cascaded second-order-section (SOS) IIR filters to
// WAV audio in pure Go.
//
// Filters come from two places: text filter-coefficient files (.fcf) exported by
// filter design tools, or Butterworth cascades synthesised on demand from an order
// and one or two cutoff frequencies. Either way the result is a [Filter] that can be
// applied to a [Signal], inspected through its frequency response, or written back
// out as an .fcf file.
//
// # Quick Start
//
// Load a filter file and apply it to the mean of two recordings:
//
//	ff, err := audiofilter.ReadFCF("lowpass.fcf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	f, err := audiofilter.NewFilter(ff.Sections, ff.Scales)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sig, err := audiofilter.CombineFiles("voice.wav", "drums.wav")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	filtered := f.Apply(sig.Samples)
//
// Design a filter instead of loading one:
//
//	f, err := audiofilter.Design(audiofilter.DesignParams{
//	    Type:  audiofilter.Bandpass,
//	    Order: 4,
//	    Low:   300,
//	    High:  3400,
//	}, sig.SampleRate)
//
// # Filter File Format
//
// The .fcf format is line oriented. Blank lines and lines starting with '%' are
// comments. A line containing "SOS Matrix:" starts the section block, where every
// line with exactly six numbers (b0 b1 b2 a0 a1 a2) is one biquad. A line containing
// "Scale Values:" starts the scale block, one number per line. Lines that don't fit
// are skipped and reported in [FilterFile.Skipped]. There must be exactly one scale
// per section; [NewFilter] rejects files that don't pair up.
//
// # Spectra
//
// [AnalyzeSpectrum] returns the one-sided magnitude spectrum of a signal in dB and
// [Filter.Response] the magnitude response of a cascade. Both return a [Spectrum]
// that can be exported with [WriteSpectraCSV] for plotting.
//
// # Errors
//
// All failures wrap one of the package sentinel errors ([ErrFileNotFound],
// [ErrSampleRateMismatch], [ErrInvalidCutoffRange], [ErrMalformedFilterFile],
// [ErrSilentSignal], ...) so callers can branch with errors.Is.
package audiofilter
