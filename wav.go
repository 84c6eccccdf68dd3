package audiofilter

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
	"github.com/go-audio/wav"
)

// LoadWAV reads a PCM WAV file and returns its first channel scaled to [-1, 1].
func LoadWAV(path string) (*Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}
	switch decoder.WavAudioFormat {
	case wavFormatPCM:
	case wavFormatExtensible:
		sub, err := extensibleSubFormat(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read format of %s: %w", path, err)
		}
		if sub != wavFormatPCM {
			return nil, fmt.Errorf("%w: %s has extensible subformat %d", ErrUnsupportedFormat, path, sub)
		}
	default:
		return nil, fmt.Errorf("%w: %s has WAV format tag %d", ErrUnsupportedFormat, path, decoder.WavAudioFormat)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data from %s: %w", path, err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, fmt.Errorf("%w: %s reports %d channels", ErrUnsupportedFormat, path, channels)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(decoder.BitDepth)
	}

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	firstChannelInto(samples, buf.Data, channels, bitDepth)

	return &Signal{Samples: samples, SampleRate: buf.Format.SampleRate}, nil
}

// extensibleSubFormat returns the format code carried in the first two bytes of
// the subformat GUID of a WAVE_FORMAT_EXTENSIBLE fmt chunk. The read position
// of r is restored afterwards.
func extensibleSubFormat(r io.ReadSeeker) (code uint16, err error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	defer func() {
		if _, seekErr := r.Seek(pos, io.SeekStart); err == nil && seekErr != nil {
			err = seekErr
		}
	}()
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return 0, err
	}
	for {
		ch, err := p.NextChunk()
		if err != nil {
			return 0, err
		}
		if ch.ID != riff.FmtID {
			ch.Drain()
			continue
		}
		if ch.Size < wavFmtExtensibleSize {
			return 0, fmt.Errorf("extensible fmt chunk is %d bytes", ch.Size)
		}
		skip := make([]byte, wavFmtSubFormatOffset)
		if err := ch.ReadLE(skip); err != nil {
			return 0, err
		}
		if err := ch.ReadLE(&code); err != nil {
			return 0, err
		}
		return code, nil
	}
}

// firstChannelInto copies channel 0 of interleaved PCM into dst as floats in [-1, 1].
func firstChannelInto(dst []float64, data []int, channels, bitDepth int) {
	if bitDepth == bitsPerSample8 {
		// 8-bit WAV is unsigned
		for i := range dst {
			dst[i] = float64(data[i*channels]-unsigned8Offset) / maxInt8
		}
		return
	}

	invMaxVal := 1.0 / fullScale(bitDepth)
	if channels == 1 {
		for i := range dst {
			dst[i] = float64(data[i]) * invMaxVal
		}
		return
	}
	for i := range dst {
		dst[i] = float64(data[i*channels]) * invMaxVal
	}
}

// fullScale returns the maximum sample value for the given bit depth.
func fullScale(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample8:
		return maxInt8
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// WriteWAV writes samples as a mono PCM WAV file. Samples outside [-1, 1] are
// clipped. bitDepth must be 16, 24 or 32; 0 selects DefaultBitDepth.
func WriteWAV(path string, samples []float64, sampleRate, bitDepth int) (err error) {
	if bitDepth == 0 {
		bitDepth = DefaultBitDepth
	}
	switch bitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
	default:
		return fmt.Errorf("%w: cannot write %d-bit WAV", ErrUnsupportedFormat, bitDepth)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	maxVal := fullScale(bitDepth)
	data := make([]int, len(samples))
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		data[i] = int(s * maxVal)
	}

	encoder := wav.NewEncoder(f, sampleRate, bitDepth, 1, wavFormatPCM)
	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return nil
}
