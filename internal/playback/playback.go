// Package playback plays mono float32 buffers on an audio device.
package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// framesPerBuffer is the PortAudio write size.
const framesPerBuffer = 1024

// ErrInvalidRate is returned for non-positive sample rates.
var ErrInvalidRate = errors.New("invalid sample rate")

// Player plays a mono buffer and blocks until it has finished or ctx is done.
type Player interface {
	Play(ctx context.Context, samples []float32, sampleRate int) error
}

// Discard is a Player that returns immediately without producing sound.
type Discard struct{}

// Play implements Player.
func (Discard) Play(ctx context.Context, _ []float32, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRate, sampleRate)
	}
	return ctx.Err()
}

// PortAudio plays through the default output device. Call Close to release the
// PortAudio library once done.
type PortAudio struct {
	mu     sync.Mutex
	closed bool
}

// NewPortAudio initializes PortAudio.
func NewPortAudio() (*PortAudio, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize audio output: %w", err)
	}
	return &PortAudio{}, nil
}

// Play implements Player. Only one buffer plays at a time.
func (p *PortAudio) Play(ctx context.Context, samples []float32, sampleRate int) (err error) {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRate, sampleRate)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errors.New("audio output is closed")
	}

	out := make([]float32, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), len(out), &out)
	if err != nil {
		return fmt.Errorf("failed to open output stream: %w", err)
	}
	defer func() {
		if closeErr := stream.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close output stream: %w", closeErr)
		}
	}()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start output stream: %w", err)
	}
	defer func() { _ = stream.Stop() }()

	for pos := 0; pos < len(samples); pos += len(out) {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := copy(out, samples[pos:])
		clear(out[n:])
		if err := stream.Write(); err != nil {
			return fmt.Errorf("failed to write audio: %w", err)
		}
	}
	return nil
}

// Close terminates PortAudio.
func (p *PortAudio) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return portaudio.Terminate()
}
