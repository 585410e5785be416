package audio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"

	"mangle/internal/util"
)

const framesPerBuffer = 1024

// player feeds a finished Stream to a PortAudio output callback.
type player struct {
	src    *Stream
	volume float32
	pos    int
	mu     sync.Mutex
	done   chan struct{}
}

// Play renders the stream through the default output device and blocks
// until the whole stream has been played. Volume is clamped to [0,1].
func Play(s *Stream, volume float64) error {
	// Initialize PortAudio
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize PortAudio: %v", err)
	}
	defer portaudio.Terminate()

	p := &player{
		src:    s,
		volume: float32(util.Clamp(volume, 0, 1)),
		done:   make(chan struct{}),
	}

	// Create audio stream
	stream, err := portaudio.OpenDefaultStream(0, s.NumChannels(), float64(s.SampleRate), framesPerBuffer, p.callback)
	if err != nil {
		return fmt.Errorf("failed to open audio stream: %v", err)
	}
	defer stream.Close()

	// Start audio stream
	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start audio stream: %v", err)
	}

	<-p.done

	if err := stream.Stop(); err != nil {
		return fmt.Errorf("failed to stop audio stream: %v", err)
	}
	return nil
}

// callback is called by PortAudio to fill the output buffer.
func (p *player) callback(out []float32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	numChannels := p.src.NumChannels()
	length := p.src.Len()
	finished := false

	for i := 0; i < len(out); i += numChannels {
		if p.pos >= length {
			// Past the end of the stream, emit silence
			for ch := 0; ch < numChannels; ch++ {
				out[i+ch] = 0
			}
			finished = true
			continue
		}
		for ch := 0; ch < numChannels; ch++ {
			out[i+ch] = float32(p.src.Channels[ch][p.pos]) / 32768 * p.volume
		}
		p.pos++
	}

	if finished {
		select {
		case <-p.done:
		default:
			close(p.done)
		}
	}
}
