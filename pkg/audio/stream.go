package audio

import (
	"fmt"
	"time"
)

// Stream holds decoded PCM audio as separate channels of 16-bit samples.
// All channels have the same length and share one sample rate.
type Stream struct {
	Channels   [][]int16
	SampleRate int
}

// NewStream creates a stream with the given channel count and length,
// all samples zeroed.
func NewStream(numChannels, length, sampleRate int) *Stream {
	channels := make([][]int16, numChannels)
	for i := range channels {
		channels[i] = make([]int16, length)
	}
	return &Stream{Channels: channels, SampleRate: sampleRate}
}

// NumChannels returns the number of channels in the stream.
func (s *Stream) NumChannels() int {
	return len(s.Channels)
}

// Len returns the number of samples in each channel.
func (s *Stream) Len() int {
	if len(s.Channels) == 0 {
		return 0
	}
	return len(s.Channels[0])
}

// Duration returns the playing time of the stream.
func (s *Stream) Duration() time.Duration {
	if s.SampleRate == 0 {
		return 0
	}
	return time.Duration(s.Len()) * time.Second / time.Duration(s.SampleRate)
}

// Clone returns a deep copy of the stream.
func (s *Stream) Clone() *Stream {
	channels := make([][]int16, len(s.Channels))
	for i, ch := range s.Channels {
		channels[i] = make([]int16, len(ch))
		copy(channels[i], ch)
	}
	return &Stream{Channels: channels, SampleRate: s.SampleRate}
}

// Stereoify promotes a mono stream to stereo by duplicating channel 0.
// Streams that already have two or more channels are left alone.
func (s *Stream) Stereoify() {
	if len(s.Channels) != 1 {
		return
	}
	dup := make([]int16, len(s.Channels[0]))
	copy(dup, s.Channels[0])
	s.Channels = append(s.Channels, dup)
}

// Limit truncates the stream to at most the given number of seconds.
func (s *Stream) Limit(seconds int) {
	if seconds <= 0 {
		return
	}
	max := seconds * s.SampleRate
	if max >= s.Len() {
		return
	}
	for i := range s.Channels {
		s.Channels[i] = s.Channels[i][:max]
	}
}

// Interleave flattens the channels into a single frame-ordered sample slice.
func (s *Stream) Interleave() []int16 {
	n := s.NumChannels()
	out := make([]int16, n*s.Len())
	for ch, data := range s.Channels {
		for i, v := range data {
			out[i*n+ch] = v
		}
	}
	return out
}

// Deinterleave splits frame-ordered samples into per-channel slices.
func Deinterleave(data []int16, numChannels, sampleRate int) (*Stream, error) {
	if numChannels <= 0 {
		return nil, fmt.Errorf("invalid channel count %d", numChannels)
	}
	if len(data)%numChannels != 0 {
		return nil, fmt.Errorf("sample count %d not divisible by %d channels", len(data), numChannels)
	}
	length := len(data) / numChannels
	s := NewStream(numChannels, length, sampleRate)
	for i, v := range data {
		s.Channels[i%numChannels][i/numChannels] = v
	}
	return s, nil
}
