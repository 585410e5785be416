package audio

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Encode writes the stream to path as interleaved 16-bit PCM WAV.
func Encode(path string, s *Stream) error {
	if s.NumChannels() == 0 || s.Len() == 0 {
		return fmt.Errorf("refusing to encode an empty stream")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	interleaved := s.Interleave()
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: s.NumChannels(),
			SampleRate:  s.SampleRate,
		},
		Data:           make([]int, len(interleaved)),
		SourceBitDepth: 16,
	}
	for i, v := range interleaved {
		buf.Data[i] = int(v)
	}

	e := wav.NewEncoder(f, s.SampleRate, 16, s.NumChannels(), 1)
	if err := e.Write(buf); err != nil {
		return fmt.Errorf("failed to write samples to %s: %v", path, err)
	}
	if err := e.Close(); err != nil {
		return fmt.Errorf("failed to finalize %s: %v", path, err)
	}
	return nil
}
