package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"

	"mangle/internal/util"
)

// Decode reads an audio file into a Stream. The format is chosen by file
// extension: .wav and .mp3 are supported, anything else is an error.
func Decode(path string) (*Stream, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return decodeWAV(path)
	case ".mp3":
		return decodeMP3(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q", filepath.Ext(path))
	}
}

// decodeWAV reads a whole PCM WAV file. Samples at bit depths other than 16
// are rescaled into the 16-bit range.
func decodeWAV(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %v", path, err)
	}
	if buf.Format == nil || buf.Format.NumChannels == 0 {
		return nil, fmt.Errorf("no PCM data in %s", path)
	}

	shift := int(d.BitDepth) - 16
	data := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		if shift > 0 {
			v >>= shift
		} else if shift < 0 {
			v <<= -shift
		}
		data[i] = int16(util.ClampInt(v, -32768, 32767))
	}

	return Deinterleave(data, buf.Format.NumChannels, buf.Format.SampleRate)
}

// decodeMP3 reads a whole MP3 file. go-mp3 always emits 16-bit stereo
// little-endian frames at the stream's native rate.
func decodeMP3(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %v", path, err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", path, err)
	}
	raw = raw[:len(raw)/4*4] // whole stereo frames only

	data := make([]int16, len(raw)/2)
	for i := range data {
		data[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}

	return Deinterleave(data, 2, dec.SampleRate())
}
