package audio

import (
	"math"
	"path/filepath"
	"testing"
)

func TestWAVRoundTrip(t *testing.T) {
	src := NewStream(2, 4410, 44100)
	for i := range src.Channels[0] {
		x := float64(i)
		src.Channels[0][i] = int16(12000 * math.Sin(2*math.Pi*x/100))
		src.Channels[1][i] = int16(9000 * math.Sin(2*math.Pi*x/37))
	}

	path := filepath.Join(t.TempDir(), "roundtrip.wav")
	if err := Encode(path, src); err != nil {
		t.Fatal(err)
	}

	back, err := Decode(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.SampleRate != src.SampleRate {
		t.Errorf("sample rate = %d, want %d", back.SampleRate, src.SampleRate)
	}
	if back.NumChannels() != 2 || back.Len() != src.Len() {
		t.Fatalf("shape = %d channels x %d samples, want 2 x %d", back.NumChannels(), back.Len(), src.Len())
	}
	for ch := range src.Channels {
		for i := range src.Channels[ch] {
			if back.Channels[ch][i] != src.Channels[ch][i] {
				t.Fatalf("channel %d sample %d = %d, want %d", ch, i, back.Channels[ch][i], src.Channels[ch][i])
			}
		}
	}
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	if _, err := Decode("input.ogg"); err == nil {
		t.Error("expected an error for an unsupported extension")
	}
}

func TestDecodeMissingFile(t *testing.T) {
	if _, err := Decode(filepath.Join(t.TempDir(), "nope.wav")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestEncodeEmptyStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")
	if err := Encode(path, NewStream(0, 0, 44100)); err == nil {
		t.Error("expected an error encoding an empty stream")
	}
}
