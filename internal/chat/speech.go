package chat

import (
	"context"
	"encoding/binary"
	"log/slog"
)

// AudioSink is the local audio-output capability speech playback writes to.
type AudioSink interface {
	// Play renders mono float samples at the given sample rate.
	Play(sampleRate int, samples []float32) error
}

// Speaker provides best-effort speech playback for transcript messages.
// Every failure is swallowed and logged; speech never surfaces errors to the
// transcript.
type Speaker struct {
	tts  SpeechSynthesizer
	sink AudioSink
}

// NewSpeaker creates a speaker over a speech synthesizer and an audio sink.
func NewSpeaker(tts SpeechSynthesizer, sink AudioSink) *Speaker {
	return &Speaker{tts: tts, sink: sink}
}

// Speak synthesizes and plays the given text. Returns true when audio was
// played; false on any failure.
func (s *Speaker) Speak(ctx context.Context, text string, sampleRate int) bool {
	if s.tts == nil || s.sink == nil {
		return false
	}

	pcm, err := s.tts.Speech(ctx, text)
	if err != nil {
		slog.Debug("Speech synthesis failed", "error", err)
		return false
	}

	if err := s.sink.Play(sampleRate, DecodePCM16(pcm)); err != nil {
		slog.Debug("Audio playback failed", "error", err)
		return false
	}
	return true
}

// DecodePCM16 converts 16-bit little-endian mono PCM into [-1, 1] float
// samples.
func DecodePCM16(data []byte) []float32 {
	samples := make([]float32, len(data)/2)
	for i := range samples {
		samples[i] = float32(int16(binary.LittleEndian.Uint16(data[2*i:]))) / 32768.0
	}
	return samples
}

// WAVFromPCM16 wraps raw 16-bit little-endian mono PCM in a RIFF/WAVE header
// so browsers can play it directly.
func WAVFromPCM16(pcm []byte, sampleRate int) []byte {
	const (
		numChannels   = 1
		bitsPerSample = 16
	)
	byteRate := sampleRate * numChannels * bitsPerSample / 8
	blockAlign := numChannels * bitsPerSample / 8

	buf := make([]byte, 0, 44+len(pcm))
	buf = append(buf, "RIFF"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(36+len(pcm)))
	buf = append(buf, "WAVE"...)
	buf = append(buf, "fmt "...)
	buf = binary.LittleEndian.AppendUint32(buf, 16) // PCM chunk size
	buf = binary.LittleEndian.AppendUint16(buf, 1)  // PCM format
	buf = binary.LittleEndian.AppendUint16(buf, numChannels)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(sampleRate))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(byteRate))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(blockAlign))
	buf = binary.LittleEndian.AppendUint16(buf, bitsPerSample)
	buf = append(buf, "data"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(pcm)))
	buf = append(buf, pcm...)
	return buf
}
