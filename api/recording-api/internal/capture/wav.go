package internal_capture

import (
	"bytes"
	"encoding/binary"
)

const (
	wavBytesPerSample = 2 // LINEAR16 → 2 bytes per sample
	wavBitsPerSample  = 16
	wavPCMFormat      = 1 // WAV PCM format tag

	captureSampleRate = 44100
	captureChannels   = 1
)

// encodeWAV wraps raw PCM16 data in a WAV container at the capture rate.
func encodeWAV(pcmData []byte) []byte {
	var buf bytes.Buffer
	byteRate := captureSampleRate * captureChannels * wavBytesPerSample

	buf.Write([]byte("RIFF"))
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcmData)))
	buf.Write([]byte("WAVE"))

	buf.Write([]byte("fmt "))
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(wavPCMFormat))
	binary.Write(&buf, binary.LittleEndian, uint16(captureChannels))
	binary.Write(&buf, binary.LittleEndian, uint32(captureSampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(wavBytesPerSample*captureChannels))
	binary.Write(&buf, binary.LittleEndian, uint16(wavBitsPerSample))

	// data chunk
	buf.Write([]byte("data"))
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcmData)))
	buf.Write(pcmData)

	return buf.Bytes()
}
