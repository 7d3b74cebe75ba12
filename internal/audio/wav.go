package audio

import (
	"encoding/binary"
	"fmt"
	"os"
)

const (
	riffHeaderSize = 44
	formatPCM      = 1
)

// ReadWAVFile decodes a 16-bit PCM WAV file into a Buffer.
func ReadWAVFile(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wav: %w", err)
	}
	return DecodeWAV(data)
}

// DecodeWAV parses RIFF/WAVE bytes holding 16-bit PCM audio.
func DecodeWAV(data []byte) (*Buffer, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("wav: not a RIFF/WAVE file")
	}

	var (
		sampleRate int
		channels   int
		bits       int
		format     int
		pcm        []byte
		haveFmt    bool
	)

	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		if body+chunkSize > len(data) {
			chunkSize = len(data) - body
		}
		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, fmt.Errorf("wav: fmt chunk too small (%d bytes)", chunkSize)
			}
			format = int(binary.LittleEndian.Uint16(data[body : body+2]))
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bits = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			haveFmt = true
		case "data":
			pcm = data[body : body+chunkSize]
		}
		// Chunks are word-aligned.
		offset = body + chunkSize
		if chunkSize%2 == 1 {
			offset++
		}
	}

	if !haveFmt {
		return nil, fmt.Errorf("wav: missing fmt chunk")
	}
	if format != formatPCM {
		return nil, fmt.Errorf("wav: unsupported format tag %d (want PCM)", format)
	}
	if bits != 16 {
		return nil, fmt.Errorf("wav: unsupported bit depth %d (want 16)", bits)
	}
	if channels <= 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("wav: invalid header (%d ch, %d Hz)", channels, sampleRate)
	}
	if pcm == nil {
		return nil, fmt.Errorf("wav: missing data chunk")
	}

	samples := make([]int16, len(pcm)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[2*i : 2*i+2]))
	}

	return &Buffer{SampleRate: sampleRate, Channels: channels, samples: samples}, nil
}

// EncodeWAV renders the buffer as RIFF/WAVE bytes (16-bit PCM).
func EncodeWAV(b *Buffer) ([]byte, error) {
	if b == nil || b.SampleRate <= 0 || b.Channels <= 0 {
		return nil, fmt.Errorf("wav: invalid buffer")
	}
	dataSize := len(b.samples) * 2
	out := make([]byte, riffHeaderSize+dataSize)

	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+dataSize))
	copy(out[8:12], "WAVE")

	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], formatPCM)
	binary.LittleEndian.PutUint16(out[22:24], uint16(b.Channels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(b.SampleRate))
	byteRate := b.SampleRate * b.Channels * 2
	binary.LittleEndian.PutUint32(out[28:32], uint32(byteRate))
	blockAlign := b.Channels * 2
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], 16)

	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(dataSize))
	for i, sample := range b.samples {
		binary.LittleEndian.PutUint16(out[riffHeaderSize+2*i:riffHeaderSize+2*i+2], uint16(sample))
	}
	return out, nil
}

// WriteWAVFile encodes the buffer and writes it to path.
func WriteWAVFile(b *Buffer, path string) error {
	data, err := EncodeWAV(b)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	return nil
}
