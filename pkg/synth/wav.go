package synth

import (
	"encoding/binary"
	"io"
	"math"
)

const (
	bitsPerSample = 16
	numChannels   = 1
	wavHeaderSize = 44
)

// EncodeWAV writes mono 16-bit PCM with a canonical 44-byte RIFF header.
func EncodeWAV(w io.Writer, samples []float64, sampleRate int) error {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	blockAlign := numChannels * bitsPerSample / 8
	dataSize := uint32(len(samples) * blockAlign)

	header := []any{
		[4]byte{'R', 'I', 'F', 'F'},
		uint32(wavHeaderSize - 8 + dataSize),
		[4]byte{'W', 'A', 'V', 'E'},
		[4]byte{'f', 'm', 't', ' '},
		uint32(16),
		uint16(1), // PCM
		uint16(numChannels),
		uint32(sampleRate),
		uint32(sampleRate * blockAlign),
		uint16(blockAlign),
		uint16(bitsPerSample),
		[4]byte{'d', 'a', 't', 'a'},
		dataSize,
	}
	for _, field := range header {
		if err := binary.Write(w, binary.LittleEndian, field); err != nil {
			return err
		}
	}

	pcm := make([]int16, len(samples))
	for i, s := range samples {
		pcm[i] = int16(math.Round(math.Max(-1, math.Min(1, s)) * math.MaxInt16))
	}

	return binary.Write(w, binary.LittleEndian, pcm)
}

// WAVSize is the number of bytes EncodeWAV produces for n samples.
func WAVSize(n int) int {
	return wavHeaderSize + n*numChannels*bitsPerSample/8
}
