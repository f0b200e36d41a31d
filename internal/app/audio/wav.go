package audio

import (
	"encoding/binary"

	"aihub/internal/app/errors"
)

// PCM is a decoded audio payload normalized for inference backends:
// mono float32 samples in [-1, 1] plus the original container metadata.
type PCM struct {
	Samples    []float32
	SampleRate int
	Channels   int
	BitDepth   int
}

// Duration returns the payload length in seconds.
func (p *PCM) Duration() float64 {
	if p.SampleRate == 0 {
		return 0
	}
	return float64(len(p.Samples)) / float64(p.SampleRate)
}

const (
	riffHeaderSize  = 12
	chunkHeaderSize = 8
	formatPCM       = 1
)

// DecodeWAV parses a RIFF/WAVE container holding uncompressed PCM
// (8 or 16 bit) and returns the normalized mono samples. Multi-channel
// payloads are downmixed by averaging. Every failure wraps
// ErrAudioDecodeFailed so callers can distinguish malformed input from
// engine errors.
func DecodeWAV(data []byte) (*PCM, error) {
	if len(data) < riffHeaderSize {
		return nil, decodeError("container too short for a RIFF header")
	}
	if string(data[0:4]) != "RIFF" {
		return nil, decodeError("missing RIFF magic")
	}
	if string(data[8:12]) != "WAVE" {
		return nil, decodeError("missing WAVE form type")
	}

	var (
		fmtSeen    bool
		channels   int
		sampleRate int
		bitDepth   int
		payload    []byte
	)

	offset := riffHeaderSize
	for offset+chunkHeaderSize <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + chunkHeaderSize

		if chunkSize < 0 || body+chunkSize > len(data) {
			return nil, decodeError("chunk %s overruns the container", chunkID)
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, decodeError("fmt chunk too short")
			}
			audioFormat := int(binary.LittleEndian.Uint16(data[body : body+2]))
			if audioFormat != formatPCM {
				return nil, decodeError("unsupported audio format %d, only PCM is supported", audioFormat)
			}
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitDepth = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			fmtSeen = true
		case "data":
			payload = data[body : body+chunkSize]
		}

		// Chunks are word-aligned.
		offset = body + chunkSize
		if chunkSize%2 == 1 {
			offset++
		}
	}

	if !fmtSeen {
		return nil, decodeError("missing fmt chunk")
	}
	if payload == nil {
		return nil, decodeError("missing data chunk")
	}
	if channels < 1 {
		return nil, decodeError("invalid channel count %d", channels)
	}
	if sampleRate <= 0 {
		return nil, decodeError("invalid sample rate %d", sampleRate)
	}

	samples, err := normalize(payload, channels, bitDepth)
	if err != nil {
		return nil, err
	}

	return &PCM{
		Samples:    samples,
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
	}, nil
}

// normalize converts the interleaved payload into mono float32.
func normalize(payload []byte, channels, bitDepth int) ([]float32, error) {
	switch bitDepth {
	case 8:
		frames := len(payload) / channels
		samples := make([]float32, frames)
		for i := 0; i < frames; i++ {
			var sum float32
			for c := 0; c < channels; c++ {
				sum += (float32(payload[i*channels+c]) - 128) / 128
			}
			samples[i] = sum / float32(channels)
		}
		return samples, nil
	case 16:
		bytesPerFrame := 2 * channels
		if len(payload)%bytesPerFrame != 0 {
			return nil, decodeError("data chunk is not frame-aligned")
		}
		frames := len(payload) / bytesPerFrame
		samples := make([]float32, frames)
		for i := 0; i < frames; i++ {
			var sum float32
			for c := 0; c < channels; c++ {
				raw := int16(binary.LittleEndian.Uint16(payload[i*bytesPerFrame+2*c:]))
				sum += float32(raw) / 32768
			}
			samples[i] = sum / float32(channels)
		}
		return samples, nil
	default:
		return nil, decodeError("unsupported bit depth %d", bitDepth)
	}
}

// EncodeWAV writes interleaved float32 samples as a 16-bit PCM WAV
// container. Used by fixtures and the CLI round-trip tooling.
func EncodeWAV(samples []float32, sampleRate, channels int) []byte {
	dataSize := len(samples) * 2
	buf := make([]byte, 0, riffHeaderSize+chunkHeaderSize*2+16+dataSize)

	buf = append(buf, "RIFF"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(4+chunkHeaderSize+16+chunkHeaderSize+dataSize))
	buf = append(buf, "WAVE"...)

	buf = append(buf, "fmt "...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, formatPCM)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(channels))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(sampleRate))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(sampleRate*channels*2))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(channels*2))
	buf = binary.LittleEndian.AppendUint16(buf, 16)

	buf = append(buf, "data"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(dataSize))
	for _, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		buf = binary.LittleEndian.AppendUint16(buf, uint16(int16(s*32767)))
	}
	return buf
}

func decodeError(format string, args ...interface{}) error {
	return errors.WithCause(errors.ErrAudioDecodeFailed, errors.Newf(format, args...))
}
