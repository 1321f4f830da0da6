package session

import "encoding/binary"

// G.711 mu-law transcoding for Twilio voice calls. Twilio streams 8kHz mu-law;
// Gemini wants 16kHz 16-bit PCM in and produces 24kHz PCM out.

var muLawToPcmTable [256]int16

func init() {
	for i := 0; i < 256; i++ {
		muLawToPcmTable[i] = decodeMuLawByte(byte(i))
	}
}

// decodeMuLawByte expands one mu-law byte to a linear PCM sample.
// Based on the Sun Microsystems G.711 reference implementation.
func decodeMuLawByte(uVal byte) int16 {
	// Mu-law stores the byte inverted
	uVal = ^uVal

	sign := uVal & 0x80
	exponent := (uVal >> 4) & 0x07
	mantissa := uVal & 0x0F

	// Geometric bias for mu-law is 33; 0x84 after mantissa alignment
	sample := int16((int32(mantissa)<<3 + 0x84) << exponent)
	sample -= 0x84

	if sign != 0 {
		return -sample
	}
	return sample
}

// PcmToMuLawByte compresses a linear PCM sample to one mu-law byte.
func PcmToMuLawByte(pcm int16) byte {
	const (
		bias = 0x84 // 132
		clip = 32635
	)

	sign := (pcm >> 8) & 0x80
	if pcm < 0 {
		pcm = -pcm
	}
	if pcm > clip {
		pcm = clip
	}
	pcm += bias

	exponent := 7
	for mask := 0x4000; (pcm&int16(mask)) == 0 && exponent > 0; mask >>= 1 {
		exponent--
	}
	mantissa := (pcm >> (exponent + 3)) & 0x0F

	ulawByte := byte(sign | (int16(exponent) << 4) | mantissa)

	// Compressed format stores the byte inverted
	return ^ulawByte
}

// MuLawToPCMUpsample converts mu-law 8kHz audio to PCM 16kHz (16-bit LE) for
// Gemini. Each mu-law byte becomes one sample, duplicated for the upsample.
func MuLawToPCMUpsample(muLawData []byte) []byte {
	pcmData := make([]byte, len(muLawData)*4)
	for i, b := range muLawData {
		pcmVal := muLawToPcmTable[b]
		sample := make([]byte, 2)
		binary.LittleEndian.PutUint16(sample, uint16(pcmVal))
		copy(pcmData[i*4:i*4+2], sample)
		copy(pcmData[i*4+2:i*4+4], sample)
	}
	return pcmData
}

// PCMDownsampleToMuLaw converts Gemini's 24kHz 16-bit LE PCM to 8kHz mu-law
// for Twilio by taking every third sample.
func PCMDownsampleToMuLaw(pcmData []byte) []byte {
	sampleCount := len(pcmData) / 2
	muLawData := make([]byte, 0, sampleCount/3+1)
	for i := 0; i < sampleCount; i += 3 {
		offset := i * 2
		if offset+1 >= len(pcmData) {
			break
		}
		sample := int16(binary.LittleEndian.Uint16(pcmData[offset : offset+2]))
		muLawData = append(muLawData, PcmToMuLawByte(sample))
	}
	return muLawData
}
