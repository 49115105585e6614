// Package wavio loads mono float PCM from a WAV file for the roomwaves
// CLI's demo subcommands. Audio decoding is explicitly out of the
// analysis core's scope (spec §1): the core consumes a []float64 and an
// integer fs, and this package is the thin, optional convenience layer
// that produces them from a .wav file, standing in for the heavier
// container/codec decoder the core deliberately does not depend on.
package wavio

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Load reads filename and returns mono float64 samples in about [-1, 1]
// (see floatSample) plus the
// file's sample rate. Multi-channel files are downmixed by averaging
// channels, since the analysis core's input contract is single-channel.
func Load(filename string) ([]float64, int, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, 0, fmt.Errorf("wavio: failed to open %s: %w", filename, err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a WAV stream and returns mono float64 samples plus fs.
func Decode(r io.Reader) ([]float64, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("wavio: not a valid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("wavio: failed to decode PCM buffer: %w", err)
	}

	fs := int(dec.SampleRate)
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	nFrames := buf.NumFrames()
	samples := make([]float64, nFrames)
	for i := 0; i < nFrames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			idx := i*channels + c
			if idx >= len(buf.Data) {
				continue
			}
			sum += floatSample(buf, idx)
		}
		samples[i] = sum / float64(channels)
	}

	return samples, fs, nil
}

// floatSample converts one integer PCM sample to a float64 by dividing by the
// bit depth's largest positive code, matching emer-auditory's bit-depth-aware
// normalization; the most negative code maps slightly below -1.
func floatSample(buf *audio.IntBuffer, idx int) float64 {
	switch buf.SourceBitDepth {
	case 32:
		return float64(buf.Data[idx]) / float64(0x7FFFFFFF)
	case 24:
		return float64(buf.Data[idx]) / float64(0x7FFFFF)
	case 16:
		return float64(buf.Data[idx]) / float64(0x7FFF)
	case 8:
		return float64(buf.Data[idx]) / float64(0x7F)
	default:
		return float64(buf.Data[idx]) / float64(0x7FFF)
	}
}
