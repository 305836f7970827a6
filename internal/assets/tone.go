package assets

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
)

// SampleRate is the rate of synthesized sounds. Samples are 16-bit signed
// little-endian stereo, the format ebiten's audio players take as raw bytes.
const SampleRate = 44100

const (
	defaultAttack  = 0.005
	defaultRelease = 0.03
	defaultVolume  = 0.5
)

// ToneSpec describes a synthesized sound effect.
type ToneSpec struct {
	Wave     string  `yaml:"wave"`     // sine, square, saw or noise
	Freq     float64 `yaml:"freq"`     // start frequency in Hz
	FreqEnd  float64 `yaml:"freq_end"` // end frequency for a linear sweep, 0 keeps Freq
	Duration float64 `yaml:"duration"` // seconds
	Attack   float64 `yaml:"attack"`
	Release  float64 `yaml:"release"`
	Volume   float64 `yaml:"volume"` // 0..1
}

// Synthesize renders a tone to PCM bytes.
func Synthesize(t ToneSpec) ([]byte, error) {
	if t.Duration <= 0 {
		return nil, fmt.Errorf("assets: tone duration must be positive, got %v", t.Duration)
	}
	wave, err := waveFunc(t.Wave)
	if err != nil {
		return nil, err
	}

	attack := t.Attack
	if attack <= 0 {
		attack = defaultAttack
	}
	release := t.Release
	if release <= 0 {
		release = defaultRelease
	}
	volume := t.Volume
	if volume <= 0 {
		volume = defaultVolume
	}
	volume = math.Min(volume, 1)
	end := t.FreqEnd
	if end <= 0 {
		end = t.Freq
	}

	n := int(t.Duration * SampleRate)
	attackN := int(attack * SampleRate)
	releaseN := int(release * SampleRate)
	releaseStart := max(n-releaseN, attackN)

	// Noise is seeded so the same manifest always yields the same bytes.
	rng := rand.New(rand.NewSource(1))
	out := make([]byte, n*4)
	phase := 0.0
	for i := range n {
		progress := float64(i) / float64(n)
		freq := t.Freq + (end-t.Freq)*progress

		v := wave(phase, rng)
		phase += freq / SampleRate
		phase -= math.Floor(phase)

		env := 1.0
		switch {
		case i < attackN:
			env = float64(i) / float64(attackN)
		case i >= releaseStart && releaseN > 0:
			env = float64(n-i) / float64(releaseN)
		}

		s := int16(math.Round(v * env * volume * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(s))
	}
	return out, nil
}

type waveform func(phase float64, rng *rand.Rand) float64

func waveFunc(name string) (waveform, error) {
	switch name {
	case "", "sine":
		return func(p float64, _ *rand.Rand) float64 { return math.Sin(2 * math.Pi * p) }, nil
	case "square":
		return func(p float64, _ *rand.Rand) float64 {
			if p < 0.5 {
				return 1
			}
			return -1
		}, nil
	case "saw":
		return func(p float64, _ *rand.Rand) float64 { return 2 * (p - 0.5) }, nil
	case "noise":
		return func(_ float64, rng *rand.Rand) float64 { return rng.Float64()*2 - 1 }, nil
	default:
		return nil, fmt.Errorf("assets: unknown wave %q", name)
	}
}
