package config

import (
	"fmt"
	"math"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// presetScaling holds how a preset changes lane speeds and the EXTREME threshold.
type presetScaling struct {
	speed     float64
	threshold float64 // 0 disables EXTREME
}

func scalingFor(preset DifficultyPreset) presetScaling {
	switch preset {
	case DifficultyEasy:
		return presetScaling{speed: 0.8, threshold: 1.5}
	case DifficultyHard:
		return presetScaling{speed: 1.25, threshold: 0.5}
	case DifficultyFixed:
		return presetScaling{speed: 1, threshold: 0}
	default:
		return presetScaling{speed: 1, threshold: 1}
	}
}

// ApplyPreset modifies the level config for a difficulty preset. Every lane
// is scaled the same way so lanes keep their relative speeds.
func ApplyPreset(cfg *LevelConfig, preset DifficultyPreset) {
	sc := scalingFor(preset)
	for i := range cfg.Lanes {
		l := &cfg.Lanes[i]
		l.Speed *= sc.speed
		l.Extreme.SpeedDelta *= sc.speed
		if l.Extreme.Threshold == 0 {
			continue
		}
		t := int(math.Round(float64(l.Extreme.Threshold) * sc.threshold))
		if sc.threshold > 0 && t < 1 {
			t = 1
		}
		l.Extreme.Threshold = t
	}
}
