package config

import (
	"embed"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/nibolas/internal/scroll"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// DefaultLevelIDs returns the ids of the embedded levels, sorted.
func DefaultLevelIDs() []string {
	entries, err := defaultsFS.ReadDir("defaults")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(ids)
	return ids
}

// GetDefaultYAML returns the embedded YAML for a level, or nil.
func GetDefaultYAML(levelID string) []byte {
	data, err := defaultsFS.ReadFile(path.Join("defaults", levelID+".yaml"))
	if err != nil {
		return nil
	}
	return data
}

// DefaultLevelConfig returns a minimal built-in level, used when no YAML is
// available for an id.
func DefaultLevelConfig(levelID string) LevelConfig {
	return LevelConfig{
		ID:    levelID,
		Title: "Nibolas",
		World: WorldConfig{
			Width:    320,
			Height:   120,
			Floor:    8,
			Ceiling:  120,
			MaxDelta: 0.15,
		},
		Player: PlayerConfig{
			X:            48,
			Y:            60,
			Width:        12,
			Height:       10,
			Gravity:      -420,
			JumpImpulse:  170,
			DiveImpulse:  -140,
			MaxFallSpeed: 260,
			FloorKills:   true,
			Sprite:       "nibolas",
		},
		Lanes: []LaneConfig{
			{
				Name:         "towers",
				Kind:         KindHazard,
				Form:         "box",
				Anchor:       "ground",
				Count:        4,
				StartX:       360,
				Gap:          80,
				Width:        20,
				Height:       40,
				Speed:        -100,
				Variation:    scroll.Variation{Height: scroll.Range{Min: 20, Max: 70}},
				TicksPerStep: 60,
				ScorePerStep: 1,
				Extreme:      scroll.Extreme{Threshold: 86, SpeedDelta: -50},
				Sprite:       "tower",
			},
		},
	}
}
