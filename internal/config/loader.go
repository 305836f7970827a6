package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ParseLevel decodes and validates a level. Missing world bounds get defaults.
func ParseLevel(data []byte) (LevelConfig, error) {
	var cfg LevelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: cannot parse level: %w", err)
	}
	if cfg.World.Ceiling == 0 {
		cfg.World.Ceiling = cfg.World.Height
	}
	if cfg.World.MaxDelta <= 0 {
		cfg.World.MaxDelta = 0.15
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLevelFile reads and parses a level file.
func LoadLevelFile(path string) (LevelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LevelConfig{}, fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	cfg, err := ParseLevel(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadLevel loads a level configuration.
// Search order: customPath -> ~/.nibolas/levels/<id>.yaml -> ./levels/<id>.yaml -> embedded default
//
// A broken custom file is an error. Broken files further down the search path
// are skipped.
func LoadLevel(levelID, customPath string) (LevelConfig, error) {
	if customPath != "" {
		return LoadLevelFile(customPath)
	}

	for _, p := range SearchPaths(levelID) {
		if cfg, err := LoadLevelFile(p); err == nil {
			return cfg, nil
		}
	}

	if data := GetDefaultYAML(levelID); data != nil {
		if cfg, err := ParseLevel(data); err == nil {
			return cfg, nil
		}
	}
	return DefaultLevelConfig(levelID), nil
}

// SearchPaths returns the on-disk locations checked for a level, in order.
func SearchPaths(levelID string) []string {
	filename := levelID + ".yaml"
	var paths []string
	if p := userConfigPath(filename); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("levels", filename))
}

// ResolvePath returns the file LoadLevel would read for the level, or "" when
// the embedded default would be used.
func ResolvePath(levelID, customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, p := range SearchPaths(levelID) {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// userConfigPath returns the path to a user level file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".nibolas", "levels", filename)
}
