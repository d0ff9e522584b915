package config

import (
	_ "embed"
)

//go:embed defaults/lode.yaml
var defaultLodeYAML []byte

const (
	DefaultLives      = 5
	DefaultGameLevels = 150
	DefaultTickMS     = 66
	DefaultMaxLevels  = 300
)

// DefaultLodeConfig returns the built-in configuration.
func DefaultLodeConfig() LodeConfig {
	return LodeConfig{
		Game: GameConfig{
			Lives:      DefaultLives,
			GameLevels: DefaultGameLevels,
			TickMS:     DefaultTickMS,
		},
		Levels: LevelsConfig{
			MaxLevels: DefaultMaxLevels,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultLodeYAML
}
