// Package config loads the YAML game configuration and applies
// difficulty presets.
package config

import "time"

// LodeConfig is the full game configuration.
type LodeConfig struct {
	Game       GameConfig       `yaml:"game"`
	Levels     LevelsConfig     `yaml:"levels"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GameConfig holds run rules and timing.
type GameConfig struct {
	Lives      int `yaml:"lives"`
	GameLevels int `yaml:"game_levels"`
	TickMS     int `yaml:"tick_ms"`
}

// LevelsConfig selects the level resource.
type LevelsConfig struct {
	Path      string `yaml:"path"`
	MaxLevels int    `yaml:"max_levels"`
}

// DifficultyConfig names the preset applied on load.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// TickInterval returns the stage heartbeat period.
func (c LodeConfig) TickInterval() time.Duration {
	if c.Game.TickMS <= 0 {
		return DefaultTickMS * time.Millisecond
	}
	return time.Duration(c.Game.TickMS) * time.Millisecond
}

// TickRate returns heartbeats per second, at least 1.
func (c LodeConfig) TickRate() int {
	rate := int(time.Second / c.TickInterval())
	if rate < 1 {
		return 1
	}
	return rate
}
