package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset is a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // use the file values as written
)

// ParsePreset validates a preset name. The empty string is normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", s)
	}
}

// LivesForPreset returns the starting lives of a preset, 0 for fixed.
func LivesForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 9
	case DifficultyNormal:
		return DefaultLives
	case DifficultyHard:
		return 3
	default:
		return 0
	}
}

// ApplyPreset adjusts cfg for a preset. Fixed keeps the configured values.
func ApplyPreset(cfg *LodeConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
	if lives := LivesForPreset(preset); lives > 0 {
		cfg.Game.Lives = lives
	}
}
