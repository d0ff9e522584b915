package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "lode.yaml"

// Load reads the configuration and applies its difficulty preset.
// Search order: customPath -> ~/.lode/configs/lode.yaml -> ./configs/lode.yaml -> embedded default.
// Only an unreadable or invalid custom path is an error.
func Load(customPath string) (LodeConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return LodeConfig{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return LodeConfig{}, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(), filepath.Join("configs", fileName)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	cfg, err := parse(defaultLodeYAML)
	if err != nil {
		cfg = DefaultLodeConfig()
		ApplyPreset(&cfg, cfg.Difficulty.Preset)
	}
	return cfg, nil
}

// parse decodes YAML over the defaults, so missing keys keep default values.
// A file that names no preset keeps its values as written.
func parse(data []byte) (LodeConfig, error) {
	cfg := DefaultLodeConfig()
	cfg.Difficulty.Preset = ""
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LodeConfig{}, err
	}
	preset := DifficultyFixed
	if cfg.Difficulty.Preset != "" {
		var err error
		if preset, err = ParsePreset(string(cfg.Difficulty.Preset)); err != nil {
			return LodeConfig{}, err
		}
	}
	if cfg.Game.Lives < 0 || cfg.Game.GameLevels < 0 || cfg.Levels.MaxLevels < 0 {
		return LodeConfig{}, fmt.Errorf("config: negative values are not allowed")
	}
	ApplyPreset(&cfg, preset)
	return cfg, nil
}

// userConfigPath returns ~/.lode/configs/lode.yaml, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lode", "configs", fileName)
}
