package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"painter/internal/locales"
)

const DefaultIndexDSN = "sqlite://:memory:"

type ModConfig struct {
	Mod      string         `yaml:"mod" env:"PAINTER_MOD_NAME"`
	Version  int            `yaml:"version"`
	Paths    PathsConfig    `yaml:"paths"`
	Trader   TraderConfig   `yaml:"trader"`
	Locales  LocalesConfig  `yaml:"locales"`
	Features FeaturesConfig `yaml:"features"`
	Index    IndexConfig    `yaml:"index"`
	Log      LogConfig      `yaml:"log"`
}

type PathsConfig struct {
	Mod      string `yaml:"mod" env:"PAINTER_MOD_PATH"`
	Database string `yaml:"database" env:"PAINTER_DATABASE_PATH"`
	Configs  string `yaml:"configs" env:"PAINTER_CONFIGS_PATH"`
	Catalog  string `yaml:"catalog" env:"PAINTER_CATALOG_PATH"`
}

type TraderConfig struct {
	Key         string            `yaml:"key"`
	FirstName   string            `yaml:"first_name"`
	Description string            `yaml:"description"`
	UpdateTime  UpdateTimeConfig  `yaml:"update_time"`
	QuestAssort QuestAssortConfig `yaml:"quest_assort"`
}

type UpdateTimeConfig struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type QuestAssortConfig struct {
	Started map[string]string `yaml:"started"`
	Success map[string]string `yaml:"success"`
	Fail    map[string]string `yaml:"fail"`
}

type LocalesConfig struct {
	Reference string   `yaml:"reference"`
	Languages []string `yaml:"languages"`
}

type FeaturesConfig struct {
	LootBoxes bool `yaml:"loot_boxes" env:"PAINTER_LOOT_BOXES"`
}

type IndexConfig struct {
	DSN string `yaml:"dsn" env:"PAINTER_INDEX_DSN"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"PAINTER_LOG_LEVEL"`
	JSON  bool   `yaml:"json" env:"PAINTER_LOG_JSON"`
}

// LoadModConfig reads painter.yaml, applies PAINTER_* environment overrides and
// validates the result.
func LoadModConfig(path string) (*ModConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading mod config: %w", err)
	}

	var cfg ModConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading mod config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("loading mod config: parse env: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateModConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading mod config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *ModConfig) {
	if cfg.Locales.Reference == "" {
		cfg.Locales.Reference = locales.Reference
	}
	if len(cfg.Locales.Languages) == 0 {
		cfg.Locales.Languages = append([]string{}, locales.ServerLanguages...)
	}
	if cfg.Index.DSN == "" {
		cfg.Index.DSN = DefaultIndexDSN
	}
	if cfg.Paths.Catalog == "" {
		cfg.Paths.Catalog = "items.yaml"
	}
}

func validateModConfig(cfg *ModConfig) error {
	if strings.TrimSpace(cfg.Mod) == "" {
		return fmt.Errorf("mod name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if strings.TrimSpace(cfg.Paths.Mod) == "" {
		return fmt.Errorf("paths.mod is required")
	}
	if strings.TrimSpace(cfg.Trader.Key) == "" {
		return fmt.Errorf("trader key is required")
	}
	if cfg.Trader.UpdateTime.Min <= 0 || cfg.Trader.UpdateTime.Max < cfg.Trader.UpdateTime.Min {
		return fmt.Errorf("invalid trader update time: min %d, max %d", cfg.Trader.UpdateTime.Min, cfg.Trader.UpdateTime.Max)
	}

	seen := make(map[string]struct{})
	for i, lang := range cfg.Locales.Languages {
		if strings.TrimSpace(lang) == "" {
			return fmt.Errorf("language %d is empty", i)
		}
		if _, exists := seen[lang]; exists {
			return fmt.Errorf("duplicate language: %s", lang)
		}
		seen[lang] = struct{}{}
		if !locales.Known(lang) {
			return fmt.Errorf("unknown language: %s", lang)
		}
	}
	if _, ok := seen[cfg.Locales.Reference]; !ok {
		return fmt.Errorf("reference language %s is not in languages", cfg.Locales.Reference)
	}

	return nil
}

// ModPath joins elem onto the mod root.
func (c *ModConfig) ModPath(elem ...string) string {
	return filepath.Join(append([]string{c.Paths.Mod}, elem...)...)
}
