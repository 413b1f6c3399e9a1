package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes a stress scenario. Values left zero in the YAML file
// (or when no file is given) fall back to defaults; command-line flags
// override both.
type Config struct {
	// Duration the simulation runs for.
	Duration time.Duration `yaml:"duration"`

	// Entities in the initial population.
	Entities int `yaml:"entities"`

	// Components in the generated component pool.
	Components int `yaml:"components"`

	// MaxPerEntity caps how many pool components one entity receives.
	MaxPerEntity int `yaml:"max_per_entity"`

	// Systems generated, each with a random 1-3 component predicate.
	Systems int `yaml:"systems"`

	// ExplicitIDShare is the fraction of the population added under
	// explicit UUID ids rather than generated counter ids.
	ExplicitIDShare float64 `yaml:"explicit_id_share"`

	// Churn is the number of entities removed and re-added per tick.
	Churn int `yaml:"churn"`

	// GCPauseMetrics enables detailed GC pause metrics in the report.
	GCPauseMetrics bool `yaml:"gc_pause_metrics"`
}

func defaultConfig() Config {
	return Config{
		Duration:        10 * time.Second,
		Entities:        10000,
		Components:      32,
		MaxPerEntity:    5,
		Systems:         16,
		ExplicitIDShare: 0.1,
		Churn:           50,
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Components < 1 || cfg.MaxPerEntity < 1 || cfg.Systems < 0 {
		return cfg, fmt.Errorf("config: components, max_per_entity must be >= 1 and systems >= 0")
	}
	if cfg.ExplicitIDShare < 0 || cfg.ExplicitIDShare > 1 {
		return cfg, fmt.Errorf("config: explicit_id_share must be within [0, 1]")
	}
	return cfg, nil
}
