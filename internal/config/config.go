package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dynvec/internal/vector"
)

const (
	DefaultWorkload = "append"
	DefaultOps      = 1000
	DefaultSeed     = 1
)

type Config struct {
	Workload        string  `yaml:"workload"`
	Ops             int     `yaml:"ops"`
	InitialCapacity int     `yaml:"initial_capacity"`
	GrowthFactor    float64 `yaml:"growth_factor"`
	Seed            int64   `yaml:"seed"`
	RecordTrace     bool    `yaml:"record_trace"`
}

func DefaultConfig() *Config {
	return &Config{
		Workload:        DefaultWorkload,
		Ops:             DefaultOps,
		InitialCapacity: vector.DefaultCapacity,
		GrowthFactor:    vector.DefaultGrowth,
		Seed:            DefaultSeed,
		RecordTrace:     true,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Workload == "" {
		return fmt.Errorf("workload must be set")
	}
	if c.Ops < 0 {
		return fmt.Errorf("ops must be non-negative, got %d", c.Ops)
	}
	if c.InitialCapacity < 0 {
		return fmt.Errorf("initial_capacity must be non-negative, got %d", c.InitialCapacity)
	}
	if err := vector.ValidateGrowth(c.GrowthFactor); err != nil {
		return fmt.Errorf("growth_factor %v: %w", c.GrowthFactor, err)
	}
	return nil
}
