package engine

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	MinStrength = 1
	MaxStrength = 4

	// A game never has more than 60 plies to go.
	MaxSearchDepth = 60
)

// Config holds every engine knob. Zero values are replaced by defaults in
// Normalize, so a partial YAML file is fine.
type Config struct {
	Strength  int           `yaml:"strength"`
	TimeLimit time.Duration `yaml:"time_limit"`

	// Workers bounds the root fan-out. 1 disables parallel search.
	Workers int `yaml:"workers"`
	// Parallel search is only used while more than this much budget is left.
	MinParallelSlack time.Duration `yaml:"min_parallel_slack"`
	MaxDepth         int           `yaml:"max_depth"`
	TTSizeMB         int           `yaml:"tt_size_mb"`

	// Background evaluator: first depth whose score is published, and the
	// pause between iterations.
	StableDepth int           `yaml:"stable_depth"`
	EvalPause   time.Duration `yaml:"eval_pause"`
}

func DefaultConfig() Config {
	return Config{
		Strength:         4,
		TimeLimit:        500 * time.Millisecond,
		Workers:          runtime.NumCPU(),
		MinParallelSlack: 50 * time.Millisecond,
		MaxDepth:         MaxSearchDepth,
		TTSizeMB:         16,
		StableDepth:      5,
		EvalPause:        50 * time.Millisecond,
	}
}

// Normalize fills zero fields from DefaultConfig and clamps the rest into range.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.Strength == 0 {
		c.Strength = def.Strength
	}
	c.Strength = Clamp(c.Strength, MinStrength, MaxStrength)
	if c.TimeLimit <= 0 {
		c.TimeLimit = def.TimeLimit
	}
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	if c.MinParallelSlack < 0 {
		c.MinParallelSlack = 0
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = def.MaxDepth
	}
	c.MaxDepth = Clamp(c.MaxDepth, 1, MaxSearchDepth)
	if c.TTSizeMB <= 0 {
		c.TTSizeMB = def.TTSizeMB
	}
	if c.StableDepth <= 0 {
		c.StableDepth = def.StableDepth
	}
	if c.EvalPause < 0 {
		c.EvalPause = 0
	}
	return c
}

// ParseConfig decodes YAML on top of the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse engine config: %w", err)
	}
	return cfg.Normalize(), nil
}

// LoadConfig reads a YAML file, then applies OTHELLO_* environment overrides.
// An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load engine config: %w", err)
		}
		if cfg, err = ParseConfig(data); err != nil {
			return cfg, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg.Normalize(), nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("OTHELLO_STRENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("OTHELLO_STRENGTH: %w", err)
		}
		c.Strength = n
	}
	if v := os.Getenv("OTHELLO_TIME_LIMIT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("OTHELLO_TIME_LIMIT: %w", err)
		}
		c.TimeLimit = d
	}
	if v := os.Getenv("OTHELLO_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("OTHELLO_WORKERS: %w", err)
		}
		c.Workers = n
	}
	return nil
}
