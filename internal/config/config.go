// Package config loads server settings from an optional YAML file with
// environment overrides. Everything has a working default so the server
// runs with no file at all.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"hubflow/internal/model"
)

// Duration decodes YAML strings like "30s" or "2m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Port int `yaml:"port"`

	Solver struct {
		TimeLimit Duration      `yaml:"timeLimit"`
		Weights   model.Weights `yaml:"weights"`
		Budget    float64       `yaml:"budget"`
		HubCost   float64       `yaml:"hubCost"`
		GreenZone float64       `yaml:"greenZoneCost"`
		PeakMult  float64       `yaml:"peakMultiplier"`
	} `yaml:"solver"`

	Grid struct {
		Rows int `yaml:"rows"`
		Cols int `yaml:"cols"`
	} `yaml:"grid"`

	RateLimit struct {
		PerSecond float64 `yaml:"perSecond"`
		Burst     int     `yaml:"burst"`
	} `yaml:"rateLimit"`
}

// Default returns the built-in configuration.
func Default() Config {
	var c Config
	c.Port = 8080
	c.Solver.TimeLimit = Duration(30 * time.Second)
	c.Solver.Weights = model.DefaultWeights()
	b := model.DefaultBudget()
	c.Solver.Budget = b.Total
	c.Solver.HubCost = b.HubCost
	c.Solver.GreenZone = b.GreenZoneCost
	c.Solver.PeakMult = 2.0
	c.Grid.Rows = 20
	c.Grid.Cols = 20
	c.RateLimit.PerSecond = 5
	c.RateLimit.Burst = 10
	return c
}

// Load reads path (if non-empty and present) over the defaults, then
// applies PORT from the environment.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return c, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(raw, &c); err != nil {
			return c, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 {
			return c, fmt.Errorf("invalid PORT %q", v)
		}
		c.Port = p
	}
	if err := c.validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.Solver.TimeLimit <= 0 {
		return fmt.Errorf("solver.timeLimit must be positive")
	}
	if c.Solver.HubCost <= 0 || c.Solver.GreenZone <= 0 {
		return fmt.Errorf("solver costs must be positive")
	}
	if c.Grid.Rows <= 0 || c.Grid.Cols <= 0 {
		return fmt.Errorf("grid dimensions must be positive")
	}
	if c.RateLimit.PerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	return nil
}

// Budget returns the configured default spending limits.
func (c Config) Budget() model.Budget {
	return model.Budget{Total: c.Solver.Budget, HubCost: c.Solver.HubCost, GreenZoneCost: c.Solver.GreenZone}
}
