package app

import (
	"errors"
	"fmt"

	"github.com/vk/stagefinder/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Payload, Phases and Route describe a mission given on the command
	// line. It is searched in addition to the missions of MissionPaths.
	Payload float64
	Phases  []config.Phase
	Route   *config.Route

	// Preferences apply to the command line mission and are merged into
	// the preferences of every mission file.
	Preferences config.Preferences

	MissionPaths []string // hcl files or directories
	CatalogPaths []string // hcl files or directories, replacing the built-in catalog

	Quiet bool
	JSON  bool

	// ServeAddr starts the query server instead of searching once.
	ServeAddr   string
	MaxSearches int

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

// HasMission reports whether a mission was given on the command line.
func (c *Config) HasMission() bool {
	return len(c.Phases) > 0 || c.Route != nil
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ServeAddr != "" {
		if cfg.HasMission() || len(cfg.MissionPaths) > 0 {
			return nil, errors.New("the query server takes no mission")
		}
	} else if !cfg.HasMission() && len(cfg.MissionPaths) == 0 {
		return nil, errors.New("a mission is required: give flight phases, a route or a mission file")
	}
	if cfg.Payload < 0 {
		return nil, fmt.Errorf("payload must not be negative, got %g", cfg.Payload)
	}
	if cfg.Route != nil && (cfg.Route.From == "" || cfg.Route.To == "") {
		return nil, errors.New("a route needs both a start and a destination")
	}
	if g := cfg.Preferences.Gimbal; g < 0 || g > 2 {
		return nil, fmt.Errorf("gimbal preference must be between 0 and 2, got %d", g)
	}
	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("worker count must not be negative, got %d", cfg.WorkerCount)
	}
	if cfg.MaxSearches < 0 {
		return nil, fmt.Errorf("concurrent search limit must not be negative, got %d", cfg.MaxSearches)
	}
	return &cfg, nil
}
