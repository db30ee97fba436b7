package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/stagefinder/internal/config"
	"github.com/vk/stagefinder/internal/ctxlog"
	"github.com/vk/stagefinder/internal/hcl_adapter"
	"github.com/vk/stagefinder/internal/parts"
)

// commandLineMission names the mission given by positional arguments.
const commandLineMission = "command line"

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	catalog  *parts.Catalog
	missions []*config.Mission
}

// NewApp is the constructor for the main application. Reports are written
// to outW, logs to logW. It loads the parts catalog and all missions up
// front, so configuration mistakes surface before any search runs.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:   outW,
		logger: logger,
		config: cfg,
	}
	if err := a.loadCatalog(ctx, loader); err != nil {
		return nil, err
	}
	if err := a.loadMissions(ctx, loader); err != nil {
		return nil, err
	}
	logger.Debug("Configuration loaded.", "missions", len(a.missions),
		"engines", len(a.catalog.Engines), "tanks", len(a.catalog.Tanks))
	return a, nil
}

func (a *App) loadCatalog(ctx context.Context, loader config.Loader) error {
	if len(a.config.CatalogPaths) == 0 {
		cat, err := hcl_adapter.DefaultCatalog(ctx)
		if err != nil {
			return fmt.Errorf("failed to load built-in catalog: %w", err)
		}
		a.catalog = cat
		return nil
	}
	model, err := loader.Load(ctx, a.config.CatalogPaths...)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if model.Catalog == nil {
		return fmt.Errorf("no parts declared in %v", a.config.CatalogPaths)
	}
	a.catalog = model.Catalog
	return nil
}

func (a *App) loadMissions(ctx context.Context, loader config.Loader) error {
	if len(a.config.MissionPaths) > 0 {
		model, err := loader.Load(ctx, a.config.MissionPaths...)
		if err != nil {
			return fmt.Errorf("failed to load missions: %w", err)
		}
		if len(model.Missions) == 0 {
			return fmt.Errorf("no missions declared in %v", a.config.MissionPaths)
		}
		for _, m := range model.Missions {
			m.Preferences = mergePreferences(m.Preferences, a.config.Preferences)
			a.missions = append(a.missions, m)
		}
	}
	if a.config.HasMission() {
		a.missions = append(a.missions, &config.Mission{
			Name:        commandLineMission,
			Payload:     a.config.Payload,
			Phases:      a.config.Phases,
			Route:       a.config.Route,
			Preferences: a.config.Preferences,
		})
	}
	return nil
}

// mergePreferences enables every option set on the command line on top of
// the ones a mission file asks for.
func mergePreferences(file, flags config.Preferences) config.Preferences {
	out := file
	if flags.PreferredSize != 0 {
		out.PreferredSize = flags.PreferredSize
	}
	out.Gimbal = max(out.Gimbal, flags.Gimbal)
	out.Boosters = out.Boosters || flags.Boosters
	out.Generators = out.Generators || flags.Generators
	out.ShortEngines = out.ShortEngines || flags.ShortEngines
	out.Monopropellant = out.Monopropellant || flags.Monopropellant
	out.DeltaVTieBreak = out.DeltaVTieBreak || flags.DeltaVTieBreak
	out.Cheapest = out.Cheapest || flags.Cheapest
	out.ShowAll = out.ShowAll || flags.ShowAll
	return out
}

// Missions returns the loaded missions in search order. This is primarily
// for testing.
func (a *App) Missions() []*config.Mission {
	return a.missions
}
