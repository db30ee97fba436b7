package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/vk/stagefinder/internal/app"
	"github.com/vk/stagefinder/internal/config"
	"github.com/vk/stagefinder/internal/parts"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// pathList collects the values of a repeatable flag.
type pathList []string

func (p *pathList) String() string {
	return strings.Join(*p, ",")
}

func (p *pathList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

// gimbalLevel counts repeated -g flags. An explicit level is accepted too,
// as in --gimbal=2.
type gimbalLevel int

func (g *gimbalLevel) String() string {
	return strconv.Itoa(int(*g))
}

func (g *gimbalLevel) Set(v string) error {
	if v == "true" {
		*g++
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid gimbal level %q", v)
	}
	*g = gimbalLevel(n)
	return nil
}

func (g *gimbalLevel) IsBoolFlag() bool { return true }

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("stagefinder", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
stagefinder - Finds the lightest or cheapest single-stage propulsion designs
for a payload and a sequence of flight phases.

Usage:
  stagefinder [options] PAYLOAD DV[:ACC[:PRESSURE]]...
  stagefinder [options] --from kerbin.orbit --to mun.surface PAYLOAD [DV[:ACC[:PRESSURE]]...]
  stagefinder [options] --mission PATH
  stagefinder --serve ADDR

Arguments:
  PAYLOAD
    Payload in kg.
  DV[:ACC[:PRESSURE]]
    Required delta-v (m/s), minimum acceleration (m/s², default 0) and
    ambient pressure (0 = vacuum, 1 = Kerbin sea level, default 0) of
    each flight phase.

Options:
`)
		flagSet.PrintDefaults()
	}

	var prefs config.Preferences
	var gimbal gimbalLevel
	var missionPaths, catalogPaths pathList
	var sizeName string
	for _, name := range []string{"c", "cheapest"} {
		flagSet.BoolVar(&prefs.Cheapest, name, false, "Sort by cost instead of mass.")
	}
	for _, name := range []string{"b", "boosters"} {
		flagSet.BoolVar(&prefs.Boosters, name, false, "Allow solid fuel boosters.")
	}
	for _, name := range []string{"R", "preferred-size"} {
		flagSet.StringVar(&sizeName, name, "", "Preferred radial size: 'tiny', 'small', 'large' or 'extralarge'.")
	}
	for _, name := range []string{"e", "electricity"} {
		flagSet.BoolVar(&prefs.Generators, name, false, "Prefer engines generating electricity.")
	}
	for _, name := range []string{"l", "length", "lander"} {
		flagSet.BoolVar(&prefs.ShortEngines, name, false, "Prefer short engines, as needed for landers.")
	}
	for _, name := range []string{"g", "gimbal"} {
		flagSet.Var(&gimbal, name, "Prefer engines with thrust vectoring. Repeat, or give 2, to prefer the best one.")
	}
	for _, name := range []string{"m", "monopropellant", "rcs"} {
		flagSet.BoolVar(&prefs.Monopropellant, name, false, "Prefer engines using monopropellant, shared with RCS thrusters.")
	}
	flagSet.BoolVar(&prefs.DeltaVTieBreak, "delta-v-tie-break", false, "Also keep designs offering more delta-v at equal mass and cost.")
	flagSet.BoolVar(&prefs.ShowAll, "show-all", false, "Show every feasible design, not just the best ones.")

	quietFlag := false
	for _, name := range []string{"q", "quiet"} {
		flagSet.BoolVar(&quietFlag, name, false, "Do not print the prologue.")
	}
	jsonFlag := flagSet.Bool("json", false, "Print designs as JSON.")
	flagSet.Var(&missionPaths, "mission", "Path to a mission file or directory. Repeatable.")
	flagSet.Var(&catalogPaths, "catalog", "Path to a parts catalog file or directory replacing the built-in one. Repeatable.")
	fromFlag := flagSet.String("from", "", "Route start, such as 'kerbin.orbit'.")
	toFlag := flagSet.String("to", "", "Route destination, such as 'mun.surface'.")
	planeChangeFlag := flagSet.Bool("plane-change", false, "Budget the plane change of every route transfer.")
	gravityMarginFlag := flagSet.Float64("gravity-margin", 0, "Minimum acceleration of surface legs relative to local gravity. 0 uses 1.2.")
	serveFlag := flagSet.String("serve", "", "Serve queries over socket.io on this address, such as ':8080'.")
	maxSearchesFlag := flagSet.Int("max-searches", 1, "Number of queries searched at once in serve mode.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 0, "Number of concurrent search workers. 0 uses all CPUs.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	slog.Debug("Arguments parsed successfully.")

	if len(args) == 0 {
		slog.Debug("No arguments provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	if sizeName != "" {
		size, err := parts.ParseRadialSize(sizeName)
		if err != nil || size == parts.RadiallyMounted {
			return nil, false, usageError("invalid preferred-size: must be 'tiny', 'small', 'large' or 'extralarge'")
		}
		prefs.PreferredSize = size
	}
	prefs.Gimbal = int(gimbal)

	cfg := app.Config{
		Preferences:  prefs,
		MissionPaths: missionPaths,
		CatalogPaths: catalogPaths,
		Quiet:        quietFlag,
		JSON:         *jsonFlag,
		ServeAddr:    *serveFlag,
		MaxSearches:  *maxSearchesFlag,
		WorkerCount:  *workersFlag,
	}

	positional := flagSet.Args()
	if len(positional) > 0 {
		payload, err := parseNumber(positional[0])
		if err != nil {
			return nil, false, usageError("invalid payload %q: not a number", positional[0])
		}
		cfg.Payload = payload
		for _, arg := range positional[1:] {
			ph, err := ParsePhase(arg)
			if err != nil {
				return nil, false, usageError("%s", err.Error())
			}
			cfg.Phases = append(cfg.Phases, ph)
		}
	}
	if *fromFlag != "" || *toFlag != "" {
		cfg.Route = &config.Route{
			From:          *fromFlag,
			To:            *toFlag,
			PlaneChange:   *planeChangeFlag,
			GravityMargin: *gravityMarginFlag,
		}
	}
	if len(positional) > 0 && !cfg.HasMission() {
		return nil, false, usageError("at least one flight phase or a route is required after the payload")
	}
	if len(positional) == 0 && cfg.HasMission() {
		return nil, false, usageError("a payload is required")
	}
	slog.Debug("Mission determined.", "phases", len(cfg.Phases), "route", cfg.Route != nil, "mission_files", len(cfg.MissionPaths))

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}
	cfg.LogFormat = logFormat

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	cfg.LogLevel = logLevel
	slog.Debug("CLI parameter validation complete.")

	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	slog.Debug("CLI parser finished successfully.", "config", appConfig)
	return appConfig, false, nil
}

// parseNumber accepts finite decimal numbers only.
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not finite", s)
	}
	return v, nil
}

// ParsePhase parses a DV[:ACC[:PRESSURE]] tuple. Omitted fields are zero.
func ParsePhase(s string) (config.Phase, error) {
	fields := strings.Split(s, ":")
	if len(fields) > 3 {
		return config.Phase{}, fmt.Errorf("invalid flight phase %q: too many ':'", s)
	}
	var values [3]float64
	for i, f := range fields {
		v, err := parseNumber(f)
		if err != nil {
			return config.Phase{}, fmt.Errorf("invalid flight phase %q: %q is not a number", s, f)
		}
		values[i] = v
	}
	ph := config.Phase{DeltaV: values[0], MinAcceleration: values[1], Pressure: values[2]}
	switch {
	case ph.DeltaV <= 0:
		return config.Phase{}, fmt.Errorf("invalid flight phase %q: delta-v must be positive", s)
	case ph.MinAcceleration < 0:
		return config.Phase{}, fmt.Errorf("invalid flight phase %q: acceleration must not be negative", s)
	case ph.Pressure < 0:
		return config.Phase{}, fmt.Errorf("invalid flight phase %q: pressure must not be negative", s)
	}
	return ph, nil
}
