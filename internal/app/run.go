package app

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/stagefinder/internal/config"
	"github.com/vk/stagefinder/internal/ctxlog"
	"github.com/vk/stagefinder/internal/finder"
	"github.com/vk/stagefinder/internal/report"
	"github.com/vk/stagefinder/internal/server"
)

const shutdownTimeout = 5 * time.Second

// Run searches every mission and writes the reports, or serves queries
// until ctx is canceled when a listen address is configured.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.ServeAddr != "" {
		return a.serve(ctx)
	}
	for i, m := range a.missions {
		if len(a.missions) > 1 && !a.config.JSON {
			if i > 0 {
				fmt.Fprintln(a.outW)
			}
			fmt.Fprintf(a.outW, "=== Mission %s ===\n\n", m.Name)
		}
		if err := a.runMission(ctx, m); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) runMission(ctx context.Context, m *config.Mission) error {
	ctx, logger := ctxlog.With(ctx, "mission", m.Name)

	profile, err := m.Profile(ctx)
	if err != nil {
		return err
	}
	f, err := finder.New(a.catalog, profile, m.Preferences.Options(a.config.WorkerCount))
	if err != nil {
		return fmt.Errorf("mission %q: %w", m.Name, err)
	}
	warnings := f.Lint()
	for _, w := range warnings {
		logger.Info("Mission lint warning.", "warning", w)
	}

	logger.Info("🚀 Starting search...", "phases", len(profile.DeltaV), "payload", profile.Payload)
	designs, err := f.Find(ctx, !m.Preferences.ShowAll, m.Preferences.Cheapest)
	if err != nil {
		return fmt.Errorf("mission %q: %w", m.Name, err)
	}
	logger.Info("🏁 Search finished.", "designs", len(designs))

	if a.config.JSON {
		return report.WriteJSON(a.outW, designs, warnings)
	}
	req := report.Request{Profile: f.Profile(), Preferences: m.Preferences, Warnings: warnings}
	return report.WriteText(a.outW, req, designs, a.config.Quiet)
}

// serve runs the query server until ctx is done, then shuts it down.
func (a *App) serve(ctx context.Context) error {
	srv := server.New(ctx, a.catalog, server.Options{
		Workers:     a.config.WorkerCount,
		MaxSearches: int64(a.config.MaxSearches),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(a.config.ServeAddr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down query server: %w", err)
	}
	return <-errCh
}
