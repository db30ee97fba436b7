package finder

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/vk/stagefinder/internal/ctxlog"
	"github.com/vk/stagefinder/internal/design"
	"github.com/vk/stagefinder/internal/parts"
)

// ErrInvalidMission is returned by New when the flight profile is malformed.
var ErrInvalidMission = errors.New("invalid mission")

// MaxPressure is the highest supported ambient pressure in atm (Eve's sea
// level).
const MaxPressure = 5.0

// Options configure a search.
type Options struct {
	design.Preferences
	// Boosters enables designs with solid fuel boosters.
	Boosters bool
	// Workers bounds the number of concurrently evaluated candidate
	// groups. Zero means GOMAXPROCS.
	Workers int
}

// Finder searches a catalog for single-stage designs meeting a profile.
type Finder struct {
	catalog *parts.Catalog
	profile design.Profile
	opts    Options
}

// New validates the profile and returns a Finder for it.
func New(catalog *parts.Catalog, profile design.Profile, opts Options) (*Finder, error) {
	if err := Validate(profile); err != nil {
		return nil, err
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Finder{catalog: catalog, profile: profile, opts: opts}, nil
}

// Validate checks a profile. All problems are reported, each wrapping
// ErrInvalidMission.
func Validate(p design.Profile) error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidMission, fmt.Sprintf(format, args...)))
	}
	if p.Payload < 0 {
		invalid("payload must not be negative, got %g", p.Payload)
	}
	if len(p.DeltaV) == 0 {
		invalid("at least one flight phase is required")
	}
	if len(p.MinAcceleration) != len(p.DeltaV) || len(p.Pressure) != len(p.DeltaV) {
		invalid("got %d delta-v, %d acceleration and %d pressure values",
			len(p.DeltaV), len(p.MinAcceleration), len(p.Pressure))
		return errors.Join(errs...)
	}
	for i := range p.DeltaV {
		if p.DeltaV[i] <= 0 {
			invalid("phase %d: delta-v must be positive, got %g", i+1, p.DeltaV[i])
		}
		if p.MinAcceleration[i] < 0 {
			invalid("phase %d: acceleration must not be negative, got %g", i+1, p.MinAcceleration[i])
		}
		if p.Pressure[i] < 0 || p.Pressure[i] > MaxPressure {
			invalid("phase %d: pressure must be between 0 and %g atm, got %g", i+1, MaxPressure, p.Pressure[i])
		}
	}
	return errors.Join(errs...)
}

// Profile returns the validated profile.
func (f *Finder) Profile() design.Profile {
	return f.profile
}

// Find evaluates every candidate configuration and marks the frontier. With
// bestOnly only frontier designs are returned. Results are sorted by mass, or
// by cost when orderByCost is set; ties keep enumeration order.
func (f *Finder) Find(ctx context.Context, bestOnly, orderByCost bool) ([]*design.Design, error) {
	logger := ctxlog.FromContext(ctx)

	type slot struct {
		designs []*design.Design
	}
	var slots []*slot

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.opts.Workers)
	for grp := range f.groups() {
		if gctx.Err() != nil {
			break
		}
		s := &slot{}
		slots = append(slots, s)
		g.Go(func() error {
			for _, shape := range grp.shapes {
				if err := gctx.Err(); err != nil {
					return err
				}
				d, ok := design.Build(gctx, f.catalog, f.profile, shape)
				if !ok {
					continue
				}
				s.designs = append(s.designs, d)
				if grp.firstOnly {
					break
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search aborted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search aborted: %w", err)
	}

	var all []*design.Design
	for _, s := range slots {
		all = append(all, s.designs...)
	}
	frontier := design.MarkFrontier(all, f.opts.Preferences)
	logger.Info("Search finished.", "groups", len(slots), "candidates", len(all), "frontier", len(frontier))

	out := all
	if bestOnly {
		out = frontier
	}
	out = slices.Clone(out)
	key := (*design.Design).Mass
	if orderByCost {
		key = (*design.Design).Cost
	}
	slices.SortStableFunc(out, func(a, b *design.Design) int {
		ka, kb := key(a), key(b)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		}
		return 0
	})
	return out, nil
}
