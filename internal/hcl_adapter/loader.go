package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/stagefinder/internal/config"
	"github.com/vk/stagefinder/internal/ctxlog"
	"github.com/vk/stagefinder/internal/fsutil"
	"github.com/vk/stagefinder/internal/parts"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load orchestrates the entire HCL configuration loading process. Blocks of
// all files are merged in the order the files are found; mission names must
// be unique. A catalog is only returned, and validated, when the files
// declared parts.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := fsutil.FindFilesByExtension(".hcl", paths...)
	if err != nil {
		return nil, err
	}
	if len(hclFiles) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	b := newModelBuilder()
	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		if err := b.add(ctx, hclFile); err != nil {
			return nil, fmt.Errorf("in HCL file %s: %w", file, err)
		}
	}

	model, err := b.build()
	if err != nil {
		return nil, err
	}
	logger.Debug("HCL loading complete.", "missions", len(model.Missions), "has_catalog", model.Catalog != nil)
	return model, nil
}

// modelBuilder accumulates the blocks of several files.
type modelBuilder struct {
	model    *config.Model
	catalog  *parts.Catalog
	missions map[string]struct{}
}

func newModelBuilder() *modelBuilder {
	return &modelBuilder{
		model:    &config.Model{},
		catalog:  &parts.Catalog{},
		missions: make(map[string]struct{}),
	}
}

func (b *modelBuilder) add(ctx context.Context, f *hcl.File) error {
	var root fileRoot
	if diags := gohcl.DecodeBody(f.Body, evalContext(), &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode: %w", diags)
	}
	for _, m := range root.Missions {
		if _, dup := b.missions[m.Name]; dup {
			return fmt.Errorf("duplicate mission '%s'", m.Name)
		}
		mission, err := translateMission(ctx, m)
		if err != nil {
			return err
		}
		b.missions[m.Name] = struct{}{}
		b.model.Missions = append(b.model.Missions, mission)
	}
	if root.hasParts() {
		if err := translateParts(ctx, &root, b.catalog); err != nil {
			return err
		}
		b.model.Catalog = b.catalog
	}
	return nil
}

func (b *modelBuilder) build() (*config.Model, error) {
	if b.model.Catalog != nil {
		if err := b.model.Catalog.Validate(); err != nil {
			return nil, fmt.Errorf("invalid parts catalog: %w", err)
		}
	}
	return b.model, nil
}
