package hcl_adapter

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/stagefinder/internal/parts"
)

//go:embed catalog.hcl
var defaultCatalog []byte

// DefaultCatalog parses the embedded stock parts catalog.
func DefaultCatalog(ctx context.Context) (*parts.Catalog, error) {
	f, diags := hclparse.NewParser().ParseHCL(defaultCatalog, "catalog.hcl")
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse embedded catalog: %w", diags)
	}
	b := newModelBuilder()
	if err := b.add(ctx, f); err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	model, err := b.build()
	if err != nil {
		return nil, err
	}
	if model.Catalog == nil {
		return nil, fmt.Errorf("embedded catalog declares no parts")
	}
	return model.Catalog, nil
}
