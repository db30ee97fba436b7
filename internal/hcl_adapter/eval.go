package hcl_adapter

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/vk/stagefinder/internal/physics"
	"github.com/vk/stagefinder/internal/route"
)

// evalContext returns the variables and functions available to every
// expression. Body names are lower case: gravity.kerbin, sea_level.eve.
func evalContext() *hcl.EvalContext {
	gravity := make(map[string]cty.Value, len(route.Bodies))
	seaLevel := make(map[string]cty.Value, len(route.Bodies))
	for _, b := range route.Bodies {
		key := strings.ToLower(b.Name)
		gravity[key] = cty.NumberFloatVal(b.Gravity * physics.G0)
		seaLevel[key] = cty.NumberFloatVal(b.Pressure)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"g0":        cty.NumberFloatVal(physics.G0),
			"gravity":   cty.ObjectVal(gravity),
			"sea_level": cty.ObjectVal(seaLevel),
		},
		Functions: map[string]function.Function{
			"min":   stdlib.MinFunc,
			"max":   stdlib.MaxFunc,
			"abs":   stdlib.AbsoluteFunc,
			"ceil":  stdlib.CeilFunc,
			"floor": stdlib.FloorFunc,
		},
	}
}
