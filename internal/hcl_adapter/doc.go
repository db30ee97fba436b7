// Package hcl_adapter provides the HCL implementation of config.Loader.
//
// Mission files and parts catalogs share one grammar: any file may contain
// `mission`, `engine`, `tank`, `booster` and `mount` blocks plus the
// top-level `atomic_tank_factor` attribute. Expressions are evaluated with
// the variables `g0`, `gravity` and `sea_level` and a handful of numeric
// functions in scope, so phases can be written as
//
//	phase {
//	  delta_v          = 580
//	  min_acceleration = 1.5 * gravity.mun
//	}
//
// The catalog shipped with the program is embedded and available through
// DefaultCatalog.
package hcl_adapter
