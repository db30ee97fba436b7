// Package finder runs the design search: it validates a flight profile,
// enumerates every engine, tank and booster combination of a catalog,
// evaluates them on a bounded worker pool and reduces the result to the
// frontier of designs worth showing.
//
// Enumeration order is fixed and results are collected per candidate group,
// so the output does not depend on the number of workers.
package finder
