// Package design turns a candidate engine configuration into a sized and
// simulated Design, and decides which designs are worth showing.
//
// A design is worth showing (it is on the frontier) when, against every other
// design, it wins on at least one criterion: mass, cost, required technology
// or one of the optional Preferences. Frontier designs carry the Features on
// which they are best among the frontier.
package design
