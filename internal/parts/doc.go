// Package parts defines the part catalog: engines, propellant tanks, solid
// fuel boosters and booster mounts, plus the rules for filling a propellant
// requirement with whole tanks.
package parts
