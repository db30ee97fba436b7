// Package physics implements the rocket equation for single-stage vehicles:
// how much propellant a multi-phase delta-v budget needs, and the forward
// simulation of masses and accelerations for a given load of propellant.
//
// Vehicles either burn one engine type, or carry solid boosters that burn
// first (optionally next to a throttled liquid engine) and are dropped when
// spent. All masses are in kg, delta-v in m/s, pressure in atm.
package physics
