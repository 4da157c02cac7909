//go:build !race

package hpq

// RaceEnabled is false when the race detector is not active.
const RaceEnabled = false
