//go:build race

package hpq

// RaceEnabled is true when the race detector is active. This module's own
// tests do not read it: the concurrent tests that trigger false positives
// from the race detector's cross-variable memory ordering limitations are
// excluded from race builds by a !race build constraint instead.
const RaceEnabled = true
