package domain

import (
	"fmt"
	"strings"
)

// LbsToKg is the exact international avoirdupois pound in kilograms.
const LbsToKg = 0.45359237

// Unit is a weight unit accepted at the input boundary.
type Unit string

const (
	Kilograms Unit = "kg"
	Pounds    Unit = "lbs"
)

// ParseUnit accepts "kg" and "lbs" (and "lb" as an alias of "lbs").
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kg":
		return Kilograms, nil
	case "lbs", "lb":
		return Pounds, nil
	}
	return "", fmt.Errorf("unit must be %q or %q, got %q", Kilograms, Pounds, s)
}

// ToKilograms converts v expressed in u to the canonical unit.
func ToKilograms(v float64, u Unit) float64 {
	if u == Pounds {
		return v * LbsToKg
	}
	return v
}

// ConvertWeight converts a weight value between units.
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to Unit) float64 {
	if from == to {
		return v
	}
	if from == Kilograms && to == Pounds {
		return v / LbsToKg
	}
	if from == Pounds && to == Kilograms {
		return v * LbsToKg
	}
	return v
}
