package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ethanolGramsPerMl converts pure-alcohol volume to mass
var ethanolGramsPerMl = decimal.NewFromFloat(0.8)

var (
	oneHundred     = decimal.NewFromInt(100)
	secondsPerHour = decimal.NewFromInt(3600)
)

// DrinkGrams returns the alcohol mass of a drink: ml * (abv/100) * 0.8
func DrinkGrams(volumeMl, abvPercent float64) decimal.Decimal {
	return decimal.NewFromFloat(volumeMl).
		Mul(decimal.NewFromFloat(abvPercent)).
		Div(oneHundred).
		Mul(ethanolGramsPerMl)
}

// DecayedMass settles an accumulated mass forward from asOf to now at
// the given elimination rate (grams per hour). The result never goes
// negative, zero elapsed time is a no-op, and settling in two steps
// equals settling in one, so callers can bake the result in at any
// intermediate instant without double-counting.
func DecayedMass(mass decimal.Decimal, asOf, now time.Time, rate decimal.Decimal) decimal.Decimal {
	elapsed := now.Sub(asOf)
	if elapsed <= 0 {
		return mass
	}
	hours := decimal.NewFromFloat(elapsed.Hours())
	remaining := mass.Sub(rate.Mul(hours))
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// minimum rate guard for the division below, mirrors the clamp floor
var minDivisorRate = decimal.NewFromFloat(0.0001)

// SecondsToTarget returns how long natural decay needs to bring current
// down to target at the given rate, rounded up to whole seconds. Zero
// when current is already at or below target.
func SecondsToTarget(current, target, rate decimal.Decimal) int64 {
	over := current.Sub(target)
	if over.Sign() <= 0 {
		return 0
	}
	if rate.LessThan(minDivisorRate) {
		rate = minDivisorRate
	}
	return over.Div(rate).Mul(secondsPerHour).Ceil().IntPart()
}
