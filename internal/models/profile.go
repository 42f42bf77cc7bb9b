package models

import (
	"github.com/shopspring/decimal"
)

// Sex is the biological sex used for metabolic estimation
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// Valid reports whether s is a known sex value
func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexOther:
		return true
	}
	return false
}

// Profile holds the user attributes that drive the metabolic model
type Profile struct {
	WeightKg decimal.Decimal `json:"weight_kg"`
	Age      int             `json:"age"`
	Sex      Sex             `json:"sex"`
}

// DefaultProfile returns the profile assumed before the user edits anything
func DefaultProfile() Profile {
	return Profile{
		WeightKg: decimal.NewFromInt(75),
		Age:      35,
		Sex:      SexMale,
	}
}

// Profile validation bounds
var (
	MinWeightKg = decimal.NewFromInt(20)
	MaxWeightKg = decimal.NewFromInt(400)
	MaxAge      = 120
)

// ValidWeightKg reports whether w is an acceptable body weight
func ValidWeightKg(w decimal.Decimal) bool {
	return w.GreaterThanOrEqual(MinWeightKg) && w.LessThanOrEqual(MaxWeightKg)
}

// ValidAge reports whether a is an acceptable age
func ValidAge(a int) bool {
	return a >= 0 && a <= MaxAge
}

var (
	minBurnRate = decimal.NewFromInt(3)
	maxBurnRate = decimal.NewFromInt(12)

	burnRateMale   = decimal.NewFromFloat(7.2)
	burnRateFemale = decimal.NewFromFloat(6.8)
	burnRateOther  = decimal.NewFromFloat(7.0)

	ageAdjustment = decimal.NewFromFloat(0.2)
)

// BurnRate returns the metabolic elimination rate in grams per hour.
// Base rate by sex, one age-band adjustment (under 30 faster, 60 and
// over slower), clamped to [3, 12].
func (p Profile) BurnRate() decimal.Decimal {
	var rate decimal.Decimal
	switch p.Sex {
	case SexMale:
		rate = burnRateMale
	case SexFemale:
		rate = burnRateFemale
	default:
		rate = burnRateOther
	}

	if p.Age < 30 {
		rate = rate.Add(ageAdjustment)
	} else if p.Age >= 60 {
		rate = rate.Sub(ageAdjustment)
	}

	if rate.LessThan(minBurnRate) {
		return minBurnRate
	}
	if rate.GreaterThan(maxBurnRate) {
		return maxBurnRate
	}
	return rate
}

var (
	distributionMale   = decimal.NewFromFloat(0.68)
	distributionFemale = decimal.NewFromFloat(0.55)
	distributionOther  = decimal.NewFromFloat(0.62)
)

// DistributionFactor returns the Widmark body-water distribution factor
// for the profile's sex. Only used when converting raw mass to a
// normalized concentration, never when tracking mass itself.
func (p Profile) DistributionFactor() decimal.Decimal {
	switch p.Sex {
	case SexMale:
		return distributionMale
	case SexFemale:
		return distributionFemale
	default:
		return distributionOther
	}
}
