package models

import (
	"github.com/shopspring/decimal"
)

// ConcentrationAtMax is the calibration point of the score: the
// normalized concentration (per mille) that maps to a score of 100.
var ConcentrationAtMax = decimal.NewFromFloat(0.745)

// Concentration returns the normalized alcohol concentration in per
// mille for a given body mass of alcohol: grams / (r * weightKg).
func Concentration(grams decimal.Decimal, p Profile) decimal.Decimal {
	body := p.DistributionFactor().Mul(p.WeightKg)
	if body.Sign() <= 0 {
		return decimal.Zero
	}
	return grams.Div(body)
}

// Score maps a decayed alcohol mass to a percentage in [0, 100].
// Linear in concentration, saturating at exactly 100.
func Score(grams decimal.Decimal, p Profile) decimal.Decimal {
	s := Concentration(grams, p).Div(ConcentrationAtMax).Mul(oneHundred)
	if s.IsNegative() {
		return decimal.Zero
	}
	if s.GreaterThan(oneHundred) {
		return oneHundred
	}
	return s
}

// MassForScore inverts Score: the alcohol mass at which the profile
// would sit exactly at the given score percentage.
func MassForScore(score decimal.Decimal, p Profile) decimal.Decimal {
	return score.Div(oneHundred).
		Mul(ConcentrationAtMax).
		Mul(p.DistributionFactor()).
		Mul(p.WeightKg)
}

// Stage is a discrete, ordered wellness label over the score range
type Stage struct {
	Label string `json:"label"`
	Rank  int    `json:"rank"`
}

var (
	StageSober       = Stage{Label: "sober", Rank: 0}
	StageLightBuzz   = Stage{Label: "light buzz", Rank: 1}
	StageParty       = Stage{Label: "party", Rank: 2}
	StageIntoxicated = Stage{Label: "intoxicated", Rank: 3}
	StageHeavy       = Stage{Label: "heavily intoxicated", Rank: 4}
	StageDanger      = Stage{Label: "danger", Rank: 5}
)

// Stage boundaries partition [0, 100]; an exact boundary classifies to
// the higher (more conservative) stage.
var (
	stageLightBuzzAt   = decimal.NewFromInt(15)
	stagePartyAt       = decimal.NewFromInt(40)
	stageIntoxicatedAt = decimal.NewFromInt(65)
	stageHeavyAt       = decimal.NewFromInt(80)
	stageDangerAt      = decimal.NewFromInt(90)
)

// StageForScore classifies a score percentage into its stage
func StageForScore(score decimal.Decimal) Stage {
	switch {
	case score.GreaterThanOrEqual(stageDangerAt):
		return StageDanger
	case score.GreaterThanOrEqual(stageHeavyAt):
		return StageHeavy
	case score.GreaterThanOrEqual(stageIntoxicatedAt):
		return StageIntoxicated
	case score.GreaterThanOrEqual(stagePartyAt):
		return StageParty
	case score.GreaterThanOrEqual(stageLightBuzzAt):
		return StageLightBuzz
	default:
		return StageSober
	}
}
