// Package summary derives session analytics from the history log
package summary

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/findosh/nomel/internal/models"
)

// Service computes read-only session summaries
type Service struct{}

// NewService creates a new summary service
func NewService() *Service {
	return &Service{}
}

// SessionSummary aggregates one session's history
type SessionSummary struct {
	DrinkCount int `json:"drink_count"`
	WaterCount int `json:"water_count"`

	TotalGrams   decimal.Decimal `json:"total_grams"`
	GramsPerHour decimal.Decimal `json:"grams_per_hour"`

	StartedAt   time.Time `json:"started_at"`
	LastEntryAt time.Time `json:"last_entry_at"`
	DurationSec int64     `json:"duration_sec"`

	// Highest score the session reached, replayed through the decay
	// model drink by drink.
	PeakScore decimal.Decimal `json:"peak_score"`
	PeakStage models.Stage    `json:"peak_stage"`
}

var minSummaryHours = decimal.NewFromFloat(1.0 / 60) // floor the rate window at one minute

// Compute aggregates the history (newest first, as the store keeps it)
// into a summary as of now. An empty history yields the zero summary.
func (s *Service) Compute(history []models.Entry, profile models.Profile, now time.Time) *SessionSummary {
	out := &SessionSummary{
		TotalGrams:   decimal.Zero,
		GramsPerHour: decimal.Zero,
		PeakScore:    decimal.Zero,
		PeakStage:    models.StageSober,
	}
	if len(history) == 0 {
		return out
	}

	out.StartedAt = history[len(history)-1].Timestamp
	out.LastEntryAt = history[0].Timestamp
	out.DurationSec = int64(now.Sub(out.StartedAt).Seconds())
	if out.DurationSec < 0 {
		out.DurationSec = 0
	}

	// Replay oldest to newest: settle decay between entries, add each
	// drink, and track the peak right after each addition (mass only
	// falls between drinks, so peaks happen on additions).
	rate := profile.BurnRate()
	mass := decimal.Zero
	asOf := out.StartedAt

	for i := len(history) - 1; i >= 0; i-- {
		e := history[i]
		switch e.Kind {
		case models.EntryWater:
			out.WaterCount++
			continue
		case models.EntryAlcohol:
			out.DrinkCount++
			out.TotalGrams = out.TotalGrams.Add(e.Grams)

			mass = models.DecayedMass(mass, asOf, e.Timestamp, rate)
			asOf = e.Timestamp
			mass = mass.Add(e.Grams)

			if score := models.Score(mass, profile); score.GreaterThan(out.PeakScore) {
				out.PeakScore = score
			}
		}
	}
	out.PeakStage = models.StageForScore(out.PeakScore)

	hours := decimal.NewFromFloat(now.Sub(out.StartedAt).Hours())
	if hours.LessThan(minSummaryHours) {
		hours = minSummaryHours
	}
	out.GramsPerHour = out.TotalGrams.Div(hours).Round(2)

	return out
}
