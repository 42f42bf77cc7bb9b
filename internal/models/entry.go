// Package models defines the domain types and pure calculations for
// drink pacing: profiles, history entries, alcohol decay, the score and
// stage classifier, the cooldown policy, and the drink preset catalog.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryKind distinguishes alcoholic and non-alcoholic history entries
type EntryKind string

const (
	EntryAlcohol EntryKind = "alcohol"
	EntryWater   EntryKind = "water"
)

// WaterLabel is the display label for hydration entries
const WaterLabel = "Water / soft drink"

// Entry is one logged drink. Entries are immutable once created; the
// history holds them newest first and only a full session reset removes
// them.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Kind      EntryKind `json:"kind"`
	Label     string    `json:"label"`

	// Set for alcohol entries only
	VolumeMl   float64         `json:"volume_ml,omitempty"`
	AbvPercent float64         `json:"abv_percent,omitempty"`
	Grams      decimal.Decimal `json:"grams"`
}

// NewDrinkEntry creates an alcohol entry with its mass baked in, so
// later window sums never recompute from volume and strength.
func NewDrinkEntry(label string, volumeMl, abvPercent float64, grams decimal.Decimal, ts time.Time) Entry {
	return Entry{
		ID:         uuid.NewString(),
		Timestamp:  ts,
		Kind:       EntryAlcohol,
		Label:      label,
		VolumeMl:   volumeMl,
		AbvPercent: abvPercent,
		Grams:      grams,
	}
}

// NewWaterEntry creates a hydration entry
func NewWaterEntry(ts time.Time) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Timestamp: ts,
		Kind:      EntryWater,
		Label:     WaterLabel,
		Grams:     decimal.Zero,
	}
}
