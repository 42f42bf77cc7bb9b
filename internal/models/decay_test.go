package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDrinkGrams(t *testing.T) {
	tests := []struct {
		name     string
		volumeMl float64
		abv      float64
		expected string
	}{
		{"beer can", 350, 5, "14"},
		{"large beer", 500, 4, "16"},
		{"wine glass", 120, 12, "11.52"},
		{"whisky single", 30, 40, "9.6"},
		{"sake ochoko", 50, 15, "6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DrinkGrams(tt.volumeMl, tt.abv)
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("DrinkGrams(%g, %g) = %s, want %s", tt.volumeMl, tt.abv, got, tt.expected)
			}
		})
	}
}

func TestDecayedMass(t *testing.T) {
	base := time.Date(2025, 6, 21, 21, 0, 0, 0, time.UTC)
	rate := decimal.NewFromFloat(7.2)

	tests := []struct {
		name     string
		mass     string
		elapsed  time.Duration
		expected string
	}{
		{"zero elapsed is a no-op", "14", 0, "14"},
		{"one hour", "14", time.Hour, "6.8"},
		{"half hour", "14", 30 * time.Minute, "10.4"},
		{"clamps at zero", "14", 12 * time.Hour, "0"},
		{"zero mass stays zero", "0", time.Hour, "0"},
		{"clock going backwards is a no-op", "14", -time.Hour, "14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mass := decimal.RequireFromString(tt.mass)
			got := DecayedMass(mass, base, base.Add(tt.elapsed), rate)
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("DecayedMass(%s, +%v) = %s, want %s", tt.mass, tt.elapsed, got, tt.expected)
			}
		})
	}
}

func TestDecayedMassNeverNegative(t *testing.T) {
	base := time.Date(2025, 6, 21, 21, 0, 0, 0, time.UTC)
	mass := decimal.NewFromInt(5)

	for _, elapsed := range []time.Duration{time.Hour, 24 * time.Hour, 30 * 24 * time.Hour} {
		got := DecayedMass(mass, base, base.Add(elapsed), decimal.NewFromInt(12))
		if got.IsNegative() {
			t.Errorf("DecayedMass after %v = %s, want >= 0", elapsed, got)
		}
	}
}

// Settling at an intermediate instant and continuing must equal
// settling once over the whole interval.
func TestDecayedMassComposes(t *testing.T) {
	base := time.Date(2025, 6, 21, 21, 0, 0, 0, time.UTC)
	rate := decimal.NewFromFloat(7.2)
	mass := decimal.NewFromInt(14)

	tests := []struct {
		name  string
		step1 time.Duration
		step2 time.Duration
	}{
		{"15min then 45min", 15 * time.Minute, 45 * time.Minute},
		{"30min then 30min", 30 * time.Minute, 30 * time.Minute},
		{"90min then 30min", 90 * time.Minute, 30 * time.Minute},
		{"instant then 1h", 0, time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mid := base.Add(tt.step1)
			end := mid.Add(tt.step2)

			stepped := DecayedMass(DecayedMass(mass, base, mid, rate), mid, end, rate)
			direct := DecayedMass(mass, base, end, rate)

			if !stepped.Equal(direct) {
				t.Errorf("two-step decay = %s, one-step = %s", stepped, direct)
			}
		})
	}
}

func TestSecondsToTarget(t *testing.T) {
	rate := decimal.NewFromFloat(7.2)

	tests := []struct {
		name     string
		current  string
		target   string
		expected int64
	}{
		{"already at target", "10", "10", 0},
		{"below target", "5", "10", 0},
		{"one hour over", "17.2", "10", 3600},
		{"rounds up", "14", "9.49875", 2251},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SecondsToTarget(decimal.RequireFromString(tt.current), decimal.RequireFromString(tt.target), rate)
			if got != tt.expected {
				t.Errorf("SecondsToTarget(%s, %s) = %d, want %d", tt.current, tt.target, got, tt.expected)
			}
		})
	}
}

func TestSecondsToTargetZeroRate(t *testing.T) {
	got := SecondsToTarget(decimal.NewFromInt(20), decimal.NewFromInt(10), decimal.Zero)
	if got <= 0 {
		t.Errorf("SecondsToTarget with zero rate = %d, want a positive wait", got)
	}
}
