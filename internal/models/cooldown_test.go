package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// target mass for score 25 at 75kg male: 0.25 * 0.745 * 0.68 * 75
var testTargetMass = decimal.RequireFromString("9.49875")

func TestCooldownNaturalDecayOnly(t *testing.T) {
	now := time.Date(2025, 6, 21, 22, 0, 0, 0, time.UTC)

	got := CooldownSeconds(CooldownInput{
		Mass:       decimal.NewFromInt(14),
		TargetMass: testTargetMass,
		Rate:       decimal.NewFromFloat(7.2),
		Now:        now,
	})

	// ceil((14 - 9.49875) / 7.2 * 3600)
	if got != 2251 {
		t.Errorf("CooldownSeconds = %d, want 2251", got)
	}
}

func TestCooldownAtTargetIsZero(t *testing.T) {
	now := time.Date(2025, 6, 21, 22, 0, 0, 0, time.UTC)

	got := CooldownSeconds(CooldownInput{
		Mass:       decimal.NewFromInt(5),
		TargetMass: testTargetMass,
		Rate:       decimal.NewFromFloat(7.2),
		Now:        now,
	})
	if got != 0 {
		t.Errorf("CooldownSeconds below target = %d, want 0", got)
	}
}

func TestCooldownSpacingFloor(t *testing.T) {
	now := time.Date(2025, 6, 21, 22, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		drinkGrams string
		waited     time.Duration
		expected   int64
	}{
		{"5g just logged", "5", 0, 450},
		{"5g after 3 minutes", "5", 3 * time.Minute, 270},
		{"5g floor fully elapsed", "5", 10 * time.Minute, 0},
		{"reference drink spacing", "20", 0, 1800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grams := decimal.RequireFromString(tt.drinkGrams)
			// mass already below target: natural wait is zero, the
			// floor is the only term
			got := CooldownSeconds(CooldownInput{
				Mass:           decimal.NewFromInt(5),
				TargetMass:     testTargetMass,
				Rate:           decimal.NewFromFloat(7.2),
				LastAlcoholAt:  now.Add(-tt.waited),
				LastDrinkGrams: grams,
				Now:            now,
			})
			if got != tt.expected {
				t.Errorf("CooldownSeconds = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestCooldownFriendlyCap(t *testing.T) {
	now := time.Date(2025, 6, 21, 22, 0, 0, 0, time.UTC)
	twenty := decimal.NewFromInt(20)

	// three fast drinks: 60g in the last ten minutes
	history := []Entry{
		NewDrinkEntry("shot", 60, 40, twenty, now),
		NewDrinkEntry("shot", 60, 40, twenty, now.Add(-5*time.Minute)),
		NewDrinkEntry("shot", 60, 40, twenty, now.Add(-10*time.Minute)),
	}

	in := CooldownInput{
		Mass:           decimal.NewFromInt(60),
		TargetMass:     testTargetMass,
		Rate:           decimal.NewFromFloat(7.2),
		LastAlcoholAt:  now,
		LastDrinkGrams: twenty,
		History:        history,
		Now:            now,
	}

	natural := SecondsToTarget(in.Mass, in.TargetMass, in.Rate)
	if natural <= 10000 {
		t.Fatalf("test premise broken: natural wait %d should be huge", natural)
	}

	// cap: 60g -> 5400s, accruing since the oldest entry 600s ago
	got := CooldownBaseSeconds(in)
	if got != 4800 {
		t.Errorf("CooldownBaseSeconds = %d, want 4800 (cap applied)", got)
	}
}

func TestCooldownCapIgnoredOutsideWindow(t *testing.T) {
	now := time.Date(2025, 6, 21, 22, 0, 0, 0, time.UTC)

	// the only drink is older than the window: no cap, natural wait rules
	history := []Entry{
		NewDrinkEntry("beer", 350, 5, decimal.NewFromInt(14), now.Add(-2*time.Hour)),
	}

	got := CooldownBaseSeconds(CooldownInput{
		Mass:           decimal.NewFromInt(14),
		TargetMass:     testTargetMass,
		Rate:           decimal.NewFromFloat(7.2),
		LastAlcoholAt:  now.Add(-2 * time.Hour),
		LastDrinkGrams: decimal.NewFromInt(14),
		History:        history,
		Now:            now,
	})
	if got != 2251 {
		t.Errorf("CooldownBaseSeconds = %d, want 2251 (no cap)", got)
	}
}

func TestCooldownFloorWinsOverCap(t *testing.T) {
	now := time.Date(2025, 6, 21, 22, 0, 0, 0, time.UTC)

	// one drink 55 minutes ago: its cap has nearly elapsed, but a big
	// fresh drink just reset the spacing floor
	history := []Entry{
		NewDrinkEntry("whisky", 90, 40, decimal.RequireFromString("28.8"), now),
		NewDrinkEntry("beer", 350, 5, decimal.NewFromInt(14), now.Add(-55*time.Minute)),
	}

	got := CooldownBaseSeconds(CooldownInput{
		Mass:           decimal.RequireFromString("36.2"),
		TargetMass:     testTargetMass,
		Rate:           decimal.NewFromFloat(7.2),
		LastAlcoholAt:  now,
		LastDrinkGrams: decimal.RequireFromString("28.8"),
		History:        history,
		Now:            now,
	})

	// floor: 28.8g -> 2592s; cap: 42.8g accruing for 3300s -> 552s
	if got != 2592 {
		t.Errorf("CooldownBaseSeconds = %d, want the spacing floor 2592", got)
	}
}

func TestCooldownHydrationBonus(t *testing.T) {
	now := time.Date(2025, 6, 21, 22, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		bonus    int64
		expected int64
	}{
		{"no bonus", 0, 2251},
		{"bonus shortens", 600, 1651},
		{"bonus never inverts", 9999, 0},
		{"negative bonus ignored", -100, 2251},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CooldownSeconds(CooldownInput{
				Mass:              decimal.NewFromInt(14),
				TargetMass:        testTargetMass,
				Rate:              decimal.NewFromFloat(7.2),
				HydrationBonusSec: tt.bonus,
				Now:               now,
			})
			if got != tt.expected {
				t.Errorf("CooldownSeconds(bonus=%d) = %d, want %d", tt.bonus, got, tt.expected)
			}
		})
	}
}

// The final wait never goes negative and never exceeds the pre-bonus
// base, whatever the bonus.
func TestCooldownBoundedByBase(t *testing.T) {
	now := time.Date(2025, 6, 21, 22, 0, 0, 0, time.UTC)

	for _, mass := range []int64{0, 5, 14, 30, 60} {
		for _, bonus := range []int64{0, 600, 1200, 100000} {
			in := CooldownInput{
				Mass:              decimal.NewFromInt(mass),
				TargetMass:        testTargetMass,
				Rate:              decimal.NewFromFloat(7.2),
				LastAlcoholAt:     now.Add(-10 * time.Minute),
				LastDrinkGrams:    decimal.NewFromInt(14),
				HydrationBonusSec: bonus,
				Now:               now,
			}
			base := CooldownBaseSeconds(in)
			final := CooldownSeconds(in)
			if final < 0 || final > base {
				t.Errorf("mass=%d bonus=%d: final %d outside [0, base %d]", mass, bonus, final, base)
			}
		}
	}
}
