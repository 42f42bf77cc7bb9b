package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pacing ratio: a reference drink of 20 grams buys 1800 seconds of
// recommended spacing. Both the per-drink floor and the friendly cap
// scale mass through this ratio.
var (
	referenceDrinkGrams = decimal.NewFromInt(20)
	referenceDrinkWait  = decimal.NewFromInt(1800)
)

// FriendlyCapWindow is the trailing intake window the cap is built from
const FriendlyCapWindow = time.Hour

// CooldownInput carries everything the policy needs for one evaluation.
// All of it is read from settled state; the policy itself holds nothing.
type CooldownInput struct {
	Mass              decimal.Decimal // decayed mass as of Now
	TargetMass        decimal.Decimal
	Rate              decimal.Decimal // grams per hour
	LastAlcoholAt     time.Time       // zero if no alcohol this session
	LastDrinkGrams    decimal.Decimal
	History           []Entry // newest first, for the rolling window
	HydrationBonusSec int64
	Now               time.Time
}

// CooldownSeconds returns the recommended wait before the next drink.
// Natural decay to the target mass, raised to the per-drink spacing
// floor, bounded by the friendly cap, then shortened by the hydration
// bonus. The bonus can spend at most what is left of the base wait, so
// the result is never negative and never exceeds the pre-bonus base.
func CooldownSeconds(in CooldownInput) int64 {
	base := CooldownBaseSeconds(in)
	bonus := in.HydrationBonusSec
	if bonus < 0 {
		bonus = 0
	}
	if bonus > base {
		bonus = base
	}
	return base - bonus
}

// CooldownBaseSeconds is the policy wait before the hydration bonus is
// applied.
func CooldownBaseSeconds(in CooldownInput) int64 {
	wait := SecondsToTarget(in.Mass, in.TargetMass, in.Rate)

	if capped := friendlyCapSeconds(in.History, in.Now); capped > 0 && wait > capped {
		wait = capped
	}

	// The spacing floor wins over the cap: the cap bounds the decay
	// estimate, it does not license back-to-back drinks.
	if floor := spacingFloorSeconds(in.LastDrinkGrams, in.LastAlcoholAt, in.Now); wait < floor {
		wait = floor
	}

	if wait < 0 {
		return 0
	}
	return wait
}

// pacingSeconds converts an alcohol mass to spacing time through the
// 20 g / 1800 s reference ratio, rounded up to whole seconds.
func pacingSeconds(grams decimal.Decimal) int64 {
	if grams.Sign() <= 0 {
		return 0
	}
	return grams.Mul(referenceDrinkWait).Div(referenceDrinkGrams).Ceil().IntPart()
}

// spacingFloorSeconds is the remaining minimum spacing after the most
// recent single drink, decremented by time already waited.
func spacingFloorSeconds(lastDrinkGrams decimal.Decimal, lastAlcoholAt, now time.Time) int64 {
	if lastAlcoholAt.IsZero() {
		return 0
	}
	remaining := pacingSeconds(lastDrinkGrams) - int64(now.Sub(lastAlcoholAt).Seconds())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// friendlyCapSeconds bounds the wait using total intake over the
// trailing window, decremented by time elapsed since the window started
// accruing (the oldest alcohol entry still inside it). Zero means no
// cap applies.
func friendlyCapSeconds(history []Entry, now time.Time) int64 {
	cutoff := now.Add(-FriendlyCapWindow)

	total := decimal.Zero
	var oldest time.Time
	for _, e := range history {
		if e.Kind != EntryAlcohol {
			continue
		}
		if e.Timestamp.Before(cutoff) {
			break // newest first: everything after this is older still
		}
		total = total.Add(e.Grams)
		oldest = e.Timestamp
	}
	if oldest.IsZero() {
		return 0
	}

	remaining := pacingSeconds(total) - int64(now.Sub(oldest).Seconds())
	if remaining < 0 {
		return 0
	}
	return remaining
}
