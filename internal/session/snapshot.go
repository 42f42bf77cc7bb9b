package session

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/findosh/nomel/internal/models"
)

// Snapshot is the durable form of the session state. One JSON document
// under one key; the persistence adapter neither inspects nor edits it.
type Snapshot struct {
	AccumulatedGrams  decimal.Decimal `json:"accumulated_grams"`
	AsOfUnixMs        int64           `json:"as_of_unix_ms"`
	History           []models.Entry  `json:"history"`
	HydrationBonusSec int64           `json:"hydration_bonus_sec"`
	LastAlcoholUnixMs int64           `json:"last_alcohol_unix_ms"`
	LastDrinkGrams    decimal.Decimal `json:"last_drink_grams"`
	WeightKg          decimal.Decimal `json:"weight_kg"`
	Age               int             `json:"age"`
	Sex               models.Sex      `json:"sex"`
}

func defaultSnapshot() Snapshot {
	profile := models.DefaultProfile()
	return Snapshot{
		AccumulatedGrams: decimal.Zero,
		LastDrinkGrams:   decimal.Zero,
		WeightKg:         profile.WeightKg,
		Age:              profile.Age,
		Sex:              profile.Sex,
	}
}

// UnmarshalJSON decodes each field independently so a missing or
// wrong-typed field falls back to its default instead of failing the
// whole restore. Only a payload that is not a JSON object at all is an
// error.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*s = defaultSnapshot()

	decode := func(key string, dst interface{}) {
		raw, ok := fields[key]
		if !ok {
			return
		}
		// best effort: a bad field keeps its default
		_ = json.Unmarshal(raw, dst)
	}

	decode("accumulated_grams", &s.AccumulatedGrams)
	decode("as_of_unix_ms", &s.AsOfUnixMs)
	decode("history", &s.History)
	decode("hydration_bonus_sec", &s.HydrationBonusSec)
	decode("last_alcohol_unix_ms", &s.LastAlcoholUnixMs)
	decode("last_drink_grams", &s.LastDrinkGrams)
	decode("weight_kg", &s.WeightKg)
	decode("age", &s.Age)

	var sex models.Sex
	if raw, ok := fields["sex"]; ok && json.Unmarshal(raw, &sex) == nil && sex.Valid() {
		s.Sex = sex
	}

	if s.AccumulatedGrams.IsNegative() {
		s.AccumulatedGrams = decimal.Zero
	}
	if s.HydrationBonusSec < 0 {
		s.HydrationBonusSec = 0
	}
	if !models.ValidWeightKg(s.WeightKg) {
		s.WeightKg = models.DefaultProfile().WeightKg
	}
	if !models.ValidAge(s.Age) {
		s.Age = models.DefaultProfile().Age
	}
	return nil
}
