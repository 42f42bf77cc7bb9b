package summary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/findosh/nomel/internal/models"
)

func testProfile() models.Profile {
	return models.Profile{WeightKg: decimal.NewFromInt(75), Age: 35, Sex: models.SexMale}
}

func TestComputeEmptyHistory(t *testing.T) {
	svc := NewService()

	got := svc.Compute(nil, testProfile(), time.Now())

	if got.DrinkCount != 0 || got.WaterCount != 0 {
		t.Errorf("counts = %d/%d, want 0/0", got.DrinkCount, got.WaterCount)
	}
	if !got.TotalGrams.IsZero() || !got.GramsPerHour.IsZero() {
		t.Errorf("grams = %s, rate = %s, want both 0", got.TotalGrams, got.GramsPerHour)
	}
	if got.PeakStage != models.StageSober {
		t.Errorf("peak stage = %s, want sober", got.PeakStage.Label)
	}
}

func TestComputeSession(t *testing.T) {
	svc := NewService()
	profile := testProfile()

	t0 := time.Date(2025, 6, 21, 21, 0, 0, 0, time.UTC)
	now := t0.Add(time.Hour)

	// newest first, as the store keeps history
	history := []models.Entry{
		models.NewDrinkEntry("Chuhai 500ml (4%)", 500, 4, decimal.NewFromInt(16), t0.Add(45*time.Minute)),
		models.NewWaterEntry(t0.Add(30 * time.Minute)),
		models.NewDrinkEntry("Beer 350ml (5%)", 350, 5, decimal.NewFromInt(14), t0),
	}

	got := svc.Compute(history, profile, now)

	if got.DrinkCount != 2 || got.WaterCount != 1 {
		t.Errorf("counts = %d/%d, want 2/1", got.DrinkCount, got.WaterCount)
	}
	if !got.TotalGrams.Equal(decimal.NewFromInt(30)) {
		t.Errorf("total grams = %s, want 30", got.TotalGrams)
	}
	if !got.GramsPerHour.Equal(decimal.NewFromInt(30)) {
		t.Errorf("grams per hour = %s, want 30 over one hour", got.GramsPerHour)
	}
	if !got.StartedAt.Equal(t0) || !got.LastEntryAt.Equal(t0.Add(45*time.Minute)) {
		t.Errorf("span = %v..%v, want t0..t0+45m", got.StartedAt, got.LastEntryAt)
	}
	if got.DurationSec != 3600 {
		t.Errorf("duration = %d, want 3600", got.DurationSec)
	}

	// peak is right after the second drink: 14 decayed 45 minutes at
	// 7.2 g/h leaves 8.6, plus 16 is 24.6
	wantPeak := models.Score(decimal.RequireFromString("24.6"), profile)
	if !got.PeakScore.Equal(wantPeak) {
		t.Errorf("peak score = %s, want %s", got.PeakScore, wantPeak)
	}
	if got.PeakStage != models.StageParty {
		t.Errorf("peak stage = %s, want party", got.PeakStage.Label)
	}
}

func TestComputePeakIsFirstDrinkWhenSecondIsSmaller(t *testing.T) {
	svc := NewService()
	profile := testProfile()

	t0 := time.Date(2025, 6, 21, 21, 0, 0, 0, time.UTC)
	history := []models.Entry{
		models.NewDrinkEntry("Sake 50ml (15%)", 50, 15, decimal.NewFromInt(6), t0.Add(2*time.Hour)),
		models.NewDrinkEntry("Whisky 90ml (40%)", 90, 40, decimal.RequireFromString("28.8"), t0),
	}

	got := svc.Compute(history, profile, t0.Add(2*time.Hour))

	// after two hours 28.8 has decayed to 14.4; 14.4 + 6 < 28.8
	wantPeak := models.Score(decimal.RequireFromString("28.8"), profile)
	if !got.PeakScore.Equal(wantPeak) {
		t.Errorf("peak score = %s, want the first drink's %s", got.PeakScore, wantPeak)
	}
}

func TestComputeRateFlooredForShortSessions(t *testing.T) {
	svc := NewService()

	t0 := time.Date(2025, 6, 21, 21, 0, 0, 0, time.UTC)
	history := []models.Entry{
		models.NewDrinkEntry("Beer 350ml (5%)", 350, 5, decimal.NewFromInt(14), t0),
	}

	// ten seconds in: the rate window is floored at one minute, not
	// extrapolated from ten seconds
	got := svc.Compute(history, testProfile(), t0.Add(10*time.Second))
	if !got.GramsPerHour.Equal(decimal.NewFromInt(840)) {
		t.Errorf("grams per hour = %s, want 840 (14g over the one-minute floor)", got.GramsPerHour)
	}
}
