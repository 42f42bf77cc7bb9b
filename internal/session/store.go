// Package session owns the mutable drinking-session state: accumulated
// alcohol mass, the hydration gate, the hydration bonus, the history
// log, and the user profile. Every mutation settles decay up to the
// current instant before it touches the mass, so no interval is ever
// decayed twice or skipped. Reads derive score, stage, and cooldown
// fresh against the wall clock and store nothing.
package session

import (
	"errors"
	"log"
	"math"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/findosh/nomel/internal/models"
)

// Policy rejections and lifecycle errors callers must tell apart from
// real failures.
var (
	// ErrHydrationRequired means the gate is active: the previous entry
	// was alcoholic and a hydration entry must come first.
	ErrHydrationRequired = errors.New("hydration required before the next drink")

	// ErrNotReady means the store has not finished booting.
	ErrNotReady = errors.New("session store is not ready")

	// ErrInvalidDrink means the volume or strength is out of range.
	ErrInvalidDrink = errors.New("invalid drink volume or strength")
)

// VoluntaryHydrationBonus is the cooldown credit for drinking water
// when nothing forced it.
const VoluntaryHydrationBonus = 600 // seconds

// Persister is the durable store the session reads once at boot and
// writes to after mutations. All writes are best effort.
type Persister interface {
	Load() (*Snapshot, error)
	Save(Snapshot) error
	Delete() error
}

// Config tunes the store
type Config struct {
	// TargetScore is the score the cooldown decays toward. Zero means
	// the default of 25.
	TargetScore decimal.Decimal

	// SaveDelay is the quiet period before a snapshot write. Zero means
	// the default of 200ms.
	SaveDelay time.Duration
}

var defaultTargetScore = decimal.NewFromInt(25)

const defaultSaveDelay = 200 * time.Millisecond

type phase int

const (
	phaseUninitialized phase = iota
	phaseBooting
	phaseReady
)

// Store is the single authoritative session state. All mutations are
// atomic with respect to each other; concurrent readers see settled
// values only.
type Store struct {
	mu    sync.Mutex
	phase phase
	now   func() time.Time

	profile models.Profile

	grams          decimal.Decimal // accumulated mass, valid as of asOf
	asOf           time.Time
	bonusSec       int64
	lastAlcoholAt  time.Time // zero until the first drink of the session
	lastDrinkGrams decimal.Decimal
	history        []models.Entry // newest first

	targetScore decimal.Decimal
	persister   Persister
	saveDelay   time.Duration
	saveTimer   *time.Timer
}

// New creates an unbooted store. Call Boot before anything else.
func New(p Persister, cfg Config) *Store {
	target := cfg.TargetScore
	if target.Sign() <= 0 {
		target = defaultTargetScore
	}
	delay := cfg.SaveDelay
	if delay <= 0 {
		delay = defaultSaveDelay
	}
	return &Store{
		now:            time.Now,
		profile:        models.DefaultProfile(),
		grams:          decimal.Zero,
		lastDrinkGrams: decimal.Zero,
		targetScore:    target,
		persister:      p,
		saveDelay:      delay,
	}
}

// Boot loads the prior snapshot (absence and corruption both read as a
// fresh start) and fast-forwards decay for the time the process was
// down, using the restored profile's rate. Only after Boot returns does
// the store accept mutations or schedule writes; an empty initial state
// can therefore never overwrite a not-yet-loaded snapshot.
func (s *Store) Boot() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != phaseUninitialized {
		return nil
	}
	s.phase = phaseBooting

	var snap *Snapshot
	if s.persister != nil {
		loaded, err := s.persister.Load()
		if err != nil {
			log.Printf("session: snapshot load failed, starting fresh: %v", err)
		} else {
			snap = loaded
		}
	}
	s.restoreLocked(snap)
	s.phase = phaseReady
	return nil
}

func (s *Store) restoreLocked(snap *Snapshot) {
	now := s.now()
	if snap == nil {
		s.asOf = now
		return
	}

	s.profile = models.Profile{WeightKg: snap.WeightKg, Age: snap.Age, Sex: snap.Sex}
	s.grams = snap.AccumulatedGrams
	s.bonusSec = snap.HydrationBonusSec
	s.lastDrinkGrams = snap.LastDrinkGrams
	s.history = snap.History
	if snap.LastAlcoholUnixMs > 0 {
		s.lastAlcoholAt = time.UnixMilli(snap.LastAlcoholUnixMs)
	}

	s.asOf = now
	if snap.AsOfUnixMs > 0 {
		s.asOf = time.UnixMilli(snap.AsOfUnixMs)
	}
	s.settleLocked(now)
}

// settleLocked bakes decay into the accumulated mass up to now and
// advances the settlement timestamp. Never moves backwards.
func (s *Store) settleLocked(now time.Time) {
	s.grams = models.DecayedMass(s.grams, s.asOf, now, s.profile.BurnRate())
	if now.After(s.asOf) {
		s.asOf = now
	}
}

// LogDrink records an alcoholic entry. While the gate is active it
// changes nothing and returns ErrHydrationRequired.
func (s *Store) LogDrink(label string, volumeMl, abvPercent float64) (models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != phaseReady {
		return models.Entry{}, ErrNotReady
	}
	if GateActive(s.history) {
		return models.Entry{}, ErrHydrationRequired
	}
	if !validDrink(volumeMl, abvPercent) {
		return models.Entry{}, ErrInvalidDrink
	}

	now := s.now()
	s.settleLocked(now)

	grams := models.DrinkGrams(volumeMl, abvPercent)
	s.grams = s.grams.Add(grams)
	s.lastAlcoholAt = now
	s.lastDrinkGrams = grams
	s.bonusSec = 0

	entry := models.NewDrinkEntry(label, volumeMl, abvPercent, grams, now)
	s.history = append([]models.Entry{entry}, s.history...)

	s.scheduleSaveLocked()
	return entry, nil
}

func validDrink(volumeMl, abvPercent float64) bool {
	if math.IsNaN(volumeMl) || math.IsInf(volumeMl, 0) || volumeMl <= 0 {
		return false
	}
	if math.IsNaN(abvPercent) || math.IsInf(abvPercent, 0) || abvPercent <= 0 || abvPercent > 100 {
		return false
	}
	return true
}

// LogHydration records a water entry. When the gate was active the
// entry clears it and grants nothing; a voluntary one earns the
// cooldown bonus. The returned flag reports which case applied.
func (s *Store) LogHydration() (entry models.Entry, mandatory bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != phaseReady {
		return models.Entry{}, false, ErrNotReady
	}

	now := s.now()
	s.settleLocked(now)

	mandatory = GateActive(s.history)
	if !mandatory {
		s.bonusSec += VoluntaryHydrationBonus
	}

	entry = models.NewWaterEntry(now)
	s.history = append([]models.Entry{entry}, s.history...)

	s.scheduleSaveLocked()
	return entry, mandatory, nil
}

// ProfileUpdate carries the fields of a profile edit; nil means leave
// unchanged.
type ProfileUpdate struct {
	WeightKg *float64
	Age      *int
	Sex      *models.Sex
}

// SetProfile merges valid fields into the profile. Invalid fields are
// silently ignored and keep their prior value; the merged profile is
// returned either way.
func (s *Store) SetProfile(u ProfileUpdate) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != phaseReady {
		return models.Profile{}, ErrNotReady
	}

	// Settle under the old rate before the rate can change.
	s.settleLocked(s.now())

	if u.WeightKg != nil && !math.IsNaN(*u.WeightKg) && !math.IsInf(*u.WeightKg, 0) {
		w := decimal.NewFromFloat(*u.WeightKg)
		if models.ValidWeightKg(w) {
			s.profile.WeightKg = w
		}
	}
	if u.Age != nil && models.ValidAge(*u.Age) {
		s.profile.Age = *u.Age
	}
	if u.Sex != nil && u.Sex.Valid() {
		s.profile.Sex = *u.Sex
	}

	s.scheduleSaveLocked()
	return s.profile, nil
}

// EndSession clears the session back to its zero state, keeps the
// profile, and deletes the stored snapshot.
func (s *Store) EndSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != phaseReady {
		return ErrNotReady
	}

	s.grams = decimal.Zero
	s.asOf = s.now()
	s.history = nil
	s.bonusSec = 0
	s.lastAlcoholAt = time.Time{}
	s.lastDrinkGrams = decimal.Zero

	s.cancelSaveLocked()
	if s.persister != nil {
		if err := s.persister.Delete(); err != nil {
			log.Printf("session: snapshot delete failed: %v", err)
		}
	}
	return nil
}

// View is the derived read model the presentation layer polls every
// tick. Computing it never mutates the settled state.
type View struct {
	AccumulatedGrams  decimal.Decimal `json:"accumulated_grams"`
	ScorePercent      decimal.Decimal `json:"score_percent"`
	Stage             models.Stage    `json:"stage"`
	CooldownSec       int64           `json:"cooldown_sec"`
	HydrationBonusSec int64           `json:"hydration_bonus_sec"`
	GateActive        bool            `json:"gate_active"`
	BurnRate          decimal.Decimal `json:"burn_rate"`
	Profile           models.Profile  `json:"profile"`
	AsOf              time.Time       `json:"as_of"`
}

// View derives the current display values against the wall clock.
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rate := s.profile.BurnRate()
	mass := models.DecayedMass(s.grams, s.asOf, now, rate)
	score := models.Score(mass, s.profile)

	cooldown := models.CooldownSeconds(models.CooldownInput{
		Mass:              mass,
		TargetMass:        models.MassForScore(s.targetScore, s.profile),
		Rate:              rate,
		LastAlcoholAt:     s.lastAlcoholAt,
		LastDrinkGrams:    s.lastDrinkGrams,
		History:           s.history,
		HydrationBonusSec: s.bonusSec,
		Now:               now,
	})

	return View{
		AccumulatedGrams:  mass,
		ScorePercent:      score,
		Stage:             models.StageForScore(score),
		CooldownSec:       cooldown,
		HydrationBonusSec: s.bonusSec,
		GateActive:        GateActive(s.history),
		BurnRate:          rate,
		Profile:           s.profile,
		AsOf:              now,
	}
}

// History returns the entries newest first. The slice is a copy.
func (s *Store) History() []models.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Entry, len(s.history))
	copy(out, s.history)
	return out
}

// Profile returns the current user profile.
func (s *Store) Profile() models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}
