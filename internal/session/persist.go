package session

import (
	"log"
	"time"

	"github.com/findosh/nomel/internal/models"
)

// Persistence is decoupled from mutation: a mutation only marks the
// state dirty by rescheduling a timer, and the timer task reads the
// then-latest state and writes it. Bursts of mutations inside the quiet
// period coalesce into one write. Failed writes are logged and
// swallowed; in-memory state is never affected.

func (s *Store) scheduleSaveLocked() {
	if s.persister == nil || s.phase != phaseReady {
		return
	}
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.saveTimer = time.AfterFunc(s.saveDelay, s.flushSnapshot)
}

func (s *Store) cancelSaveLocked() {
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
}

func (s *Store) flushSnapshot() {
	s.mu.Lock()
	p := s.persister
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if p == nil {
		return
	}
	if err := p.Save(snap); err != nil {
		log.Printf("session: snapshot save failed: %v", err)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	var lastAlcohol int64
	if !s.lastAlcoholAt.IsZero() {
		lastAlcohol = s.lastAlcoholAt.UnixMilli()
	}
	history := make([]models.Entry, len(s.history))
	copy(history, s.history)

	return Snapshot{
		AccumulatedGrams:  s.grams,
		AsOfUnixMs:        s.asOf.UnixMilli(),
		History:           history,
		HydrationBonusSec: s.bonusSec,
		LastAlcoholUnixMs: lastAlcohol,
		LastDrinkGrams:    s.lastDrinkGrams,
		WeightKg:          s.profile.WeightKg,
		Age:               s.profile.Age,
		Sex:               s.profile.Sex,
	}
}

// Close flushes any pending snapshot write synchronously. Safe to call
// once at shutdown.
func (s *Store) Close() {
	s.mu.Lock()
	pending := s.saveTimer != nil && s.saveTimer.Stop()
	s.saveTimer = nil
	s.mu.Unlock()

	if pending {
		s.flushSnapshot()
	}
}
