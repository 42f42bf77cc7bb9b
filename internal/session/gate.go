package session

import "github.com/findosh/nomel/internal/models"

// GateActive reports whether alcohol logging is blocked pending a
// hydration entry: exactly when the newest history entry is alcoholic.
// The store enforces this in LogDrink regardless of what the
// presentation layer shows, so a UI bug cannot bypass it.
func GateActive(history []models.Entry) bool {
	return len(history) > 0 && history[0].Kind == models.EntryAlcohol
}
