package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/findosh/nomel/internal/models"
	"github.com/findosh/nomel/internal/session"
)

// APIState returns the per-tick derived view as JSON. The page polls
// this once a second; nothing here mutates state.
func (h *Handler) APIState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, h.store.View())
}

// APIHistory returns the history log, newest first
func (h *Handler) APIHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	entries := h.store.History()
	if entries == nil {
		entries = []models.Entry{}
	}
	h.writeJSON(w, map[string]interface{}{"entries": entries})
}

// APIPresets returns the beverage catalog
func (h *Handler) APIPresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, map[string]interface{}{"presets": h.catalog})
}

// APISummary returns session analytics over the history log
func (h *Handler) APISummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	view := h.store.View()
	summary := h.summaryService.Compute(h.store.History(), view.Profile, view.AsOf)
	h.writeJSON(w, summary)
}

type drinkRequest struct {
	Preset     string  `json:"preset"`
	Label      string  `json:"label"`
	VolumeMl   float64 `json:"volume_ml"`
	AbvPercent float64 `json:"abv_percent"`
}

// APIDrinks logs an alcoholic drink. With a preset key the volume and
// strength are resolved against the catalog variant; without one the
// request supplies them directly.
func (h *Handler) APIDrinks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req drinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	label := req.Label
	ml, abv := req.VolumeMl, req.AbvPercent

	if req.Preset != "" {
		preset, ok := models.FindPreset(h.catalog, req.Preset)
		if !ok {
			h.jsonError(w, "Unknown preset", http.StatusBadRequest)
			return
		}
		var err error
		ml, abv, err = preset.Resolve(req.VolumeMl, req.AbvPercent)
		if err != nil {
			h.jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if label == "" {
			label = fmt.Sprintf("%s %gml (%g%%)", preset.Label, ml, abv)
		}
	}

	entry, err := h.store.LogDrink(label, ml, abv)
	switch {
	case errors.Is(err, session.ErrHydrationRequired):
		// Policy rejection, not a failure: the client explains why
		// nothing was logged and offers the hydration action.
		h.writeJSONStatus(w, http.StatusConflict, map[string]string{"error": "hydration_required"})
		return
	case errors.Is(err, session.ErrInvalidDrink):
		h.jsonError(w, "Invalid volume or strength", http.StatusBadRequest)
		return
	case err != nil:
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSONStatus(w, http.StatusCreated, entry)
}

// APIHydration logs a water entry. The response reports whether it was
// mandatory (gate clearing, no bonus) or voluntary (bonus granted).
func (h *Handler) APIHydration(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entry, mandatory, err := h.store.LogHydration()
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSONStatus(w, http.StatusCreated, map[string]interface{}{
		"entry":     entry,
		"mandatory": mandatory,
	})
}

type profileRequest struct {
	WeightKg *float64    `json:"weight_kg"`
	Age      *int        `json:"age"`
	Sex      *models.Sex `json:"sex"`
}

// APIProfile updates the user profile. Invalid fields keep their prior
// value; the merged profile comes back either way.
func (h *Handler) APIProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.store.SetProfile(session.ProfileUpdate{
		WeightKg: req.WeightKg,
		Age:      req.Age,
		Sex:      req.Sex,
	})
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, profile)
}

// APISession ends the session on DELETE
func (h *Handler) APISession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := h.store.EndSession(); err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
