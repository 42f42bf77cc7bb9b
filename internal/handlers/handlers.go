// Package handlers provides HTTP request handlers
package handlers

import (
	"html/template"
	"net/http"

	"github.com/findosh/nomel/internal/config"
	"github.com/findosh/nomel/internal/models"
	"github.com/findosh/nomel/internal/services/summary"
	"github.com/findosh/nomel/internal/session"
)

// Handler contains all HTTP handlers and dependencies
type Handler struct {
	cfg            *config.Config
	store          *session.Store
	summaryService *summary.Service
	catalog        []models.Preset
	statusPage     *template.Template
}

// New creates a new handler with all dependencies
func New(cfg *config.Config, store *session.Store, summaryService *summary.Service, catalog []models.Preset) (*Handler, error) {
	tmpl, err := template.New("status").Parse(statusPageHTML)
	if err != nil {
		return nil, err
	}

	return &Handler{
		cfg:            cfg,
		store:          store,
		summaryService: summaryService,
		catalog:        catalog,
		statusPage:     tmpl,
	}, nil
}

// Home renders a minimal status page; the real UI consumes the JSON API
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	view := h.store.View()
	data := struct {
		Stage       models.Stage
		Score       string
		CooldownSec int64
		GateActive  bool
	}{
		Stage:       view.Stage,
		Score:       view.ScorePercent.Round(1).String(),
		CooldownSec: view.CooldownSec,
		GateActive:  view.GateActive,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.statusPage.Execute(w, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}

const statusPageHTML = `<!DOCTYPE html>
<html>
<head><meta name="viewport" content="width=device-width, initial-scale=1"><title>Nomel</title></head>
<body>
<h1>Nomel</h1>
<p>Stage: {{.Stage.Label}} ({{.Score}}%)</p>
<p>Next drink in: {{.CooldownSec}}s</p>
{{if .GateActive}}<p><strong>Hydrate before your next drink.</strong></p>{{end}}
</body>
</html>
`
