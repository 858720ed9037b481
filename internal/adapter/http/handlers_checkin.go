package adapthttp

import (
	"net/http"

	"heartcare/internal/app"
	"heartcare/internal/domain"
)

func (s *Server) handleFoods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"default": domain.DefaultFood,
		"items":   s.checkin.Foods(),
	})
}

func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.checkin.Draft())
	case http.MethodDelete:
		writeJSON(w, http.StatusOK, s.checkin.Reset())
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleDraftIntake(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var body struct {
		Food   string `json:"food"`
		Weight string `json:"weight"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Food == "" {
		body.Food = domain.DefaultFood
	}
	entry, err := s.checkin.AddIntake(body.Food, body.Weight)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": entry, "draft": s.checkin.Draft()})
}

func (s *Server) handleDraftOutput(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	var body app.OutputForm
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	d, err := s.checkin.SetOutput(body)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDraftSymptoms(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"items": domain.Symptoms})
	case http.MethodPost:
		var body struct {
			Symptom string `json:"symptom"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		d, err := s.checkin.ToggleSymptom(body.Symptom)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleDraftNote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	var body struct {
		Text string `json:"text"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.checkin.SetSymptomNote(body.Text))
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		limit := intQuery(r, "limit", 0)
		items, err := s.checkin.ListLogs(ctx, limit)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var body app.VitalsForm
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		entry, err := s.checkin.Finalize(ctx, body)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		bal, err := s.points.Balance(ctx)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"entry": entry, "points": bal})

	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleTrendWeight(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	window := intQuery(r, "days", 0)
	unit := r.URL.Query().Get("unit")

	trend, err := s.trend.Weight(r.Context(), window, unit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trend)
}
