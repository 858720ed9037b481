package adapthttp

import (
	"net/http"

	"heartcare/internal/app"
)

func (s *Server) handleSurveys(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": s.surveys.Instruments()})
}

func (s *Server) handleSurvey(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, s.surveys.State())
}

func (s *Server) handleSurveyStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var body struct {
		InstrumentID string `json:"instrumentId"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeSurvey(w)(s.surveys.Start(body.InstrumentID))
}

func (s *Server) handleSurveyAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var body struct {
		Score *int `json:"score"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Score == nil {
		writeError(w, http.StatusBadRequest, errMissingScore)
		return
	}
	writeSurvey(w)(s.surveys.Answer(*body.Score))
}

func (s *Server) handleSurveyBack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	writeSurvey(w)(s.surveys.Back())
}

func (s *Server) handleSurveySubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	writeSurvey(w)(s.surveys.Submit(r.Context()))
}

func (s *Server) handleSurveyClose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, s.surveys.Close())
}

func writeSurvey(w http.ResponseWriter) func(app.SurveyView, error) {
	return func(v app.SurveyView, err error) {
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}
