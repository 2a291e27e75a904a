package adapthttp

import (
	"encoding/json"
	"net/http"

	"momentum/internal/app"
)

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"items": s.weight.Entries()})

	case http.MethodPut:
		var body struct {
			Weight json.Number `json:"weight"`
			Unit   string      `json:"unit"`
			Date   string      `json:"date"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if body.Unit == "" {
			body.Unit = string(s.unit)
		}
		day, err := app.ParseDate(body.Date)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		entry, err := s.weight.RecordWeight(ctx, body.Weight.String(), body.Unit, day)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": entry, "message": s.weight.EncouragingPhrase()})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	deleted, err := s.weight.Remove(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	limit := intQuery(r, "limit", 0)
	writeJSON(w, http.StatusOK, map[string]any{"items": s.weight.History(limit)})
}
