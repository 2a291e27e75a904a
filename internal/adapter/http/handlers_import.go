package adapthttp

import (
	"net/http"

	"momentum/internal/observability"
)

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		CSV  string `json:"csv"`
		Unit string `json:"unit"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Unit == "" {
		body.Unit = string(s.unit)
	}

	res, err := s.weight.Import(r.Context(), body.CSV, body.Unit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	observability.RecordImport(res.ImportedCount, res.ErrorCount)
	writeJSON(w, http.StatusOK, map[string]any{
		"importedCount": res.ImportedCount,
		"errorCount":    res.ErrorCount,
		"errors":        res.Errors,
		"outcome":       res.Outcome(),
	})
}
