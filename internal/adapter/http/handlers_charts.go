package adapthttp

import (
	"net/http"

	"momentum/internal/domain"
)

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	unit := s.unit
	if q := r.URL.Query().Get("unit"); q != "" {
		u, err := domain.ParseUnit(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		unit = u
	}

	writeJSON(w, http.StatusOK, s.charts.Progress(unit))
}
