package adapthttp

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"momentum/internal/app"
	"momentum/internal/domain"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	weight *app.WeightService
	charts *app.ChartsService
	webDir string
	unit   domain.Unit
}

// New creates a Server wired to the given application services.
func New(ws *app.WeightService, cs *app.ChartsService, webDir string) *Server {
	return &Server{weight: ws, charts: cs, webDir: webDir, unit: domain.Kilograms}
}

// WithUnit sets the display unit used when a request does not name one.
func (s *Server) WithUnit(u domain.Unit) *Server {
	s.unit = u
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/entries", s.handleEntries)
	api.HandleFunc("/entries/{id}", s.handleEntry)
	api.HandleFunc("/history", s.handleHistory)
	api.HandleFunc("/import", s.handleImport)

	api.HandleFunc("/chart", s.handleChart)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/metrics", promhttp.Handler())
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
