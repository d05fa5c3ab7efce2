package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"imoveis-sp/geocode"
	"imoveis-sp/models"
	"imoveis-sp/utils"
)

// Server exposes the computed pipeline result as a read-only JSON API, the
// data contract a dashboard front end consumes. It never recomputes
// anything: the pipeline ran once and the result is immutable.
type Server struct {
	logger *utils.Logger
	view   []models.Listing
	stats  models.StatsReport
	counts map[string]int
	coords map[string]*geocode.Coordinate
}

// New creates a Server over an already-computed filtered view.
func New(logger *utils.Logger, view []models.Listing, stats models.StatsReport,
	counts map[string]int, coords map[string]*geocode.Coordinate) *Server {
	return &Server{
		logger: logger,
		view:   view,
		stats:  stats,
		counts: counts,
		coords: coords,
	}
}

// Router builds the API routes. The API is read-only, so any non-GET verb
// on a known path gets an explicit 405. mux only takes its method-mismatch
// branch when a MethodNotAllowedHandler is set; without one the request
// falls through to a plain 404, on the subrouter as well as the root.
func (s *Server) Router() *mux.Router {
	notAllowed := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	r := mux.NewRouter()
	r.MethodNotAllowedHandler = notAllowed

	api := r.PathPrefix("/api").Subrouter()
	api.MethodNotAllowedHandler = notAllowed
	api.HandleFunc("/listings", s.handleListings).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/bairros", s.handleBairros).Methods(http.MethodGet)
	api.HandleFunc("/coords", s.handleCoords).Methods(http.MethodGet)
	return r
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("[server] Serving filtered view on %s", addr)
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) handleListings(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, s.view)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, s.stats)
}

func (s *Server) handleBairros(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, s.counts)
}

// handleCoords returns resolved coordinates only. Unresolved neighborhoods
// are excluded from map data but keep their listings in /listings.
func (s *Server) handleCoords(w http.ResponseWriter, _ *http.Request) {
	resolved := make(map[string]geocode.Coordinate, len(s.coords))
	for name, c := range s.coords {
		if c != nil {
			resolved[name] = *c
		}
	}
	s.writeJSON(w, resolved)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("[server] encode response: %v", err)
	}
}
