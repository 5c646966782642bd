// Package handlers exposes the estimator over a JSON HTTP surface. It is
// thin glue: every request is translated into engine calls and answered
// with the engine's view model, never with recomputed values of its own.
package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"vanestimate/services"
)

// Server wraps one session's estimator. The engine itself is
// single-threaded by design, so the server serializes request handling
// at this boundary.
type Server struct {
	mu      sync.Mutex
	est     *services.Estimator
	source  string
	loadErr error
}

// NewServer builds a server from a settled catalog load outcome. A failed
// load produces a server that answers every request with the
// source-unavailable state.
func NewServer(result services.LoadResult) *Server {
	s := &Server{source: result.Source, loadErr: result.Err}
	if result.Err == nil {
		s.est = services.NewEstimator(result.Catalog)
	}
	return s
}

// Routes mounts all estimator endpoints on a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/estimate", s.HandleState)
	mux.HandleFunc("POST /api/selections/add", s.HandleAddItem)
	mux.HandleFunc("POST /api/selections/remove", s.HandleRemoveItem)
	mux.HandleFunc("POST /api/selections/update", s.HandleUpdateSelection)
	mux.HandleFunc("POST /api/van-type", s.HandleSetVanType)
	mux.HandleFunc("POST /api/rates", s.HandleSetRates)
	mux.HandleFunc("POST /api/vehicle", s.HandleSetVehicle)
	mux.HandleFunc("GET /api/export/pdf", s.HandleExportPDF)
	mux.HandleFunc("GET /api/export/xlsx", s.HandleExportExcel)
	return mux
}

// available guards every endpoint: when the load failed there is no
// catalog and no sections are exposed, only the unavailable state.
func (s *Server) available(w http.ResponseWriter) bool {
	if s.loadErr == nil {
		return true
	}
	writeJSON(w, http.StatusServiceUnavailable, map[string]any{
		"status": "source unavailable",
		"reason": s.loadErr.Error(),
	})
	return false
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
