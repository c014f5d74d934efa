package internal

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Server runs the AUP backend. The override database is optional: without
// it the feed still publishes, overrides are just disabled.
func Server(logLevel zerolog.Level) {
	zerolog.SetGlobalLevel(logLevel)

	config := ConfigFromEnv()

	var store *OverrideStore
	db, err := newDatabasePool(config.DatabaseURL)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialise database, overrides disabled")
	} else {
		store = NewOverrideStore(db)
	}

	service := NewService(config, store)
	if err := service.Serve(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func (s *Service) Serve() error {
	s.health.MustRegister()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /topsky/merged", s.handleMerged)
	mux.HandleFunc("GET /aup/activations", s.handleActivations)
	mux.HandleFunc("GET /aup/lfv", s.handleLFV)
	mux.HandleFunc("GET /aup/vlara", s.handleVLARA)
	mux.HandleFunc("GET /aup/overrides", s.handleGetOverrides)
	mux.HandleFunc("PUT /aup/overrides", s.handlePutOverrides)
	mux.HandleFunc("POST /aup/overrides/{area}", s.handleSetOverride)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	log.Info().Str("addr", s.config.Addr).Str("fir", s.config.FIR).Msg("serving")
	return http.ListenAndServe(s.config.Addr, mux)
}

func (s *Service) handleMerged(w http.ResponseWriter, r *http.Request) {
	text, err := s.MergedTopSky(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to build merged feed")
		http.Error(w, "Failed to fetch merged TopSky feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Write([]byte(text))
}

func (s *Service) handleActivations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.ActivationsView(r.Context()))
}

func (s *Service) handleLFV(w http.ResponseWriter, r *http.Request) {
	plan, err := s.Plan(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch use plan")
		http.Error(w, "Failed to fetch LFV use plan", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"restrictions": restrictionItems(plan.Restrictions, nil),
		"reportDate":   plan.ReportDate,
		"fetchedAt":    plan.FetchedAt,
	})
}

func (s *Service) handleVLARA(w http.ResponseWriter, r *http.Request) {
	text, err := s.PeerFeed(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch vLARA feed")
		http.Error(w, "Failed to fetch vLARA feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text))
}

func (s *Service) handleGetOverrides(w http.ResponseWriter, r *http.Request) {
	overrides, err := s.store.Overrides(r.Context(), s.config.FIR)
	if err != nil {
		log.Error().Err(err).Msg("failed to read overrides")
		http.Error(w, "Failed to read overrides", http.StatusInternalServerError)
		return
	}
	writeJSON(w, overrides)
}

func (s *Service) handlePutOverrides(w http.ResponseWriter, r *http.Request) {
	var overrides map[string]bool
	if err := json.NewDecoder(r.Body).Decode(&overrides); err != nil {
		http.Error(w, "Expected JSON object of area -> active", http.StatusBadRequest)
		return
	}

	// Write failures must reach the operator, unlike read failures.
	if err := s.store.SetOverrides(r.Context(), s.config.FIR, overrides); err != nil {
		log.Error().Err(err).Msg("failed to save overrides")
		http.Error(w, "Failed to save overrides", http.StatusInternalServerError)
		return
	}
	writeJSON(w, overrides)
}

func (s *Service) handleSetOverride(w http.ResponseWriter, r *http.Request) {
	area := r.PathValue("area")

	// Absent body or absent field means activate.
	var body struct {
		Active *bool `json:"active"`
	}
	json.NewDecoder(r.Body).Decode(&body)
	active := body.Active == nil || *body.Active

	if err := s.store.SetOverride(r.Context(), s.config.FIR, area, active); err != nil {
		log.Error().Err(err).Msg("failed to set override")
		http.Error(w, "Failed to set override", http.StatusInternalServerError)
		return
	}

	overrides, err := s.store.Overrides(r.Context(), s.config.FIR)
	if err != nil {
		log.Error().Err(err).Msg("failed to read overrides")
		http.Error(w, "Failed to read overrides", http.StatusInternalServerError)
		return
	}
	writeJSON(w, overrides)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
