package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"mission-tracker/internal/config"
	"mission-tracker/internal/constants"
	"mission-tracker/internal/docstore"
	"mission-tracker/internal/domain"
	"mission-tracker/internal/middleware"
	"mission-tracker/internal/service"
)

const (
	bannerMessage     = "Misión AMVISION 10K Backend Ready"
	completionMessage = "¡Progreso registrado! Sigue avanzando."
)

// Server exposes the mission tracker over HTTP with JSON bodies.
type Server struct {
	catalog  *service.CatalogService
	players  *service.PlayerService
	progress *service.ProgressService
	store    docstore.Store
	cfg      *config.Config
	logger   zerolog.Logger
}

func NewServer(
	catalog *service.CatalogService,
	players *service.PlayerService,
	progress *service.ProgressService,
	store docstore.Store,
	cfg *config.Config,
	logger zerolog.Logger,
) *Server {
	return &Server{
		catalog:  catalog,
		players:  players,
		progress: progress,
		store:    store,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(s.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/", s.handleRoot)
	r.Get("/test", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/bootstrap", s.handleBootstrap)
		r.Post("/player", s.handleRegisterPlayer)
		r.Get("/milestones", s.handleListMilestones)
		r.Post("/complete", s.handleCompleteMilestone)
		r.Get("/player/summary", s.handlePlayerSummary)
	})

	return r
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type bootstrapResponse struct {
	MilestonesCreated int `json:"milestones_created"`
}

// registerPlayerRequest is the JSON body for POST /api/player.
type registerPlayerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type registerPlayerResponse struct {
	PlayerID string `json:"player_id"`
}

// completeMilestoneRequest is the JSON body for POST /api/complete.
type completeMilestoneRequest struct {
	PlayerEmail     string  `json:"player_email"`
	MilestoneID     string  `json:"milestone_id"`
	Speed           string  `json:"speed"`
	RevenueIncrease float64 `json:"revenue_increase"`
}

type completeMilestoneResponse struct {
	CoinsAwarded  int     `json:"av_coins_awarded"`
	Revenue       float64 `json:"revenue_usd"`
	UnlockedWorld *string `json:"unlocked_world"`
	Message       string  `json:"message"`
}

type playerSummaryResponse struct {
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	Coins               int      `json:"av_coins"`
	Revenue             float64  `json:"revenue_usd"`
	CompletedMilestones []string `json:"completed_milestones"`
	UnlockedWorlds      []string `json:"unlocked_worlds"`
}

type healthResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabasePath     string   `json:"database_path"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: bannerMessage})
}

// handleHealth reports storage connectivity. Always responds 200; failures
// show up in the body so the probe itself never flaps.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Backend:          "ok",
		Database:         "not available",
		DatabasePath:     s.cfg.DBPath,
		ConnectionStatus: "not connected",
		Collections:      []string{},
	}

	if err := s.store.Ping(r.Context()); err != nil {
		resp.Database = "error: " + err.Error()
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp.Database = "connected"
	resp.ConnectionStatus = "connected"

	names, err := s.store.Collections(r.Context())
	if err != nil {
		resp.Database = "connected but error: " + err.Error()
		writeJSON(w, http.StatusOK, resp)
		return
	}
	if len(names) > constants.HealthCollectionLimit {
		names = names[:constants.HealthCollectionLimit]
	}
	resp.Collections = names

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBootstrap(w http.ResponseWriter, r *http.Request) {
	created, err := s.catalog.Ensure(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bootstrapResponse{MilestonesCreated: created})
}

func (s *Server) handleRegisterPlayer(w http.ResponseWriter, r *http.Request) {
	var req registerPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "email is not valid")
		return
	}

	id, err := s.players.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, registerPlayerResponse{PlayerID: id})
}

func (s *Server) handleListMilestones(w http.ResponseWriter, r *http.Request) {
	milestones, err := s.catalog.List(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, milestones)
}

func (s *Server) handleCompleteMilestone(w http.ResponseWriter, r *http.Request) {
	var req completeMilestoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PlayerEmail == "" || req.MilestoneID == "" {
		writeError(w, http.StatusBadRequest, "player_email and milestone_id are required")
		return
	}

	result, err := s.progress.Complete(r.Context(), req.PlayerEmail, req.MilestoneID, req.Speed, req.RevenueIncrease)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	resp := completeMilestoneResponse{
		CoinsAwarded: result.CoinsAwarded,
		Revenue:      result.Revenue,
		Message:      completionMessage,
	}
	if result.UnlockedWorld != "" {
		resp.UnlockedWorld = &result.UnlockedWorld
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePlayerSummary(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "email query parameter is required")
		return
	}

	player, err := s.players.Summary(r.Context(), email)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, playerSummaryResponse{
		Name:                player.Name,
		Email:               player.Email,
		Coins:               player.Coins,
		Revenue:             player.Revenue,
		CompletedMilestones: player.CompletedMilestones.Values(),
		UnlockedWorlds:      player.UnlockedWorlds.Values(),
	})
}

func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrPlayerNotFound) {
		writeError(w, http.StatusNotFound, "Player not found")
		return
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	writeError(w, http.StatusInternalServerError, "storage unavailable")
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Status is already written; an encode failure has nowhere to go.
	_ = json.NewEncoder(w).Encode(v)
}
