package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/wricardo/battlegrid/game/engine"
	"github.com/wricardo/battlegrid/game/service"
	"github.com/wricardo/battlegrid/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.MatchService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(matchService service.MatchService, hub *websocket.Hub) *Server {
	s := &Server{
		service: matchService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// API routes with clean REST patterns
	api := s.router.PathPrefix("/api").Subrouter()

	// Match management
	api.HandleFunc("/matches", s.handleCreateMatch).Methods("POST")
	api.HandleFunc("/matches", s.handleListMatches).Methods("GET")
	api.HandleFunc("/matches/{id}", s.handleGetMatch).Methods("GET")
	api.HandleFunc("/matches/{id}", s.handleDeleteMatch).Methods("DELETE")

	// Setup operations
	api.HandleFunc("/matches/{id}/place", s.handlePlaceShip).Methods("POST")
	api.HandleFunc("/matches/{id}/autoplace", s.handleAutoPlace).Methods("POST")
	api.HandleFunc("/matches/{id}/start", s.handleStartMatch).Methods("POST")

	// Play operations
	api.HandleFunc("/matches/{id}/shoot", s.handleShoot).Methods("POST")
	api.HandleFunc("/matches/{id}/skip", s.handleSkipTurn).Methods("POST")

	// Match state
	api.HandleFunc("/matches/{id}/board/{player}", s.handleGetBoard).Methods("GET")
	api.HandleFunc("/matches/{id}/moves", s.handleGetMoveLog).Methods("GET")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	// Health
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusForError maps service errors to HTTP status codes. Rule violations
// are conflicts, bad references are not-found, everything else is a server
// error.
func statusForError(err error) int {
	switch {
	case errors.Is(err, engine.ErrOutOfBounds),
		errors.Is(err, engine.ErrOverlap),
		errors.Is(err, engine.ErrAdjacentShip),
		errors.Is(err, engine.ErrDuplicateShip),
		errors.Is(err, engine.ErrAlreadyShot),
		errors.Is(err, engine.ErrNotReady),
		errors.Is(err, engine.ErrNotStarted),
		errors.Is(err, engine.ErrSetupOver),
		errors.Is(err, engine.ErrWrongTurn),
		errors.Is(err, engine.ErrGameOver),
		errors.Is(err, engine.ErrSelfShot),
		errors.Is(err, engine.ErrPlayerDefeated),
		errors.Is(err, engine.ErrPlacementExhausted):
		return http.StatusConflict
	case errors.Is(err, engine.ErrUnknownPlayer),
		strings.Contains(err.Error(), "not found"):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// broadcast pushes the latest match summary to WebSocket subscribers
func (s *Server) broadcast(r *http.Request, matchID string) {
	if s.hub == nil {
		return
	}
	info, err := s.service.GetMatch(r.Context(), matchID)
	if err != nil {
		return
	}
	s.hub.BroadcastToMatch(matchID, info)
}

// Match Handlers

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID string `json:"config_id,omitempty"`
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	match, err := s.service.CreateMatch(r.Context(), req.ConfigID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, match)
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.service.ListMatches(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Parse query parameters
	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of matches to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(matches, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = matches[i].CreatedAt, matches[j].CreatedAt
		} else { // "accessed"
			ti, tj = matches[i].LastAccessedAt, matches[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj) // desc
	})

	limit := len(matches)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(matches) {
			limit = l
		}
	}
	matches = matches[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(matches),
		"matches": matches,
		"sort":    sortBy,
		"order":   order,
	})
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]

	match, err := s.service.GetMatch(r.Context(), matchID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, match)
}

func (s *Server) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]

	if err := s.service.DeleteMatch(r.Context(), matchID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Match %s deleted", matchID),
	})
}

// Setup Handlers

func (s *Server) handlePlaceShip(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]

	var req service.PlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.PlaceShip(r.Context(), matchID, req)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	s.broadcast(r, matchID)
	fmt.Printf("[PLACE] match=%s player=%d ship=%s anchor=(%d,%d) ready=%v\n",
		matchID, req.Player, req.Ship, req.Anchor.X, req.Anchor.Y, result.Ready)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleAutoPlace(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]

	var req struct {
		Player int   `json:"player"`
		Seed   int64 `json:"seed,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.AutoPlace(r.Context(), matchID, req.Player, req.Seed)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	s.broadcast(r, matchID)
	fmt.Printf("[AUTO] match=%s player=%d seed=%d ready=%v\n",
		matchID, req.Player, result.Seed, result.Ready)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleStartMatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]

	match, err := s.service.StartMatch(r.Context(), matchID)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	s.broadcast(r, matchID)
	fmt.Printf("[START] match=%s players=%d\n", matchID, len(match.Players))

	respondJSON(w, http.StatusOK, match)
}

// Play Handlers

func (s *Server) handleShoot(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]

	var req service.ShotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	shot, err := s.service.Shoot(r.Context(), matchID, req)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	s.broadcast(r, matchID)

	// Compact server log for observability
	outcome := "miss"
	if shot.Hit {
		outcome = "hit"
		if shot.Sunk {
			outcome = "sunk:" + shot.Ship
		}
	}
	fmt.Printf("[SHOT] match=%s %d->%d (%d,%d) %s phase=%s\n",
		matchID, shot.Attacker, shot.Target, shot.Pos.X, shot.Pos.Y, outcome, shot.Phase)

	respondJSON(w, http.StatusOK, shot)
}

func (s *Server) handleSkipTurn(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]

	var req struct {
		Player int `json:"player"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	match, err := s.service.SkipTurn(r.Context(), matchID, req.Player)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	s.broadcast(r, matchID)

	respondJSON(w, http.StatusOK, match)
}

// State Handlers

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	player, err := strconv.Atoi(vars["player"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid player index")
		return
	}
	reveal := r.URL.Query().Get("reveal") == "true"

	board, err := s.service.GetBoard(r.Context(), matchID, player, reveal)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, board)
}

func (s *Server) handleGetMoveLog(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]

	// Parse query parameters
	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	log, err := s.service.GetMoveLog(r.Context(), matchID, opts)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, log)
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	configName := mux.Vars(r)["name"]

	// Remove .json extension if present
	configName = strings.TrimSuffix(configName, ".json")

	config, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, config)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	// Decode directly into engine.GameConfig which has the correct structure
	var gameConfig engine.GameConfig

	if err := json.NewDecoder(r.Body).Decode(&gameConfig); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if gameConfig.Name == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}

	if err := s.service.SaveConfig(r.Context(), gameConfig.Name, &gameConfig); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save config: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": gameConfig.Name,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("match")
	if matchID == "" {
		http.Error(w, "match parameter required", http.StatusBadRequest)
		return
	}

	// Verify match exists
	if _, err := s.service.GetMatch(r.Context(), matchID); err != nil {
		http.Error(w, "Invalid match", http.StatusNotFound)
		return
	}

	// Upgrade to WebSocket
	s.hub.ServeWS(w, r, matchID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
