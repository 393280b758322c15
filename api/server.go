package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/wricardo/mcp-training/cascadia/game/config"
	"github.com/wricardo/mcp-training/cascadia/game/engine"
	"github.com/wricardo/mcp-training/cascadia/game/service"
	"github.com/wricardo/mcp-training/cascadia/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil.
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Sessions
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Player boards
	players := api.PathPrefix("/sessions/{id}/players/{player}").Subrouter()
	players.HandleFunc("/tiles", s.handlePlaceTile).Methods("POST")
	players.HandleFunc("/tokens", s.handlePlaceToken).Methods("POST")
	players.HandleFunc("/nature", s.handleSpendNature).Methods("POST")
	players.HandleFunc("/valid-positions", s.handleValidPositions).Methods("GET")

	// Scoring
	api.HandleFunc("/sessions/{id}/scores", s.handleGetScores).Methods("GET")
	api.HandleFunc("/sessions/{id}/final", s.handleFinalize).Methods("POST")
	api.HandleFunc("/score", s.handleScoreBoard).Methods("POST")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service errors onto HTTP status codes
func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrPlayerNotFound),
		errors.Is(err, config.ErrConfigNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrIllegalPlacement),
		errors.Is(err, service.ErrSessionFinalized),
		errors.Is(err, service.ErrNoNatureTokens):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, config.ErrInvalidConfig):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) broadcast(sessionID, event string, data any) {
	if s.hub != nil {
		s.hub.Broadcast(sessionID, event, data)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Session handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID string `json:"config_id,omitempty"`
	}
	// an empty body selects the default config
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	session, err := s.service.CreateSession(r.Context(), req.ConfigID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(session.ID, websocket.EventSessionCreated, session)
	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort") // "created" or "accessed"
	if sortBy == "" {
		sortBy = "accessed"
	}
	order := query.Get("order")
	if order == "" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		ti, tj := sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		}
		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	total := len(sessions)
	if l, err := strconv.Atoi(query.Get("limit")); err == nil && l > 0 && l < total {
		sessions = sessions[:l]
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.service.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sessionID, websocket.EventSessionDeleted, nil)
	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Board handlers

// placeTileRequest is the body of POST .../tiles
type placeTileRequest struct {
	Position engine.Position `json:"position"`
	service.TileSpec
}

// placeTokenRequest is the body of POST .../tokens
type placeTokenRequest struct {
	Position engine.Position `json:"position"`
	Animal   string          `json:"animal"`
}

func (s *Server) handlePlaceTile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, playerName := vars["id"], vars["player"]

	var req placeTileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.PlaceTile(r.Context(), sessionID, playerName, req.Position, req.TileSpec)
	if err != nil {
		log.Printf("[TILE] session=%s player=%s pos=%v REJECTED: %v", sessionID, playerName, req.Position, err)
		respondServiceError(w, err)
		return
	}

	log.Printf("[TILE] session=%s player=%s pos=%v tiles=%d", sessionID, result.Player, result.Position, len(result.Board.Tiles))
	s.broadcast(sessionID, websocket.EventTilePlaced, result)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handlePlaceToken(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, playerName := vars["id"], vars["player"]

	var req placeTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	animal, err := engine.ParseAnimal(req.Animal)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.service.PlaceToken(r.Context(), sessionID, playerName, req.Position, animal)
	if err != nil {
		log.Printf("[TOKEN] session=%s player=%s %s at %v REJECTED: %v", sessionID, playerName, animal, req.Position, err)
		respondServiceError(w, err)
		return
	}

	log.Printf("[TOKEN] session=%s player=%s %s at %v nature=%d", sessionID, result.Player, animal, result.Position, result.NatureTokens)
	s.broadcast(sessionID, websocket.EventTokenPlaced, result)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSpendNature(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	state, err := s.service.SpendNatureToken(r.Context(), sessionID, vars["player"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sessionID, websocket.EventNatureSpent, state)
	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleValidPositions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	positions, err := s.service.ValidPositions(r.Context(), vars["id"], vars["player"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"count":     len(positions),
		"positions": positions,
	})
}

// Scoring handlers

func (s *Server) handleGetScores(w http.ResponseWriter, r *http.Request) {
	scores, err := s.service.GetScores(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, scores)
}

func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	result, err := s.service.FinalizeScores(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sessionID, websocket.EventScoresFinal, result)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleScoreBoard(w http.ResponseWriter, r *http.Request) {
	var req service.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.ScoreBoard(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Configuration handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.service.LoadConfig(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

// handleCreateConfig saves the body under ?id=, or under the slug of its name
func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var cfg config.GameConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	configID := r.URL.Query().Get("id")
	if configID == "" {
		configID = strings.ToLower(strings.Join(strings.Fields(cfg.Name), "-"))
	}
	if configID == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}

	if err := s.service.SaveConfig(r.Context(), configID, &cfg); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message":   "Configuration saved successfully",
		"config_id": configID,
		"saved_at":  time.Now().UTC(),
	})
}

// handleWebSocket attaches a client to ?session=<id>
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "websocket disabled", http.StatusServiceUnavailable)
		return
	}
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}
	if _, err := s.service.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}
	s.hub.ServeWS(w, r, sessionID)
}
