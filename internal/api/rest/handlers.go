package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/fortuna/hardwood/internal/service"
	"github.com/fortuna/hardwood/internal/store"
	"github.com/fortuna/hardwood/internal/store/repository"
	"github.com/fortuna/hardwood/internal/teams"
)

// Handler serves read queries over the store.
type Handler struct {
	db        *store.Database
	games     *repository.GameRepository
	boxscores *repository.BoxscoreRepository
	teams     *repository.TeamRepository
	stats     *service.StatsService
	log       zerolog.Logger
}

// NewHandler creates a handler with its repositories.
func NewHandler(db *store.Database, log zerolog.Logger) *Handler {
	return &Handler{
		db:        db,
		games:     repository.NewGameRepository(db),
		boxscores: repository.NewBoxscoreRepository(db),
		teams:     repository.NewTeamRepository(db),
		stats:     service.NewStatsService(db, teams.NewResolver()),
		log:       log,
	}
}

// HealthCheck reports process and database health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "Database unreachable", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// GetTeams returns the franchise reference table.
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.GetAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch teams", err)
		return
	}
	respondJSON(w, http.StatusOK, teams)
}

// GetGamesByDate returns games on a calendar date (?date=YYYY-MM-DD).
func (h *Handler) GetGamesByDate(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		respondError(w, http.StatusBadRequest, "Missing query parameter 'date'", nil)
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	games, err := h.games.GetByDate(r.Context(), date)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch games", err)
		return
	}
	respondJSON(w, http.StatusOK, games)
}

// GetGame returns one game by id.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromRequest(w, r)
	if !ok {
		return
	}

	game, err := h.games.GetByID(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}
	respondJSON(w, http.StatusOK, game)
}

// GetGameBoxscore returns one game's player rows.
func (h *Handler) GetGameBoxscore(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromRequest(w, r)
	if !ok {
		return
	}

	rows, err := h.boxscores.GetPlayerRowsByGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch boxscore", err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// GetGameTotals returns one game's team-totals rows.
func (h *Handler) GetGameTotals(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromRequest(w, r)
	if !ok {
		return
	}

	rows, err := h.boxscores.GetTeamTotalsByGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch totals", err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// GetGameSummary returns the full assembled view of one game.
func (h *Handler) GetGameSummary(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromRequest(w, r)
	if !ok {
		return
	}

	summary, err := h.stats.GetGameSummary(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game summary not available", err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// GetTeamAverages returns a team's per-game averages for one season
// (?season=YYYY, the season's closing year).
func (h *Handler) GetTeamAverages(w http.ResponseWriter, r *http.Request) {
	seasonStr := r.URL.Query().Get("season")
	season, err := strconv.Atoi(seasonStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing or invalid query parameter 'season'", err)
		return
	}

	avg, err := h.stats.GetTeamSeasonAverages(r.Context(), mux.Vars(r)["team"], season)
	if err != nil {
		respondError(w, http.StatusNotFound, "Team averages not available", err)
		return
	}
	respondJSON(w, http.StatusOK, avg)
}

func gameIDFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	gameID, err := strconv.Atoi(mux.Vars(r)["gameID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return 0, false
	}
	return gameID, true
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	json.NewEncoder(w).Encode(response)
}
