// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/gridiron/internal/auth"
	"github.com/tomtom215/gridiron/internal/database"
	"github.com/tomtom215/gridiron/internal/logging"
	"github.com/tomtom215/gridiron/internal/middleware"
	"github.com/tomtom215/gridiron/internal/models"
)

// Store is the read side of the database used by the handlers.
type Store interface {
	Ping(ctx context.Context) error
	ListTeams(ctx context.Context, conference string) ([]models.Team, error)
	ListGames(ctx context.Context, f database.GameFilter) ([]models.Game, error)
	ListPlays(ctx context.Context, f database.GameFilter) ([]models.Play, error)
	ListLivePlays(ctx context.Context, gameID int64) ([]models.Play, error)
	ListPlayerSeasonStats(ctx context.Context, f database.StatFilter) ([]models.PlayerSeasonStat, error)
	ListSPRatings(ctx context.Context, f database.StatFilter) ([]models.SPRating, error)
	ListRecruits(ctx context.Context, f database.StatFilter) ([]models.Recruit, error)
	ListGameWeather(ctx context.Context, f database.GameFilter) ([]models.GameWeather, error)
	Scoreboard(ctx context.Context, conference string) ([]models.ScoreboardGame, error)
}

const msgInternalError = "Internal server error."

// Handler serves the football resources.
type Handler struct {
	db Store
}

// NewHandler returns a Handler reading from db.
func NewHandler(db Store) *Handler {
	return &Handler{db: db}
}

// respondList writes rows as a JSON array. A nil slice is written as [].
func respondList[T any](w http.ResponseWriter, r *http.Request, rows []T, err error) {
	if err != nil {
		respondServerError(w, r, err)
		return
	}
	if rows == nil {
		rows = []T{}
	}
	middleware.WriteJSON(w, http.StatusOK, rows)
}

func respondServerError(w http.ResponseWriter, r *http.Request, err error) {
	logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	middleware.WriteMessage(w, http.StatusInternalServerError, msgInternalError)
}

func respondBadRequest(w http.ResponseWriter, err error) {
	var perr *paramError
	if errors.As(err, &perr) {
		middleware.WriteMessage(w, http.StatusBadRequest, perr.msg)
		return
	}
	middleware.WriteMessage(w, http.StatusBadRequest, err.Error())
}

// Info reports the caller's tier and remaining monthly calls. Keyless
// callers get zeros.
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	info := models.Info{}
	if caller := auth.CallerFromContext(r.Context()); caller.HasIdentity() {
		info.PatronLevel = caller.Tier
		info.RemainingCalls = caller.RemainingCalls
	}
	middleware.WriteJSON(w, http.StatusOK, info)
}

func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	var p conferenceParams
	if err := parseParams(r.URL.Query(), &p, func(q *queryParams) {
		p.Conference = q.str("conference")
	}); err != nil {
		respondBadRequest(w, err)
		return
	}

	teams, err := h.db.ListTeams(r.Context(), p.Conference)
	respondList(w, r, teams, err)
}

func (h *Handler) Games(w http.ResponseWriter, r *http.Request) {
	p, ok := h.gameParams(w, r)
	if !ok {
		return
	}
	games, err := h.db.ListGames(r.Context(), p.filter())
	respondList(w, r, games, err)
}

func (h *Handler) Plays(w http.ResponseWriter, r *http.Request) {
	var p playParams
	if err := parseParams(r.URL.Query(), &p, func(q *queryParams) {
		p.Year = q.intVal("year")
		p.Week = q.intVal("week")
		p.Team = q.str("team")
	}); err != nil {
		respondBadRequest(w, err)
		return
	}

	plays, err := h.db.ListPlays(r.Context(), database.GameFilter{Year: p.Year, Week: p.Week, Team: p.Team})
	respondList(w, r, plays, err)
}

func (h *Handler) PlayerSeasonStats(w http.ResponseWriter, r *http.Request) {
	p, ok := h.seasonParams(w, r)
	if !ok {
		return
	}
	stats, err := h.db.ListPlayerSeasonStats(r.Context(), p.filter())
	respondList(w, r, stats, err)
}

func (h *Handler) SPRatings(w http.ResponseWriter, r *http.Request) {
	p, ok := h.seasonParams(w, r)
	if !ok {
		return
	}
	ratings, err := h.db.ListSPRatings(r.Context(), p.filter())
	respondList(w, r, ratings, err)
}

func (h *Handler) Recruits(w http.ResponseWriter, r *http.Request) {
	p, ok := h.seasonParams(w, r)
	if !ok {
		return
	}
	recruits, err := h.db.ListRecruits(r.Context(), p.filter())
	respondList(w, r, recruits, err)
}

// LivePlays lists one game's plays, newest first. Premium.
func (h *Handler) LivePlays(w http.ResponseWriter, r *http.Request) {
	var p livePlayParams
	if err := parseParams(r.URL.Query(), &p, func(q *queryParams) {
		p.GameID = q.int64Val("gameId")
	}); err != nil {
		respondBadRequest(w, err)
		return
	}

	plays, err := h.db.ListLivePlays(r.Context(), p.GameID)
	respondList(w, r, plays, err)
}

// GameWeather is premium.
func (h *Handler) GameWeather(w http.ResponseWriter, r *http.Request) {
	p, ok := h.gameParams(w, r)
	if !ok {
		return
	}
	weather, err := h.db.ListGameWeather(r.Context(), p.filter())
	respondList(w, r, weather, err)
}

// Scoreboard lists in-progress and scheduled games. Premium.
func (h *Handler) Scoreboard(w http.ResponseWriter, r *http.Request) {
	var p conferenceParams
	if err := parseParams(r.URL.Query(), &p, func(q *queryParams) {
		p.Conference = q.str("conference")
	}); err != nil {
		respondBadRequest(w, err)
		return
	}

	games, err := h.db.Scoreboard(r.Context(), p.Conference)
	respondList(w, r, games, err)
}

func (h *Handler) gameParams(w http.ResponseWriter, r *http.Request) (gameParams, bool) {
	var p gameParams
	if err := parseParams(r.URL.Query(), &p, func(q *queryParams) {
		p.Year = q.intVal("year")
		p.Week = q.intVal("week")
		p.Team = q.str("team")
	}); err != nil {
		respondBadRequest(w, err)
		return p, false
	}
	return p, true
}

func (h *Handler) seasonParams(w http.ResponseWriter, r *http.Request) (seasonStatParams, bool) {
	var p seasonStatParams
	if err := parseParams(r.URL.Query(), &p, func(q *queryParams) {
		p.Year = q.intVal("year")
		p.Team = q.str("team")
		p.Category = q.str("category")
	}); err != nil {
		respondBadRequest(w, err)
		return p, false
	}
	return p, true
}
