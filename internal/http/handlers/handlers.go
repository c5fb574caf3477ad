package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-matchup-service/internal/app/matchups"
	"github.com/preston-bernstein/mlb-matchup-service/internal/archive"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/schedule"
	"github.com/preston-bernstein/mlb-matchup-service/internal/logging"
	"github.com/preston-bernstein/mlb-matchup-service/internal/matchup"
	"github.com/preston-bernstein/mlb-matchup-service/internal/poller"
	"github.com/preston-bernstein/mlb-matchup-service/internal/timeutil"
)

type nowFunc func() time.Time

// MatchupService computes stats and matchups.
type MatchupService interface {
	DateRange(start, end string) (matchups.DateRange, error)
	PlayerStats(ctx context.Context, role pitches.Role, name string, rng matchups.DateRange) matchups.PlayerStats
	Matchup(ctx context.Context, pitcher, batter string, rng matchups.DateRange, mode matchup.JoinMode) matchups.MatchupReport
	GameMatchups(ctx context.Context, date string, gamePk int) (matchups.GameReport, error)
	CompareProbables(ctx context.Context, date string) ([]matchups.ProbableComparison, error)
}

// ScheduleReader serves games, lineups and live state.
type ScheduleReader interface {
	GamesOn(ctx context.Context, date string) ([]schedule.Game, error)
	ProbablePitchers(ctx context.Context, date string) (map[string]schedule.Probables, error)
	LineupFor(ctx context.Context, gamePk int, liveOnly bool) (schedule.Lineups, error)
	GameState(ctx context.Context, gamePk int) (schedule.GameState, error)
}

// ArchiveReader reads archived daily stats.
type ArchiveReader interface {
	LoadRows(ctx context.Context, runDate string, role pitches.Role, playerID int) ([]archive.Record, error)
	RunDates(ctx context.Context) ([]string, error)
}

// Handler wires HTTP routes to the matchup service and schedule.
type Handler struct {
	svc      MatchupService
	sched    ScheduleReader
	archive  ArchiveReader
	logger   *slog.Logger
	now      nowFunc
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. archive and statusFn may be nil.
func NewHandler(svc MatchupService, sched ScheduleReader, archive ArchiveReader, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		sched:    sched,
		archive:  archive,
		logger:   logger,
		now:      time.Now,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic. Without a background job it is always ready.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Schedule lists the games on ?date= (default today, Eastern).
func (h *Handler) Schedule(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	date, ok := h.dateParam(w, r, logger)
	if !ok {
		return
	}
	games, err := h.sched.GamesOn(r.Context(), date)
	if err != nil {
		logging.Warn(logger, "schedule unavailable", logging.FieldDate, date, "err", err)
		writeError(w, r, nethttp.StatusBadGateway, "schedule unavailable", logger)
		return
	}
	logging.Info(logger, "served schedule", logging.FieldDate, date, logging.FieldCount, len(games))
	writeJSON(w, nethttp.StatusOK, schedule.NewDayResponse(date, games), logger)
}

// Probables maps each game on ?date= to its announced starters.
func (h *Handler) Probables(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	date, ok := h.dateParam(w, r, logger)
	if !ok {
		return
	}
	probables, err := h.sched.ProbablePitchers(r.Context(), date)
	if err != nil {
		logging.Warn(logger, "probables unavailable", logging.FieldDate, date, "err", err)
		writeError(w, r, nethttp.StatusBadGateway, "schedule unavailable", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"date":      date,
		"probables": probables,
	}, logger)
}

type lineupResponse struct {
	GamePk int      `json:"gamePk"`
	Live   bool     `json:"live"`
	Away   []string `json:"away"`
	Home   []string `json:"home"`
}

// Lineup returns both lineups of a game as "Name - POS" entries.
// ?live=true restricts them to the announced batting order.
func (h *Handler) Lineup(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	gamePk, ok := gamePkParam(w, r, logger)
	if !ok {
		return
	}
	live, err := boolParam(r.URL.Query().Get("live"))
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid live flag", logger)
		return
	}
	lineups, err := h.sched.LineupFor(r.Context(), gamePk, live)
	if err != nil {
		logging.Warn(logger, "lineup unavailable", logging.FieldGamePk, gamePk, "err", err)
		writeError(w, r, nethttp.StatusBadGateway, "lineup unavailable", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, lineupResponse{
		GamePk: gamePk,
		Live:   live,
		Away:   entryStrings(lineups.Away),
		Home:   entryStrings(lineups.Home),
	}, logger)
}

// State returns the live state of a game.
func (h *Handler) State(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	gamePk, ok := gamePkParam(w, r, logger)
	if !ok {
		return
	}
	state, err := h.sched.GameState(r.Context(), gamePk)
	if err != nil {
		logging.Warn(logger, "game state unavailable", logging.FieldGamePk, gamePk, "err", err)
		writeError(w, r, nethttp.StatusBadGateway, "game state unavailable", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, state, logger)
}

// dateParam reads ?date=, defaulting to today in Eastern Time.
func (h *Handler) dateParam(w nethttp.ResponseWriter, r *nethttp.Request, logger *slog.Logger) (string, bool) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		return timeutil.TodayEastern(h.now()), true
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", logger)
		return "", false
	}
	return date, true
}

func gamePkParam(w nethttp.ResponseWriter, r *nethttp.Request, logger *slog.Logger) (int, bool) {
	pk, err := strconv.Atoi(r.PathValue("gamePk"))
	if err != nil || pk <= 0 {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", logger)
		return 0, false
	}
	return pk, true
}

func boolParam(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

func entryStrings(entries []schedule.LineupEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.String())
	}
	return out
}

// NotFound answers unknown paths with a JSON error.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", loggerFromContext(r, h.logger))
}
