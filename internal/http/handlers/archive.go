package handlers

import (
	nethttp "net/http"
	"strconv"
	"strings"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
	"github.com/preston-bernstein/mlb-matchup-service/internal/logging"
	"github.com/preston-bernstein/mlb-matchup-service/internal/timeutil"
)

// Archive serves rows saved by the daily stats job. Without ?date= it lists
// the archived run dates.
func (h *Handler) Archive(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.archive == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "archive not configured", logger)
		return
	}
	q := r.URL.Query()
	date := strings.TrimSpace(q.Get("date"))
	if date == "" {
		dates, err := h.archive.RunDates(r.Context())
		if err != nil {
			logging.Error(logger, "archive dates failed", err)
			writeError(w, r, nethttp.StatusInternalServerError, "archive unavailable", logger)
			return
		}
		if dates == nil {
			dates = []string{}
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"dates": dates}, logger)
		return
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", logger)
		return
	}
	role, err := pitches.ParseRole(q.Get("role"))
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "role must be pitcher or batter", logger)
		return
	}
	playerID := 0
	if raw := strings.TrimSpace(q.Get("player_id")); raw != "" {
		playerID, err = strconv.Atoi(raw)
		if err != nil || playerID <= 0 {
			writeError(w, r, nethttp.StatusBadRequest, "invalid player_id", logger)
			return
		}
	}

	records, err := h.archive.LoadRows(r.Context(), date, role, playerID)
	if err != nil {
		logging.Error(logger, "archive load failed", err, logging.FieldDate, date, logging.FieldRole, string(role))
		writeError(w, r, nethttp.StatusInternalServerError, "archive unavailable", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"date":    date,
		"role":    role,
		"records": records,
	}, logger)
}
