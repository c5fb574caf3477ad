package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-matchup-service/internal/http/requestutil"
	"github.com/preston-bernstein/mlb-matchup-service/internal/logging"
	"github.com/preston-bernstein/mlb-matchup-service/internal/poller"
	"github.com/preston-bernstein/mlb-matchup-service/internal/timeutil"
)

// Refresher re-fetches and persists the schedule snapshot for a date.
type Refresher interface {
	Refresh(ctx context.Context, date string) error
}

// JobRunner runs a background job on demand.
type JobRunner interface {
	RunOnce(ctx context.Context) error
	Status() poller.Status
}

// AdminHandler exposes admin-only endpoints guarded by a bearer token.
type AdminHandler struct {
	refresher Refresher
	job       JobRunner
	token     string
	logger    *slog.Logger
	now       nowFunc
}

// NewAdminHandler constructs an AdminHandler. refresher and job may be nil.
func NewAdminHandler(refresher Refresher, job JobRunner, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		job:       job,
		token:     token,
		logger:    logger,
		now:       time.Now,
	}
}

// RefreshSnapshots re-fetches the schedule snapshot for ?date= (default today, Eastern).
func (h *AdminHandler) RefreshSnapshots(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "snapshot writer not configured", logger)
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = timeutil.TodayEastern(h.now())
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		logging.Warn(logger, "admin snapshot invalid date", logging.FieldDate, date)
		writeError(w, r, http.StatusBadRequest, "invalid date format", logger)
		return
	}

	if err := h.refresher.Refresh(r.Context(), date); err != nil {
		logging.Warn(logger, "admin snapshot refresh failed", logging.FieldDate, date, "err", err)
		writeError(w, r, http.StatusBadGateway, "failed to refresh schedule", logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":   date,
		"status": "ok",
	}, logger)
	logging.Info(logger, "admin snapshot written", logging.FieldDate, date)
}

type jobStatus struct {
	Status              string    `json:"status"`
	Count               int       `json:"count"`
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastSuccess         time.Time `json:"lastSuccess,omitzero"`
}

// TriggerDailyStats runs the daily stats job now and reports its outcome.
func (h *AdminHandler) TriggerDailyStats(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.job == nil {
		writeError(w, r, http.StatusServiceUnavailable, "daily stats job not configured", logger)
		return
	}

	err := h.job.RunOnce(r.Context())
	st := h.job.Status()
	resp := jobStatus{
		Status:              "ok",
		Count:               st.LastCount,
		ConsecutiveFailures: st.ConsecutiveFailures,
		LastError:           st.LastError,
		LastSuccess:         st.LastSuccess,
	}
	if err != nil {
		logging.Warn(logger, "admin daily stats failed", "err", err)
		resp.Status = "failed"
		writeJSON(w, http.StatusBadGateway, resp, logger)
		return
	}
	logging.Info(logger, "admin daily stats complete", logging.FieldCount, st.LastCount)
	writeJSON(w, http.StatusOK, resp, logger)
}

func (h *AdminHandler) guard(w http.ResponseWriter, r *http.Request) bool {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return false
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return false
	}
	return true
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
