package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/mlb-matchup-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. Admin routes are mounted only
// when admin is non-nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/schedule", handler.Schedule)
	mux.HandleFunc("/schedule/probables", handler.Probables)
	mux.HandleFunc("/games/{gamePk}/lineup", handler.Lineup)
	mux.HandleFunc("/games/{gamePk}/state", handler.State)
	mux.HandleFunc("/games/{gamePk}/matchups", handler.GameMatchups)
	mux.HandleFunc("/stats/{role}", handler.Stats)
	mux.HandleFunc("/matchups", handler.Matchups)
	mux.HandleFunc("/probables/compare", handler.CompareProbables)
	mux.HandleFunc("/archive", handler.Archive)
	mux.HandleFunc("/", handler.NotFound)

	if admin != nil {
		mux.HandleFunc("/admin/snapshots/refresh", admin.RefreshSnapshots)
		mux.HandleFunc("/admin/jobs/daily-stats", admin.TriggerDailyStats)
	}
	return mux
}
