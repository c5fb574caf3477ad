package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"strings"
	"unicode"

	"github.com/preston-bernstein/mlb-matchup-service/internal/app/matchups"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
	"github.com/preston-bernstein/mlb-matchup-service/internal/export"
	"github.com/preston-bernstein/mlb-matchup-service/internal/lineup"
	"github.com/preston-bernstein/mlb-matchup-service/internal/logging"
	"github.com/preston-bernstein/mlb-matchup-service/internal/matchup"
	"github.com/preston-bernstein/mlb-matchup-service/internal/severity"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"
	formatXLSX = "xlsx"

	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// styles maps a metric name to its cell style.
type styles map[string]severity.Style

type statsResponse struct {
	matchups.PlayerStats
	Styles []styles `json:"styles"`
}

type matchupResponse struct {
	matchups.MatchupReport
	// DeltaStyles is keyed by pitch type, then metric.
	DeltaStyles map[string]styles `json:"deltaStyles"`
}

// Stats returns one player's per-pitch-type rows over ?start=&end=.
// The role comes from the path; ?format=csv downloads the rows instead.
func (h *Handler) Stats(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	role, err := pitches.ParseRole(r.PathValue("role"))
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "role must be pitcher or batter", logger)
		return
	}
	q := r.URL.Query()
	name := strings.TrimSpace(q.Get("name"))
	if name == "" {
		writeError(w, r, nethttp.StatusBadRequest, "name is required", logger)
		return
	}
	format, ok := formatParam(w, r, logger, formatJSON, formatCSV)
	if !ok {
		return
	}
	rng, ok := h.rangeParam(w, r, logger)
	if !ok {
		return
	}

	ps := h.svc.PlayerStats(r.Context(), role, name, rng)
	logging.Info(logger, "served player stats",
		logging.FieldPlayer, name, logging.FieldRole, string(role), logging.FieldCount, len(ps.Rows))

	if format == formatCSV {
		rec := export.StatsRecord{PlayerName: name, Rows: ps.Rows}
		if ps.Player != nil {
			rec.PlayerID = ps.Player.PlayerID
			rec.PlayerName = ps.Player.FullName
		}
		writeAttachment(w, contentTypeCSV, slug(string(role)+"_"+name)+".csv", func(w nethttp.ResponseWriter) error {
			return export.WriteStatsCSV(w, role, []export.StatsRecord{rec})
		}, logger)
		return
	}

	resp := statsResponse{PlayerStats: ps, Styles: make([]styles, 0, len(ps.Rows))}
	for _, row := range ps.Rows {
		rowStyles := make(styles, len(pitches.DeltaMetrics()))
		for _, m := range pitches.DeltaMetrics() {
			rowStyles[string(m)] = severity.For(m.Of(row), severity.ModeFor(role, m))
		}
		resp.Styles = append(resp.Styles, rowStyles)
	}
	writeJSON(w, nethttp.StatusOK, resp, logger)
}

// Matchups joins a pitcher's rows with a batter's rows and reports the deltas.
func (h *Handler) Matchups(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	q := r.URL.Query()
	pitcher := strings.TrimSpace(q.Get("pitcher"))
	batter := strings.TrimSpace(q.Get("batter"))
	if pitcher == "" || batter == "" {
		writeError(w, r, nethttp.StatusBadRequest, "pitcher and batter are required", logger)
		return
	}
	mode, err := matchup.ParseJoinMode(q.Get("join"))
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "join must be inner or outer", logger)
		return
	}
	format, ok := formatParam(w, r, logger, formatJSON, formatCSV, formatXLSX)
	if !ok {
		return
	}
	rng, ok := h.rangeParam(w, r, logger)
	if !ok {
		return
	}

	report := h.svc.Matchup(r.Context(), pitcher, batter, rng, mode)
	logging.Info(logger, "served matchup",
		"pitcher", pitcher, "batter", batter, "join", mode.String(), logging.FieldCount, len(report.Table.Rows))

	base := slug(pitcher + "_vs_" + batter)
	switch format {
	case formatCSV:
		writeAttachment(w, contentTypeCSV, base+".csv", func(w nethttp.ResponseWriter) error {
			return export.WriteMatchupCSV(w, report.Table)
		}, logger)
	case formatXLSX:
		writeAttachment(w, contentTypeXLSX, base+".xlsx", func(w nethttp.ResponseWriter) error {
			return export.WriteMatchupXLSX(w, report.Table)
		}, logger)
	default:
		writeJSON(w, nethttp.StatusOK, matchupResponse{
			MatchupReport: report,
			DeltaStyles:   deltaStyles(report.Table),
		}, logger)
	}
}

// GameMatchups runs both probable starters of a game against the opposing lineups.
func (h *Handler) GameMatchups(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	gamePk, ok := gamePkParam(w, r, logger)
	if !ok {
		return
	}
	date, ok := h.dateParam(w, r, logger)
	if !ok {
		return
	}
	report, err := h.svc.GameMatchups(r.Context(), date, gamePk)
	switch {
	case errors.Is(err, lineup.ErrGameNotFound):
		writeError(w, r, nethttp.StatusNotFound, "game not found", logger)
		return
	case err != nil:
		logging.Warn(logger, "game matchups unavailable", logging.FieldGamePk, gamePk, logging.FieldDate, date, "err", err)
		writeError(w, r, nethttp.StatusBadGateway, "schedule unavailable", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, report, logger)
}

// CompareProbables compares the probable starters of every game on ?date=.
func (h *Handler) CompareProbables(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	date, ok := h.dateParam(w, r, logger)
	if !ok {
		return
	}
	comparisons, err := h.svc.CompareProbables(r.Context(), date)
	if err != nil {
		logging.Warn(logger, "probable comparison unavailable", logging.FieldDate, date, "err", err)
		writeError(w, r, nethttp.StatusBadGateway, "schedule unavailable", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"date":  date,
		"games": comparisons,
	}, logger)
}

func (h *Handler) rangeParam(w nethttp.ResponseWriter, r *nethttp.Request, logger *slog.Logger) (matchups.DateRange, bool) {
	q := r.URL.Query()
	rng, err := h.svc.DateRange(strings.TrimSpace(q.Get("start")), strings.TrimSpace(q.Get("end")))
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), logger)
		return matchups.DateRange{}, false
	}
	return rng, true
}

func formatParam(w nethttp.ResponseWriter, r *nethttp.Request, logger *slog.Logger, allowed ...string) (string, bool) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		return formatJSON, true
	}
	for _, a := range allowed {
		if format == a {
			return format, true
		}
	}
	writeError(w, r, nethttp.StatusBadRequest, "unsupported format "+format, logger)
	return "", false
}

func deltaStyles(table matchup.Table) map[string]styles {
	out := make(map[string]styles, len(table.Rows))
	for _, row := range table.Rows {
		rowStyles := make(styles, len(row.Cells))
		for _, c := range row.Cells {
			rowStyles[string(c.Metric)] = severity.For(c.Delta, severity.DeltaMode)
		}
		out[row.PitchType] = rowStyles
	}
	return out
}

// slug keeps letters and digits and folds everything else to underscores.
func slug(s string) string {
	var b strings.Builder
	prevUnderscore := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevUnderscore = false
			continue
		}
		if !prevUnderscore {
			b.WriteByte('_')
			prevUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}
