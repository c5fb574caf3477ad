// Command dailystats pulls per-pitch-type stats for today's probable pitchers
// and lineup batters, writes the two CSV files and exits.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/mlb-matchup-service/internal/config"
	"github.com/preston-bernstein/mlb-matchup-service/internal/logging"
	"github.com/preston-bernstein/mlb-matchup-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_JOB_RUN") == "1" {
		return
	}
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "mlb-matchup-dailystats",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	job := server.NewDailyStats(ctx, cfg, logger)
	defer func() {
		if err := job.Close(); err != nil {
			logging.Warn(logger, "close failed", "error", err)
		}
	}()

	res, err := job.Job.Run(ctx)
	if err != nil {
		logging.Error(logger, "daily stats failed", err)
		return 1
	}
	logging.Info(logger, "daily stats complete",
		logging.FieldDate, res.Date,
		"pitchers", res.Pitchers,
		"batters", res.Batters,
		"archive_errors", res.ArchiveErrs,
	)
	return 0
}
