package testutil

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/preston-bernstein/mlb-matchup-service/internal/logging"
)

// NewBufferLogger returns a debug-level text logger writing to the returned buffer.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logging.NewLogger(logging.Config{Level: "debug", Output: &buf}), &buf
}

// NowAt returns a clock fixed at t.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
