package server

import (
	"context"

	"github.com/preston-bernstein/mlb-matchup-service/internal/poller"
)

// Poller defines the background job behavior needed by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	RunOnce(ctx context.Context) error
	Status() poller.Status
}

// Syncer runs the schedule snapshot preload until ctx is done.
type Syncer interface {
	Run(ctx context.Context)
}
