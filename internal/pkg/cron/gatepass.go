package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/gatepass"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/clock"
)

// GatePassJobs is the batch half of the lazy+batch expiry correction:
// verification fixes the pass it touches, the sweep fixes the rest.
type GatePassJobs struct {
	passRepo gatepass.PassRepository
	clk      clock.Clock
}

func NewGatePassJobs(passRepo gatepass.PassRepository, clk clock.Clock) *GatePassJobs {
	return &GatePassJobs{
		passRepo: passRepo,
		clk:      clk,
	}
}

func (j *GatePassJobs) RegisterJobs(scheduler *Scheduler, sweepInterval time.Duration) {
	scheduler.AddJob("expire_overdue_gate_passes", sweepInterval, j.ExpireOverduePasses)
}

func (j *GatePassJobs) ExpireOverduePasses(ctx context.Context) error {
	count, err := j.passRepo.ExpireOverdue(ctx, j.clk.Now())
	if err != nil {
		return fmt.Errorf("failed to expire overdue passes: %w", err)
	}

	if count > 0 {
		slog.Info("Cron: Expired overdue gate passes", "count", count)
	}
	return nil
}
