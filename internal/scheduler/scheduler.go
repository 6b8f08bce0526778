package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"auctionscout/internal/config"
)

// Run executes job according to the configured mode. Oneshot runs the
// job once and propagates its error; interval and cron repeat the job
// until the context is cancelled, logging failures instead of stopping.
func Run(ctx context.Context, cfg config.SchedulerConfig, logger *zap.SugaredLogger, job func(context.Context) error) error {
	switch cfg.Mode {
	case config.ModeOneshot:
		return job(ctx)

	case config.ModeInterval:
		interval := time.Duration(cfg.IntervalS) * time.Second
		logger.Infow("scheduler started", "mode", cfg.Mode, "interval", interval)
		runLogged(ctx, logger, job)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				runLogged(ctx, logger, job)
			}
		}

	case config.ModeCron:
		c := cron.New()
		_, err := c.AddFunc(cfg.CronExpr, func() {
			runLogged(ctx, logger, job)
		})
		if err != nil {
			return fmt.Errorf("invalid cron expression %q: %w", cfg.CronExpr, err)
		}
		logger.Infow("scheduler started", "mode", cfg.Mode, "cron", cfg.CronExpr)
		c.Start()
		<-ctx.Done()
		<-c.Stop().Done()
		return nil

	default:
		return fmt.Errorf("unknown scheduler mode: %s", cfg.Mode)
	}
}

func runLogged(ctx context.Context, logger *zap.SugaredLogger, job func(context.Context) error) {
	if err := job(ctx); err != nil && ctx.Err() == nil {
		logger.Errorw("scheduled run failed", "error", err)
	}
}
