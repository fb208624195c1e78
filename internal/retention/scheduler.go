package retention

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// StartScheduler runs the purge sweep hourly, plus once immediately at
// startup. The returned cron can be stopped to halt the sweep.
func StartScheduler(ctx context.Context, policy *Policy) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		if _, err := policy.PurgeExpired(ctx); err != nil {
			slog.Error("retention sweep failed", "error", err)
		}
	})
	if err != nil {
		return nil, err
	}

	if _, err := policy.PurgeExpired(ctx); err != nil {
		slog.Error("startup retention sweep failed", "error", err)
	}

	c.Start()
	slog.Info("retention scheduler started", "interval", "hourly")
	return c, nil
}
