package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// CartPurgeJobName is the registered name of the stale cart purge
const CartPurgeJobName = "cart_purge"

// CartPurger deletes carts that have not been touched for maxAge
type CartPurger interface {
	PurgeStale(ctx context.Context, maxAge time.Duration) (int64, error)
}

// NewCartPurgeJob returns the job that drops abandoned session carts
func NewCartPurgeJob(purger CartPurger, maxAge time.Duration, logger *zap.Logger) Job {
	return JobFunc(func(ctx context.Context) error {
		removed, err := purger.PurgeStale(ctx, maxAge)
		if err != nil {
			return err
		}
		logger.Info("Purged stale carts", zap.Int64("removed", removed), zap.Duration("max_age", maxAge))
		return nil
	})
}
