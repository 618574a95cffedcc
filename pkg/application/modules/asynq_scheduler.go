package modules

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"
)

type AsynqEntry struct {
	CronSpec string
	Task     *asynq.Task
}

// AsynqScheduler модуль периодической постановки задач в очередь asynq.
type AsynqScheduler struct {
	RedisUsername string
	RedisPassword string
	RedisAddress  string
	RedisDB       int
}

func (s AsynqScheduler) Run(
	ctx context.Context,
	g *errgroup.Group,
	entries ...AsynqEntry,
) {
	g.Go(func() error {
		redisConnection := asynq.RedisClientOpt{
			Addr:     s.RedisAddress,
			Username: s.RedisUsername,
			Password: s.RedisPassword,
			DB:       s.RedisDB,
		}

		scheduler := asynq.NewScheduler(redisConnection, &asynq.SchedulerOpts{})

		for _, e := range entries {
			if _, err := scheduler.Register(e.CronSpec, e.Task); err != nil {
				return fmt.Errorf("asynqScheduler.Register: %w", err)
			}
		}

		if err := scheduler.Start(); err != nil {
			return fmt.Errorf("asynqScheduler.Start: %w", err)
		}

		logger(ctx).Info("asynq scheduler started", slog.String("redis-address", s.RedisAddress), slog.Int("entries", len(entries)))

		<-ctx.Done()

		scheduler.Shutdown()

		logger(ctx).Info("asynq scheduler stopped", slog.String("redis-address", s.RedisAddress))

		return nil
	})
}
