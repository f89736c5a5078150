// Package scheduler drives the daily aggregation pass. DailyAt fires at a
// wall-clock time; Every is a plain interval ticker for auxiliary work.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type Task func(ctx context.Context) error

func Every(ctx context.Context, interval time.Duration, name string, log zerolog.Logger, task Task) {
	t := time.NewTicker(interval)
	defer t.Stop()

	// run immediately
	go func() {
		if err := task(ctx); err != nil {
			log.Error().Err(err).Str("task", name).Msg("task error")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := task(ctx); err != nil {
				log.Error().Err(err).Str("task", name).Msg("task error")
			}
		}
	}
}

// DailyAt blocks, firing task once per day at hour:minute local time.
// Unlike Every it does not run immediately on start.
func DailyAt(ctx context.Context, hour, minute int, name string, log zerolog.Logger, task Task) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("invalid schedule %02d:%02d", hour, minute)
	}

	for {
		next := nextFire(time.Now(), hour, minute)
		log.Info().Str("task", name).Time("next", next).Msg("scheduled")

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			if err := task(ctx); err != nil {
				log.Error().Err(err).Str("task", name).Msg("task error")
			}
		}
	}
}

func nextFire(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
