package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNextFire(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 8, 28, 6, 0, 0, 0, loc)

	next := nextFire(now, 7, 30)
	require.Equal(t, time.Date(2026, 8, 28, 7, 30, 0, 0, loc), next)

	// already past today's slot: tomorrow
	next = nextFire(now, 5, 0)
	require.Equal(t, time.Date(2026, 8, 29, 5, 0, 0, 0, loc), next)

	// exactly on the slot: tomorrow, never immediate
	next = nextFire(time.Date(2026, 8, 28, 7, 30, 0, 0, loc), 7, 30)
	require.Equal(t, time.Date(2026, 8, 29, 7, 30, 0, 0, loc), next)
}

func TestDailyAtRejectsBadSchedule(t *testing.T) {
	err := DailyAt(context.Background(), 24, 0, "x", zerolog.Nop(), nil)
	require.Error(t, err)
	err = DailyAt(context.Background(), 7, 60, "x", zerolog.Nop(), nil)
	require.Error(t, err)
}

func TestEveryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ran := make(chan struct{}, 1)

	go Every(ctx, time.Hour, "tick", zerolog.Nop(), func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("immediate run never happened")
	}
	cancel()
}
