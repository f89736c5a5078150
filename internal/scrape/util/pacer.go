package util

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Pacer sleeps a uniformly random duration in [min, max] between upstream
// requests so no source hammers a host at a fixed cadence.
type Pacer struct {
	min, max time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func NewPacer(min, max time.Duration) *Pacer {
	if max < min {
		max = min
	}
	return &Pacer{
		min: min,
		max: max,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Wait blocks for the sampled delay or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	d := p.min
	if span := p.max - p.min; span > 0 {
		d += time.Duration(p.rng.Int63n(int64(span) + 1))
	}
	p.mu.Unlock()

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
