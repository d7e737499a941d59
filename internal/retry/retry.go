package retry

import (
	"context"
	"math/rand"
	"time"
)

// Policy bounds a retryable operation: total attempts, fixed delay between
// them, and an optional jitter fraction (0..1) applied to the delay.
type Policy struct {
	Attempts int
	Delay    time.Duration
	Jitter   float64
}

// DefaultListPolicy masks transient cold-start failures of list reads:
// the initial attempt plus two retries, ~500ms apart.
var DefaultListPolicy = Policy{Attempts: 3, Delay: 500 * time.Millisecond, Jitter: 0.1}

// Do runs fn until it succeeds, the policy is exhausted, or ctx is done.
// fn may return retry=true with a nil error to ask for another attempt
// (used to re-read an empty result); the last error wins.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) (retry bool, err error)) error {
	if p.Attempts < 1 {
		p.Attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		again, err := fn(ctx)
		if err == nil && !again {
			return nil
		}
		lastErr = err

		if attempt == p.Attempts {
			break
		}
		select {
		case <-time.After(p.delay()):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}

func (p Policy) delay() time.Duration {
	if p.Jitter <= 0 {
		return p.Delay
	}
	spread := float64(p.Delay) * p.Jitter
	return p.Delay + time.Duration((rand.Float64()*2-1)*spread)
}
