package smpp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	congestionAlpha     = 0.3
	congestionThrottle  = 80
	congestionPause     = 95
	congestionCooldown  = 30 * time.Second
)

// flowControl implements spec §4.6: a token bucket gating submit-class
// sends, scaled down (and, past congestionPause, stopped entirely) by an
// EWMA of peer-reported congestion_state/ESME_RTHROTTLED samples. A nil
// *flowControl means flow control is disabled (MaxRatePerSecond < 0).
type flowControl struct {
	limiter  *rate.Limiter
	baseRate float64

	mu             sync.Mutex
	ewma           float64
	throttledUntil time.Time
}

// newFlowControl builds the token bucket for maxRatePerSecond tokens/sec
// with capacity equal to the rate, per spec §4.6. maxRatePerSecond < 0
// disables flow control; 0 installs a bucket that never refills, so
// every acquire fails fast with ErrBackpressure instead of blocking.
func newFlowControl(maxRatePerSecond int) *flowControl {
	if maxRatePerSecond < 0 {
		return nil
	}
	return &flowControl{
		limiter:  rate.NewLimiter(rate.Limit(maxRatePerSecond), maxRatePerSecond),
		baseRate: float64(maxRatePerSecond),
	}
}

// acquire blocks until a token is available, ctx is cancelled, or (when
// the configured rate is exactly 0) reports ErrBackpressure immediately.
func (fc *flowControl) acquire(ctx context.Context) error {
	if fc == nil {
		return nil
	}
	if fc.baseRate == 0 {
		if !fc.limiter.Allow() {
			return ErrBackpressure
		}
		return nil
	}
	if err := fc.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("smpp: flow control wait: %w", err)
	}
	return nil
}

// observeCongestion folds a peer-reported congestion_state sample
// (0..100) into the EWMA and adjusts the bucket's effective rate.
func (fc *flowControl) observeCongestion(sample uint8) {
	if fc == nil || fc.baseRate == 0 {
		return
	}
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.ewma = congestionAlpha*float64(sample) + (1-congestionAlpha)*fc.ewma
	switch {
	case fc.ewma > congestionPause:
		fc.limiter.SetLimit(0)
	case fc.ewma > congestionThrottle:
		fc.limiter.SetLimit(rate.Limit(fc.baseRate / 2))
		fc.throttledUntil = time.Now().Add(congestionCooldown)
	default:
		if time.Now().After(fc.throttledUntil) {
			fc.limiter.SetLimit(rate.Limit(fc.baseRate))
		}
	}
}

// observeThrottled folds an ESME_RTHROTTLED response status into the
// same EWMA as a full-scale (100) congestion sample.
func (fc *flowControl) observeThrottled() {
	fc.observeCongestion(100)
}
