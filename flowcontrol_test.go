package smpp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFlowControl_NegativeDisables(t *testing.T) {
	fc := newFlowControl(-1)
	assert.Nil(t, fc)
	// acquire on a nil *flowControl must be a no-op, not a panic.
	assert.NoError(t, fc.acquire(context.Background()))
}

func TestNewFlowControl_ZeroRateBackpressure(t *testing.T) {
	fc := newFlowControl(0)
	require.NotNil(t, fc)

	err := fc.acquire(context.Background())
	assert.ErrorIs(t, err, ErrBackpressure)
}

func TestNewFlowControl_PositiveRateGrantsToken(t *testing.T) {
	fc := newFlowControl(100)
	require.NotNil(t, fc)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, fc.acquire(ctx))
}

func TestObserveCongestion_ThrottleHalvesRate(t *testing.T) {
	fc := newFlowControl(100)
	require.NotNil(t, fc)

	fc.observeCongestion(90)
	assert.InDelta(t, 90*congestionAlpha, fc.ewma, 0.001)
	// One sample from a zero EWMA only reaches 27; six more samples of 90
	// lift it to about 82.6, past congestionThrottle.
	for i := 0; i < 6; i++ {
		fc.observeCongestion(90)
	}
	assert.True(t, fc.limiter.Limit() < 100)
}

func TestObserveCongestion_PauseStopsLimiter(t *testing.T) {
	fc := newFlowControl(100)
	require.NotNil(t, fc)

	for i := 0; i < 10; i++ {
		fc.observeCongestion(100)
	}
	assert.Equal(t, float64(0), float64(fc.limiter.Limit()))
}

func TestObserveThrottled_FeedsFullScaleSample(t *testing.T) {
	fc := newFlowControl(100)
	require.NotNil(t, fc)

	fc.observeThrottled()
	assert.Greater(t, fc.ewma, float64(0))
}
