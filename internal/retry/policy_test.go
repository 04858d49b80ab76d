package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelayModes(t *testing.T) {
	fixed := NewPolicy(BackoffFixed, time.Second, 10*time.Second, 3)
	assert.Equal(t, time.Second, fixed.Delay(1))
	assert.Equal(t, time.Second, fixed.Delay(5))

	linear := NewPolicy(BackoffLinear, time.Second, 3*time.Second, 3)
	assert.Equal(t, time.Second, linear.Delay(1))
	assert.Equal(t, 2*time.Second, linear.Delay(2))
	assert.Equal(t, 3*time.Second, linear.Delay(5), "capped at max")

	exp := NewPolicy(BackoffExponential, time.Second, 10*time.Second, 3)
	assert.Equal(t, time.Second, exp.Delay(1))
	assert.Equal(t, 2*time.Second, exp.Delay(2))
	assert.Equal(t, 4*time.Second, exp.Delay(3))
	assert.Equal(t, 10*time.Second, exp.Delay(6), "capped at max")
}

func TestDelayZeroAttempt(t *testing.T) {
	assert.Zero(t, DefaultPolicy().Delay(0))
}

func TestNewPolicyFallbacks(t *testing.T) {
	p := NewPolicy("bogus", 0, 0, -1)
	def := DefaultPolicy()
	assert.Equal(t, def, p)

	p = NewPolicy(BackoffFixed, time.Minute, time.Second, 1)
	assert.Equal(t, time.Second, p.Initial, "initial clamped to max")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultPolicy().Validate())
	assert.Error(t, Policy{Initial: 0, Max: time.Second}.Validate())
	assert.Error(t, Policy{Initial: time.Second, Max: 0}.Validate())
	assert.Error(t, Policy{Initial: time.Second, Max: time.Second, MaxRetries: -1}.Validate())
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	p := Policy{Mode: BackoffFixed, Initial: time.Millisecond, Max: time.Millisecond, MaxRetries: 3}
	calls := 0
	err := Do(context.Background(), p, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_Exhausted(t *testing.T) {
	p := Policy{Mode: BackoffFixed, Initial: time.Millisecond, Max: time.Millisecond, MaxRetries: 2}
	calls := 0
	err := Do(context.Background(), p, func() error {
		calls++
		return errors.New("always")
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls, "initial attempt plus max retries")
}

func TestDo_ContextCancelled(t *testing.T) {
	p := Policy{Mode: BackoffFixed, Initial: time.Minute, Max: time.Minute, MaxRetries: 5}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Do(ctx, p, func() error { return errors.New("transient") })
	assert.ErrorIs(t, err, context.Canceled)
}
