package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestSessionExpiresAfterIdleWindow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	policy := NewSessionPolicy(30*time.Minute, clock.Now, nil)

	assert.False(t, policy.Expired())
	clock.Advance(29 * time.Minute)
	assert.False(t, policy.Expired())
	clock.Advance(time.Minute)
	assert.True(t, policy.Expired())
}

func TestTouchExtendsDeadline(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	policy := NewSessionPolicy(30*time.Minute, clock.Now, nil)

	clock.Advance(20 * time.Minute)
	policy.Touch()
	assert.Equal(t, clock.now.Add(30*time.Minute), policy.Deadline())

	clock.Advance(29 * time.Minute)
	assert.False(t, policy.Expired())
}

func TestTimeoutCallbackFiresOncePerIdleStretch(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	fired := 0
	policy := NewSessionPolicy(30*time.Minute, clock.Now, func() { fired++ })

	clock.Advance(31 * time.Minute)
	policy.Check()
	policy.Check()
	assert.Equal(t, 1, fired)

	// Activity rearms the callback.
	policy.Touch()
	clock.Advance(31 * time.Minute)
	policy.Check()
	assert.Equal(t, 2, fired)
}
