package service

import (
	"sync"
	"time"
)

// SessionPolicy expires a working session after a fixed stretch of
// inactivity. Any authenticated request counts as activity; expiry is
// observed either by polling Expired or through the timeout callback.
type SessionPolicy struct {
	mu        sync.Mutex
	idle      time.Duration
	now       func() time.Time
	onTimeout func()
	last      time.Time
	fired     bool
}

// NewSessionPolicy builds a policy with an injected clock so expiry is
// testable without waiting. onTimeout may be nil.
func NewSessionPolicy(idle time.Duration, now func() time.Time, onTimeout func()) *SessionPolicy {
	if now == nil {
		now = time.Now
	}
	return &SessionPolicy{
		idle:      idle,
		now:       now,
		onTimeout: onTimeout,
		last:      now(),
	}
}

// Touch records activity. Touching an expired session rearms it.
func (p *SessionPolicy) Touch() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = p.now()
	p.fired = false
}

// Deadline is the instant the session expires absent further activity.
func (p *SessionPolicy) Deadline() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last.Add(p.idle)
}

func (p *SessionPolicy) Expired() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expiredLocked()
}

func (p *SessionPolicy) expiredLocked() bool {
	return !p.now().Before(p.last.Add(p.idle))
}

// Check fires the timeout callback once per idle stretch. The poll loop
// calls it on a ticker; it is safe to call at any frequency.
func (p *SessionPolicy) Check() {
	p.mu.Lock()
	if p.fired || !p.expiredLocked() {
		p.mu.Unlock()
		return
	}
	p.fired = true
	callback := p.onTimeout
	p.mu.Unlock()
	if callback != nil {
		callback()
	}
}

// Watch polls the policy until stop is closed.
func (p *SessionPolicy) Watch(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.Check()
		case <-stop:
			return
		}
	}
}
