package httpapi

import (
	"context"
	"sync"
	"time"
)

// attemptTracker counts sends per key within a fixed window.
type attemptTracker struct {
	mu    sync.Mutex
	state map[string]*attemptState
}

type attemptState struct {
	count   int
	resetAt time.Time
}

func newAttemptTracker() *attemptTracker {
	return &attemptTracker{
		state: make(map[string]*attemptState),
	}
}

func (t *attemptTracker) Allow(key string, max int, window time.Duration, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.state[key]
	if st == nil || now.After(st.resetAt) {
		t.state[key] = &attemptState{
			count:   1,
			resetAt: now.Add(window),
		}
		return true
	}

	if st.count >= max {
		return false
	}
	st.count++
	return true
}

// Release returns one attempt to key, used when the relay could not be
// reached and the recipient never got a message.
func (t *attemptTracker) Release(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.state[key]
	if st == nil {
		return
	}
	st.count--
	if st.count <= 0 {
		delete(t.state, key)
	}
}

// Sweep drops windows that ended before now.
func (t *attemptTracker) Sweep(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for key, st := range t.state {
		if now.After(st.resetAt) {
			delete(t.state, key)
		}
	}
}

func (t *attemptTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.state)
}

// SweepLimits drops expired per-email windows every interval until ctx is done.
func (a *API) SweepLimits(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.emailLimit.Sweep(a.clock())
		}
	}
}
