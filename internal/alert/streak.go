package alert

import "sync"

// Streak counts consecutive negative observations per key. Keys with no
// running streak hold no state.
type Streak struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewStreak returns an empty Streak.
func NewStreak() *Streak {
	return &Streak{counts: make(map[string]int)}
}

// Observe bumps the count for a negative observation, resets it otherwise,
// and returns the new value.
func (s *Streak) Observe(key string, negative bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !negative {
		delete(s.counts, key)
		return 0
	}
	s.counts[key]++
	return s.counts[key]
}

// Reset clears the count for key.
func (s *Streak) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counts, key)
}
