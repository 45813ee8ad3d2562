package tui

import "sync"

// recorder collects controller effects. The controller calls it with its
// own lock held, so it only records; the model drains it after each update.
type recorder struct {
	mu     sync.Mutex
	bursts []int
	chimes int
}

func (r *recorder) Burst(idx int) {
	r.mu.Lock()
	r.bursts = append(r.bursts, idx)
	r.mu.Unlock()
}

func (r *recorder) Chime() {
	r.mu.Lock()
	r.chimes++
	r.mu.Unlock()
}

func (r *recorder) drain() (bursts []int, chimes int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bursts, chimes = r.bursts, r.chimes
	r.bursts, r.chimes = nil, 0
	return bursts, chimes
}
