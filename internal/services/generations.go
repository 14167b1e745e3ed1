package services

import (
	"context"
	"sync"
	"time"
)

// Generations numbers the requests for one (session, view) pair so a slow
// response that was overtaken by a newer one can be dropped. Keys idle for
// longer than the sweep window are forgotten.
type Generations struct {
	mu      sync.Mutex
	seq     uint64
	current map[string]generation
	now     func() time.Time
}

type generation struct {
	gen     uint64
	touched time.Time
}

// Ticket identifies one request's generation
type Ticket struct {
	key string
	gen uint64
}

func NewGenerations() *Generations {
	return &Generations{current: make(map[string]generation), now: time.Now}
}

// Begin starts a new generation for key, superseding every earlier ticket.
// Numbers are unique across keys, so an evicted key never reissues one.
func (g *Generations) Begin(key string) Ticket {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	g.current[key] = generation{gen: g.seq, touched: g.now()}
	return Ticket{key: key, gen: g.seq}
}

// Current reports whether t is still the newest generation for its key.
// A ticket whose key was swept has not been overtaken.
func (g *Generations) Current(t Ticket) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	cur, ok := g.current[t.key]
	return !ok || cur.gen == t.gen
}

// Prune forgets keys not touched within idle and returns how many it removed
func (g *Generations) Prune(idle time.Duration) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	cutoff := g.now().Add(-idle)
	removed := 0
	for key, cur := range g.current {
		if cur.touched.Before(cutoff) {
			delete(g.current, key)
			removed++
		}
	}
	return removed
}

func (g *Generations) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.current)
}

// Sweep prunes every interval until ctx is done
func (g *Generations) Sweep(ctx context.Context, every, idle time.Duration) {
	sweep(ctx, every, func() { g.Prune(idle) })
}

func sweep(ctx context.Context, every time.Duration, prune func()) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			prune()
		}
	}
}
