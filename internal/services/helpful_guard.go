package services

import (
	"context"
	"sync"
	"time"
)

// HelpfulVoteGuard remembers which reviews a browser session has already marked
// helpful. It is process memory only, so a restart forgets it the same way a
// page reload would. Sessions idle past the sweep window are forgotten too.
type HelpfulVoteGuard struct {
	mu    sync.Mutex
	voted map[string]*sessionVotes
	now   func() time.Time
}

type sessionVotes struct {
	reviews map[string]struct{}
	touched time.Time
}

func NewHelpfulVoteGuard() *HelpfulVoteGuard {
	return &HelpfulVoteGuard{voted: make(map[string]*sessionVotes), now: time.Now}
}

// TryMark reserves the vote and reports whether the caller should hit the API.
// A second call for the same pair returns false, even while the first is in flight.
func (g *HelpfulVoteGuard) TryMark(sessionKey, reviewID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	votes, ok := g.voted[sessionKey]
	if !ok {
		votes = &sessionVotes{reviews: make(map[string]struct{})}
		g.voted[sessionKey] = votes
	}
	votes.touched = g.now()
	if _, done := votes.reviews[reviewID]; done {
		return false
	}
	votes.reviews[reviewID] = struct{}{}
	return true
}

// Release drops a reservation after a failed API call so the user can try again.
func (g *HelpfulVoteGuard) Release(sessionKey, reviewID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if votes, ok := g.voted[sessionKey]; ok {
		delete(votes.reviews, reviewID)
		if len(votes.reviews) == 0 {
			delete(g.voted, sessionKey)
		}
	}
}

// Voted reports whether the session already marked the review
func (g *HelpfulVoteGuard) Voted(sessionKey, reviewID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	votes, ok := g.voted[sessionKey]
	if !ok {
		return false
	}
	_, done := votes.reviews[reviewID]
	return done
}

// Prune forgets sessions that have not voted within idle
func (g *HelpfulVoteGuard) Prune(idle time.Duration) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	cutoff := g.now().Add(-idle)
	removed := 0
	for key, votes := range g.voted {
		if votes.touched.Before(cutoff) {
			delete(g.voted, key)
			removed++
		}
	}
	return removed
}

func (g *HelpfulVoteGuard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.voted)
}

// Sweep prunes every interval until ctx is done
func (g *HelpfulVoteGuard) Sweep(ctx context.Context, every, idle time.Duration) {
	sweep(ctx, every, func() { g.Prune(idle) })
}
