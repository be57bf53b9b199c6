package services

import (
	"context"
	"sync"

	"github.com/spaceshelter/orbitar-sub001/internal/client/api"
)

// RatingState is the visible rating of a votable target together with the
// viewer's own vote (0 when not voted).
type RatingState struct {
	Rating int
	Vote   int
}

// VoteListener observes rating changes. confirmed is false for the
// optimistic phase (and for a rollback restore) and true exactly once per
// successful vote, after the server answered. Listeners that trigger
// dependent refreshes (karma, feed counters) should act only on confirmed
// notifications.
type VoteListener func(target api.VoteTarget, id int, state RatingState, confirmed bool)

// VoteService applies votes optimistically: the expected rating is published
// before the server confirms, then either replaced by the server's values or
// rolled back to the exact pre-vote snapshot on failure.
type VoteService struct {
	api *api.VoteAPI

	mu        sync.Mutex
	listeners []VoteListener
}

func NewVoteService(voteAPI *api.VoteAPI) *VoteService {
	return &VoteService{api: voteAPI}
}

// Subscribe registers a listener for rating changes.
func (s *VoteService) Subscribe(listener VoteListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Vote requests a vote on a target given its current visible state.
// Requesting the vote already held removes it (toggle to 0). The returned
// state is what the caller should display: the server-confirmed values on
// success, the restored pre-vote snapshot on failure (alongside the error).
func (s *VoteService) Vote(ctx context.Context, target api.VoteTarget, id, requested int, current RatingState) (RatingState, error) {
	prev := current

	effective := requested
	if current.Vote == requested {
		effective = 0
	}

	optimistic := RatingState{
		Rating: current.Rating - current.Vote + effective,
		Vote:   effective,
	}
	s.notify(target, id, optimistic, false)

	resp, err := s.api.Vote(ctx, target, id, effective)
	if err != nil {
		// Restore the saved snapshot exactly; never recompute.
		s.notify(target, id, prev, false)
		return prev, err
	}

	confirmed := RatingState{Rating: resp.Rating, Vote: voteValue(resp.Vote)}
	s.notify(target, id, confirmed, true)
	return confirmed, nil
}

// List fetches the per-user vote breakdown for a target. No optimistic
// component: callers load it lazily when a detail view opens and refetch on
// reopen.
func (s *VoteService) List(ctx context.Context, target api.VoteTarget, id int) (*api.VoteListResponse, error) {
	return s.api.List(ctx, target, id)
}

func (s *VoteService) notify(target api.VoteTarget, id int, state RatingState, confirmed bool) {
	s.mu.Lock()
	listeners := make([]VoteListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(target, id, state, confirmed)
	}
}
