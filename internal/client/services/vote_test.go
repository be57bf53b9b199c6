package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaceshelter/orbitar-sub001/internal/client/api"
	"github.com/spaceshelter/orbitar-sub001/internal/logging"
)

type voteRecorder struct {
	states    []RatingState
	confirmed []bool
}

func (r *voteRecorder) listen(target api.VoteTarget, id int, state RatingState, confirmed bool) {
	r.states = append(r.states, state)
	r.confirmed = append(r.confirmed, confirmed)
}

func newVoteService(t *testing.T, handler http.HandlerFunc) (*VoteService, *voteRecorder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, nil, logging.Nop{})
	svc := NewVoteService(api.NewVoteAPI(client))
	rec := &voteRecorder{}
	svc.Subscribe(rec.listen)
	return svc, rec
}

func voteHandler(t *testing.T, wantVote int, resp api.VoteSetResponse) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID   int `json:"id"`
			Vote int `json:"vote"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, wantVote, req.Vote)
		json.NewEncoder(w).Encode(map[string]any{"result": "success", "payload": resp})
	}
}

func TestVote_OptimisticThenConfirmed(t *testing.T) {
	one := 1
	svc, rec := newVoteService(t, voteHandler(t, 1, api.VoteSetResponse{Rating: 6, Vote: &one}))

	state, err := svc.Vote(context.Background(), api.VotePost, 7, 1, RatingState{Rating: 5, Vote: 0})
	require.NoError(t, err)
	assert.Equal(t, RatingState{Rating: 6, Vote: 1}, state)

	// First the optimistic projection, then the server-confirmed value.
	require.Len(t, rec.states, 2)
	assert.Equal(t, RatingState{Rating: 6, Vote: 1}, rec.states[0])
	assert.False(t, rec.confirmed[0])
	assert.Equal(t, RatingState{Rating: 6, Vote: 1}, rec.states[1])
	assert.True(t, rec.confirmed[1])
}

func TestVote_RepeatVoteTogglesToZero(t *testing.T) {
	svc, rec := newVoteService(t, voteHandler(t, 0, api.VoteSetResponse{Rating: 4}))

	state, err := svc.Vote(context.Background(), api.VotePost, 7, 1, RatingState{Rating: 5, Vote: 1})
	require.NoError(t, err)

	// Vote retracted: rating drops by the old vote, no vote held.
	assert.Equal(t, RatingState{Rating: 4, Vote: 0}, state)
	require.Len(t, rec.states, 2)
	assert.Equal(t, RatingState{Rating: 4, Vote: 0}, rec.states[0])
}

func TestVote_SwitchingDirection(t *testing.T) {
	minusOne := -1
	svc, rec := newVoteService(t, voteHandler(t, -1, api.VoteSetResponse{Rating: 3, Vote: &minusOne}))

	state, err := svc.Vote(context.Background(), api.VotePost, 7, -1, RatingState{Rating: 5, Vote: 1})
	require.NoError(t, err)

	// 5 - (+1) + (-1) = 3 both optimistically and confirmed.
	assert.Equal(t, RatingState{Rating: 3, Vote: -1}, rec.states[0])
	assert.Equal(t, RatingState{Rating: 3, Vote: -1}, state)
}

func TestVote_FailureRestoresExactSnapshot(t *testing.T) {
	svc, rec := newVoteService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"result": "error", "code": "rate-limit", "message": "slow down"})
	})

	prev := RatingState{Rating: 5, Vote: 0}
	state, err := svc.Vote(context.Background(), api.VotePost, 7, 1, prev)

	require.Error(t, err)
	assert.Equal(t, prev, state)

	// Optimistic first, then the rollback; the rollback is not confirmed.
	require.Len(t, rec.states, 2)
	assert.Equal(t, RatingState{Rating: 6, Vote: 1}, rec.states[0])
	assert.Equal(t, prev, rec.states[1])
	assert.Equal(t, []bool{false, false}, rec.confirmed)
}

func TestVote_NilServerVoteMeansNoVote(t *testing.T) {
	svc, _ := newVoteService(t, voteHandler(t, 0, api.VoteSetResponse{Rating: 9}))

	state, err := svc.Vote(context.Background(), api.VoteComment, 3, 2, RatingState{Rating: 11, Vote: 2})
	require.NoError(t, err)
	assert.Equal(t, RatingState{Rating: 9, Vote: 0}, state)
}

func TestList_FetchesBreakdown(t *testing.T) {
	svc, _ := newVoteService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vote/user/list", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"result": "success", "payload": api.VoteListResponse{
			Rating: 3,
			Votes:  []api.VoteListItem{{Username: "alice", Vote: 2}, {Username: "bob", Vote: 1}},
		}})
	})

	list, err := svc.List(context.Background(), api.VoteUser, 12)
	require.NoError(t, err)
	assert.Equal(t, 3, list.Rating)
	require.Len(t, list.Votes, 2)
	assert.Equal(t, "alice", list.Votes[0].Username)
}
