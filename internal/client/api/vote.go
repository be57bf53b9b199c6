package api

import "context"

// VoteTarget discriminates what a vote applies to.
type VoteTarget string

const (
	VotePost    VoteTarget = "post"
	VoteComment VoteTarget = "comment"
	VoteUser    VoteTarget = "user"
)

type voteRequest struct {
	ID   int `json:"id"`
	Vote int `json:"vote"`
}

type VoteSetResponse struct {
	Rating int  `json:"rating"`
	Vote   *int `json:"vote,omitempty"`
}

type voteListRequest struct {
	ID int `json:"id"`
}

type VoteListItem struct {
	Username string `json:"username"`
	Vote     int    `json:"vote"`
}

type VoteListResponse struct {
	Rating int            `json:"rating"`
	Votes  []VoteListItem `json:"votes"`
}

// VoteAPI exposes the voting routes.
type VoteAPI struct {
	client *Client
}

func NewVoteAPI(client *Client) *VoteAPI {
	return &VoteAPI{client: client}
}

// Vote sends the effective vote for a target. Vote 0 removes an earlier vote.
func (v *VoteAPI) Vote(ctx context.Context, target VoteTarget, id, vote int) (*VoteSetResponse, error) {
	var resp VoteSetResponse
	if err := v.client.Request(ctx, "/vote/"+string(target)+"/vote", &voteRequest{ID: id, Vote: vote}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List fetches the per-user vote breakdown for a target.
func (v *VoteAPI) List(ctx context.Context, target VoteTarget, id int) (*VoteListResponse, error) {
	var resp VoteListResponse
	if err := v.client.Request(ctx, "/vote/"+string(target)+"/list", &voteListRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
