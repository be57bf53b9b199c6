package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spaceshelter/orbitar-sub001/internal/client/api"
	"github.com/spaceshelter/orbitar-sub001/internal/client/models"
	"github.com/spaceshelter/orbitar-sub001/internal/client/services"
)

// Vote casts a vote: "vote post 42 1", "vote comment 17 -1", "vote user 3 2".
// Voting the already-cast value retracts the vote. The rating shown first is
// the optimistic value; a second line confirms or rolls back.
func (a *App) Vote(ctx context.Context, args []string) error {
	target, id, ok := parseVoteTarget(args)
	if !ok || len(args) != 3 {
		printlnFn("usage: vote <post|comment|user> <id> <value>")
		return nil
	}
	value, err := strconv.Atoi(args[2])
	if err != nil {
		printlnFn("usage: vote <post|comment|user> <id> <value>")
		return nil
	}

	current := a.currentRating(target, id)
	state, err := a.votes.Vote(ctx, target, id, value, current)
	if err != nil {
		printlnFn("Vote failed, rating restored:", err)
		return err
	}
	a.applyRating(target, id, state)
	printlnFn(fmt.Sprintf("Rating %+d (your vote %+d)", state.Rating, state.Vote))
	return nil
}

// Votes lists who voted on a post, comment or user and how.
func (a *App) Votes(ctx context.Context, args []string) error {
	target, id, ok := parseVoteTarget(args)
	if !ok || len(args) != 2 {
		printlnFn("usage: votes <post|comment|user> <id>")
		return nil
	}

	list, err := a.votes.List(ctx, target, id)
	if err != nil {
		printlnFn("Vote list failed:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Rating %+d, %d votes", list.Rating, len(list.Votes)))
	for _, item := range list.Votes {
		printlnFn(fmt.Sprintf("  %+d %s", item.Vote, item.Username))
	}
	return nil
}

func parseVoteTarget(args []string) (api.VoteTarget, int, bool) {
	if len(args) < 2 {
		return "", 0, false
	}
	var target api.VoteTarget
	switch args[0] {
	case "post":
		target = api.VotePost
	case "comment":
		target = api.VoteComment
	case "user":
		target = api.VoteUser
	default:
		return "", 0, false
	}
	id, err := strconv.Atoi(args[1])
	if err != nil || id < 1 {
		return "", 0, false
	}
	return target, id, true
}

// currentRating finds the rating snapshot the vote toggles against in the
// state currently on screen. An unknown target votes from a zero snapshot.
func (a *App) currentRating(target api.VoteTarget, id int) services.RatingState {
	switch target {
	case api.VotePost:
		if a.post != nil {
			if post := a.post.Post(); post != nil && post.ID == id {
				return services.RatingState{Rating: post.Rating, Vote: post.Vote}
			}
		}
		for _, feed := range a.feeds {
			for _, post := range feed.Posts() {
				if post.ID == id {
					return services.RatingState{Rating: post.Rating, Vote: post.Vote}
				}
			}
		}
	case api.VoteComment:
		if a.post != nil {
			if c := models.FindComment(a.post.Comments(), id); c != nil {
				return services.RatingState{Rating: c.Rating, Vote: c.Vote}
			}
		}
	}
	return services.RatingState{}
}

// applyRating pushes a confirmed rating into the open post view. Feed items
// are patched by the vote listener wired in NewApp.
func (a *App) applyRating(target api.VoteTarget, id int, state services.RatingState) {
	if a.post == nil {
		return
	}
	switch target {
	case api.VotePost:
		if post := a.post.Post(); post != nil && post.ID == id {
			a.post.SetRating(state.Rating, state.Vote)
		}
	case api.VoteComment:
		a.post.SetCommentRating(id, state.Rating, state.Vote)
	}
}
