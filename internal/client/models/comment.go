package models

import "time"

// Comment is a node of a post's comment tree. Answers keeps the server's
// insertion order and must not be reordered locally.
type Comment struct {
	ID      int
	Created time.Time
	Author  *User
	Deleted bool
	Content string
	Rating  int
	// Vote is the current viewer's vote; 0 means no vote.
	Vote     int
	IsNew    bool
	EditFlag EditFlag
	PostLink PostLink
	ParentID int
	Answers  []*Comment
	CanEdit  bool
}

// FindComment locates a comment by id anywhere in the tree, depth first.
// Returns nil if the id is not present.
func FindComment(comments []*Comment, commentID int) *Comment {
	for _, comment := range comments {
		if comment.ID == commentID {
			return comment
		}
		if found := FindComment(comment.Answers, commentID); found != nil {
			return found
		}
	}
	return nil
}

// FilterComments returns the unread-only view of the tree. With unreadOnly
// false it is the identity. With unreadOnly true it keeps comments that are
// new themselves (whole subtree included) or that have at least one new
// descendant; a kept non-new ancestor is shallow-cloned with only its
// qualifying answers so the ancestor path down to every unread comment stays
// visible while fully-read sibling branches are dropped.
func FilterComments(comments []*Comment, unreadOnly bool) []*Comment {
	if !unreadOnly {
		return comments
	}

	filtered := make([]*Comment, 0, len(comments))
	for _, comment := range comments {
		if kept := filterComment(comment); kept != nil {
			filtered = append(filtered, kept)
		}
	}
	return filtered
}

func filterComment(comment *Comment) *Comment {
	if comment.IsNew {
		return comment
	}
	var answers []*Comment
	for _, answer := range comment.Answers {
		if kept := filterComment(answer); kept != nil {
			answers = append(answers, kept)
		}
	}
	if len(answers) == 0 {
		return nil
	}
	clone := *comment
	clone.Answers = answers
	return &clone
}

// CountComments returns the total number of comments in the tree.
func CountComments(comments []*Comment) int {
	total := len(comments)
	for _, comment := range comments {
		total += CountComments(comment.Answers)
	}
	return total
}

// MaxCommentID returns the maximum comment id over the whole tree,
// or 0 for an empty tree.
func MaxCommentID(comments []*Comment) int {
	max := 0
	for _, comment := range comments {
		if comment.ID > max {
			max = comment.ID
		}
		if m := MaxCommentID(comment.Answers); m > max {
			max = m
		}
	}
	return max
}
