package models

import "time"

// EditFlag marks whether content was edited after creation.
type EditFlag int

const (
	EditOriginal EditFlag = iota
	EditEdited
)

// PostLink identifies a post within a site.
type PostLink struct {
	ID   int
	Site string
}

// Post is a resolved post view model. Author is always a fully resolved
// *User after passing through the service layer, never a bare id.
type Post struct {
	ID      int
	Site    string
	Author  *User
	Created time.Time
	Title   string
	Content string
	Rating  int
	// Comments is the total comment count, NewComments the unread part.
	Comments    int
	NewComments int
	EditFlag    EditFlag
	// Vote is the current viewer's vote; 0 means no vote.
	Vote     int
	Watch    bool
	Bookmark bool
	CanEdit  bool
}

// PostPatch is a partial update applied to a single feed item in place of
// a full reload; only non-nil fields are applied.
type PostPatch struct {
	Rating      *int
	Vote        *int
	Watch       *bool
	Bookmark    *bool
	Comments    *int
	NewComments *int
}

// Apply copies the patch onto a shallow copy of p and returns the copy.
// The receiver post is left untouched.
func (patch PostPatch) Apply(p *Post) *Post {
	c := *p
	if patch.Rating != nil {
		c.Rating = *patch.Rating
	}
	if patch.Vote != nil {
		c.Vote = *patch.Vote
	}
	if patch.Watch != nil {
		c.Watch = *patch.Watch
	}
	if patch.Bookmark != nil {
		c.Bookmark = *patch.Bookmark
	}
	if patch.Comments != nil {
		c.Comments = *patch.Comments
	}
	if patch.NewComments != nil {
		c.NewComments = *patch.NewComments
	}
	return &c
}
