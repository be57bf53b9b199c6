package state

import (
	"context"
	"sync"
	"time"

	"github.com/spaceshelter/orbitar-sub001/internal/client/cache"
	"github.com/spaceshelter/orbitar-sub001/internal/client/models"
	"github.com/spaceshelter/orbitar-sub001/internal/client/services"
	"github.com/spaceshelter/orbitar-sub001/internal/logging"
)

// postCacheName keys the persisted comment tree in the local cache.
const postCacheName = "post"

const markReadTimeout = 10 * time.Second

// PostState owns one post's comment tree: the raw tree as last fetched and
// the currently displayed view, which may be filtered to unread-only
// subtrees. It reconciles newly posted and edited comments into the held
// trees and reports the viewer's read position as a detached background
// call whose failure is logged, never surfaced.
type PostState struct {
	posts    *services.PostService
	entities *cache.EntityCache
	local    *cache.LocalCache
	log      logging.Logger

	mu          sync.Mutex
	siteName    string
	postID      int
	unreadOnly  bool
	post        *models.Post
	site        *models.Site
	rawComments []*models.Comment
	comments    []*models.Comment
	loadError   string
}

// NewPostState constructs the state for (siteName, postID, unreadOnly),
// primed from the local cache and the entity cache so stale content can
// render before Load completes.
func NewPostState(ctx context.Context, posts *services.PostService, entities *cache.EntityCache, local *cache.LocalCache, log logging.Logger, siteName string, postID int, unreadOnly bool) *PostState {
	s := &PostState{
		posts:      posts,
		entities:   entities,
		local:      local,
		log:        log,
		siteName:   siteName,
		postID:     postID,
		unreadOnly: unreadOnly,
	}
	s.post = entities.GetPost(postID)
	s.site = entities.GetSite(siteName)
	if cached, ok := cache.Get[[]*models.Comment](ctx, local, postCacheName, s.cacheDeps()); ok {
		s.rawComments = cached
		s.comments = models.FilterComments(cached, unreadOnly)
	}
	return s
}

func (s *PostState) cacheDeps() []any {
	return []any{s.siteName, s.postID, s.unreadOnly}
}

func (s *PostState) Post() *models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.post
}

func (s *PostState) Site() *models.Site {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.site
}

func (s *PostState) UnreadOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unreadOnly
}

// Comments returns the currently displayed (possibly filtered) tree.
func (s *PostState) Comments() []*models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.comments
}

// SetRating replaces the open post's rating and vote after a confirmed
// vote. The post value is copied so previously handed-out pointers stay
// unchanged.
func (s *PostState) SetRating(rating, vote int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.post == nil {
		return
	}
	p := *s.post
	p.Rating = rating
	p.Vote = vote
	s.post = &p
}

// SetCommentRating updates a comment's rating in both held trees. A missing
// comment is a no-op.
func (s *PostState) SetCommentRating(commentID, rating, vote int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tree := range [][]*models.Comment{s.comments, s.rawComments} {
		if c := models.FindComment(tree, commentID); c != nil {
			c.Rating = rating
			c.Vote = vote
		}
	}
}

// LoadError returns the user-facing error of the last failed load, "" when
// the last load succeeded.
func (s *PostState) LoadError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadError
}

// Load fetches the post and its full comment tree, replacing both held
// trees and the persisted cache, then marks the post read up to the new
// totals in the background. On failure the prior state is left untouched
// and LoadError is set.
func (s *PostState) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loadError = ""
	postID := s.postID
	unreadOnly := s.unreadOnly
	s.mu.Unlock()

	result, err := s.posts.Get(ctx, postID)
	if err != nil {
		s.mu.Lock()
		s.loadError = err.Error()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.post = result.Post
	s.site = result.Site
	s.rawComments = result.Comments
	s.comments = models.FilterComments(result.Comments, unreadOnly)
	deps := s.cacheDeps()
	s.mu.Unlock()

	s.local.Write(ctx, postCacheName, deps, result.Comments)
	s.markRead(postID, result.Post.Comments, result.LastCommentID)
	return nil
}

// Reload re-fetches from scratch.
func (s *PostState) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

// Answer posts a reply and inserts it under its parent in the displayed
// tree. A missing parent (filtered out or not yet loaded) is tolerated: the
// created comment is returned without mutating local trees. For parented
// replies the raw tree is not re-walked, since the server already holds the
// new comment and the next full reload reconciles it. Only its top-level slice
// is refreshed and persisted.
func (s *PostState) Answer(ctx context.Context, text string, parentCommentID int) (*models.Comment, error) {
	s.mu.Lock()
	postID := s.postID
	s.mu.Unlock()

	comment, err := s.posts.Comment(ctx, text, postID, parentCommentID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rawComments != nil {
		total := models.CountComments(s.rawComments) + 1
		s.markRead(postID, total, 0)
	}

	if s.comments == nil {
		// Nothing loaded to attach to.
		return comment, nil
	}

	if parentCommentID != 0 {
		parent := models.FindComment(s.comments, parentCommentID)
		if parent == nil {
			return comment, nil
		}
		parent.Answers = append(parent.Answers, comment)
		s.comments = cloneTop(s.comments)

		if s.rawComments != nil {
			raw := cloneTop(s.rawComments)
			s.rawComments = raw
			s.local.Write(ctx, postCacheName, s.cacheDeps(), raw)
		}
		return comment, nil
	}

	s.comments = append(cloneTop(s.comments), comment)
	if s.rawComments != nil {
		s.rawComments = append(cloneTop(s.rawComments), comment)
	}
	return comment, nil
}

// EditComment applies a server-side edit to every held occurrence of the
// comment. The displayed and raw trees are searched independently since
// they may have diverged under filtering; a tree that does not contain the
// comment is left untouched.
func (s *PostState) EditComment(ctx context.Context, text string, commentID int) (*models.Comment, error) {
	updated, err := s.posts.EditComment(ctx, text, commentID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.comments == nil {
		return updated, nil
	}

	if found := models.FindComment(s.comments, commentID); found != nil {
		applyEdit(found, updated)
		s.comments = cloneTop(s.comments)
	}
	if s.rawComments != nil {
		if found := models.FindComment(s.rawComments, commentID); found != nil {
			applyEdit(found, updated)
			s.rawComments = cloneTop(s.rawComments)
		}
	}
	return updated, nil
}

// EditPost applies a server-side edit and replaces the whole post object.
func (s *PostState) EditPost(ctx context.Context, title, content string) (*models.Post, error) {
	s.mu.Lock()
	postID := s.postID
	s.mu.Unlock()

	post, err := s.posts.EditPost(ctx, postID, title, content)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.post = post
	s.mu.Unlock()
	return post, nil
}

// SetUnreadOnly changes the unread filter. The held raw tree is re-filtered
// locally; no network call is made.
func (s *PostState) SetUnreadOnly(ctx context.Context, unreadOnly bool) error {
	s.mu.Lock()
	if s.unreadOnly == unreadOnly {
		s.mu.Unlock()
		return nil
	}
	s.unreadOnly = unreadOnly
	if s.rawComments != nil {
		s.comments = models.FilterComments(s.rawComments, unreadOnly)
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()
	return s.Load(ctx)
}

// Switch moves the state to a different (siteName, postID) context. A
// changed post discards all held comment state and the post, primes
// placeholders from the entity cache and triggers a fresh Load; if only the
// site context changed the site placeholder is refreshed.
func (s *PostState) Switch(ctx context.Context, siteName string, postID int, unreadOnly bool) error {
	s.mu.Lock()
	sameSite := s.siteName == siteName
	samePost := s.postID == postID
	sameFilter := s.unreadOnly == unreadOnly
	if sameSite && samePost && sameFilter {
		s.mu.Unlock()
		return nil
	}

	if !sameSite {
		s.siteName = siteName
		s.site = s.entities.GetSite(siteName)
	}

	if !samePost {
		s.postID = postID
		s.unreadOnly = unreadOnly
		s.post = s.entities.GetPost(postID)
		s.rawComments = nil
		s.comments = nil
		s.mu.Unlock()
		return s.Load(ctx)
	}

	s.mu.Unlock()
	return s.SetUnreadOnly(ctx, unreadOnly)
}

// markRead reports the read position as a detached task. Its failure is
// logged and swallowed; it never blocks or fails the caller.
func (s *PostState) markRead(postID, comments, lastCommentID int) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), markReadTimeout)
		defer cancel()
		if _, err := s.posts.Read(ctx, postID, comments, lastCommentID); err != nil {
			s.log.Warn(ctx, "could not mark post read", "post", postID, "error", err)
		}
	}()
}

// applyEdit copies the edited fields onto the held comment, keeping the
// subtree and unread flag the edit response does not carry.
func applyEdit(dst, src *models.Comment) {
	answers := dst.Answers
	isNew := dst.IsNew
	*dst = *src
	dst.Answers = answers
	dst.IsNew = isNew
}

func cloneTop(comments []*models.Comment) []*models.Comment {
	clone := make([]*models.Comment, len(comments))
	copy(clone, comments)
	return clone
}
