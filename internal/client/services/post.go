package services

import (
	"context"

	"github.com/spaceshelter/orbitar-sub001/internal/client/api"
	"github.com/spaceshelter/orbitar-sub001/internal/client/cache"
	"github.com/spaceshelter/orbitar-sub001/internal/client/models"
)

// PostResult is a fully resolved post page: the post, its site, the comment
// tree and the maximum comment id seen anywhere in the tree.
type PostResult struct {
	Post          *models.Post
	Site          *models.Site
	Comments      []*models.Comment
	LastCommentID int
}

// FeedResult is one resolved feed page.
type FeedResult struct {
	Posts []*models.Post
	Site  *models.Site
	Sites map[string]*models.Site
	Total int
}

// PostService wraps the post routes with normalization: every response
// passes through the entity cache so author references are deduplicated
// resolved objects, and timestamps are corrected for clock skew.
type PostService struct {
	api *api.PostAPI
	res resolver
}

func NewPostService(postAPI *api.PostAPI, entities *cache.EntityCache) *PostService {
	return &PostService{
		api: postAPI,
		res: resolver{cache: entities, client: postAPI.Client()},
	}
}

// Get fetches a post with its full comment tree.
func (s *PostService) Get(ctx context.Context, postID int) (*PostResult, error) {
	resp, err := s.api.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments := s.res.comments(resp.Comments, resp.Users)

	return &PostResult{
		Post:          s.res.post(resp.Post, resp.Users),
		Site:          s.res.site(resp.Site),
		Comments:      comments,
		LastCommentID: models.MaxCommentID(comments),
	}, nil
}

// Feed fetches one page of a site's post feed. Resolved posts are upserted
// into the entity cache so later navigations can show a placeholder without
// a round trip.
func (s *PostService) Feed(ctx context.Context, site string, page, perPage int) (*FeedResult, error) {
	resp, err := s.api.FeedPosts(ctx, site, page, perPage)
	if err != nil {
		return nil, err
	}
	return s.feedResult(resp), nil
}

// FeedSubscriptions fetches one page of the viewer's subscription feed.
func (s *PostService) FeedSubscriptions(ctx context.Context, page, perPage int) (*FeedResult, error) {
	resp, err := s.api.FeedSubscriptions(ctx, page, perPage)
	if err != nil {
		return nil, err
	}
	return s.feedResult(resp), nil
}

// FeedAll fetches one page of the all-sites feed.
func (s *PostService) FeedAll(ctx context.Context, page, perPage int) (*FeedResult, error) {
	resp, err := s.api.FeedAll(ctx, page, perPage)
	if err != nil {
		return nil, err
	}
	return s.feedResult(resp), nil
}

// FeedWatch fetches one page of watched posts, all of them or unread only.
func (s *PostService) FeedWatch(ctx context.Context, all bool, page, perPage int) (*FeedResult, error) {
	resp, err := s.api.FeedWatch(ctx, all, page, perPage)
	if err != nil {
		return nil, err
	}
	return s.feedResult(resp), nil
}

func (s *PostService) feedResult(resp *api.FeedResponse) *FeedResult {
	result := &FeedResult{
		Site:  s.res.site(resp.Site),
		Total: resp.Total,
	}
	if len(resp.Sites) > 0 {
		result.Sites = make(map[string]*models.Site, len(resp.Sites))
		for slug, entity := range resp.Sites {
			result.Sites[slug] = s.res.site(entity)
		}
	}
	result.Posts = make([]*models.Post, 0, len(resp.Posts))
	for _, entity := range resp.Posts {
		post := s.res.post(entity, resp.Users)
		s.res.cache.SetPost(post)
		result.Posts = append(result.Posts, post)
	}
	return result
}

// Create creates a post on a site.
func (s *PostService) Create(ctx context.Context, site, title, content string) (*models.Post, error) {
	resp, err := s.api.Create(ctx, site, title, content)
	if err != nil {
		return nil, err
	}
	return s.res.post(resp.Post, nil), nil
}

// Comment creates a reply server-side and returns it resolved.
// parentCommentID 0 makes a top-level comment.
func (s *PostService) Comment(ctx context.Context, content string, postID, parentCommentID int) (*models.Comment, error) {
	resp, err := s.api.Comment(ctx, content, postID, parentCommentID)
	if err != nil {
		return nil, err
	}
	return s.res.comment(resp.Comment, resp.Users), nil
}

// EditComment updates a comment server-side and returns the new revision.
func (s *PostService) EditComment(ctx context.Context, content string, commentID int) (*models.Comment, error) {
	resp, err := s.api.EditComment(ctx, content, commentID)
	if err != nil {
		return nil, err
	}
	return s.res.comment(resp.Comment, resp.Users), nil
}

// EditPost updates a post server-side and returns the new revision.
func (s *PostService) EditPost(ctx context.Context, postID int, title, content string) (*models.Post, error) {
	resp, err := s.api.EditPost(ctx, postID, title, content)
	if err != nil {
		return nil, err
	}
	return s.res.post(resp.Post, resp.Users), nil
}

// Read reports the viewer's read position on a post.
func (s *PostService) Read(ctx context.Context, postID, comments, lastCommentID int) (*api.PostReadResponse, error) {
	return s.api.Read(ctx, postID, comments, lastCommentID)
}

// Watch toggles the watch flag on a post.
func (s *PostService) Watch(ctx context.Context, postID int, watch bool) (bool, error) {
	resp, err := s.api.Watch(ctx, postID, watch)
	if err != nil {
		return false, err
	}
	return resp.Watch, nil
}

// Bookmark toggles the bookmark flag on a post.
func (s *PostService) Bookmark(ctx context.Context, postID int, bookmark bool) (bool, error) {
	resp, err := s.api.Bookmark(ctx, postID, bookmark)
	if err != nil {
		return false, err
	}
	return resp.Bookmark, nil
}
