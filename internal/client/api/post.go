package api

import "context"

// ContentFormat selects server-side rendering of content fields.
type ContentFormat string

const (
	FormatHTML   ContentFormat = "html"
	FormatSource ContentFormat = "source"
)

type PostGetRequest struct {
	ID         int           `json:"id"`
	Format     ContentFormat `json:"format,omitempty"`
	NoComments bool          `json:"noComments,omitempty"`
}

type PostGetResponse struct {
	Post     *PostEntity         `json:"post"`
	Site     *SiteEntity         `json:"site"`
	Comments []*CommentEntity    `json:"comments"`
	Users    map[int]*UserEntity `json:"users"`
}

type FeedPostsRequest struct {
	Site    string        `json:"site,omitempty"`
	Page    int           `json:"page,omitempty"`
	PerPage int           `json:"perpage,omitempty"`
	Format  ContentFormat `json:"format,omitempty"`
}

type FeedWatchRequest struct {
	Filter  string        `json:"filter,omitempty"`
	Page    int           `json:"page,omitempty"`
	PerPage int           `json:"perpage,omitempty"`
	Format  ContentFormat `json:"format,omitempty"`
}

// FeedResponse is shared by all feed routes; Site is present for site feeds,
// Sites for cross-site feeds (subscriptions, all, watch).
type FeedResponse struct {
	Posts []*PostEntity          `json:"posts"`
	Users map[int]*UserEntity    `json:"users"`
	Total int                    `json:"total"`
	Site  *SiteEntity            `json:"site,omitempty"`
	Sites map[string]*SiteEntity `json:"sites,omitempty"`
}

type PostCreateRequest struct {
	Site    string        `json:"site"`
	Title   string        `json:"title,omitempty"`
	Content string        `json:"content"`
	Format  ContentFormat `json:"format,omitempty"`
}

type PostCreateResponse struct {
	Post *PostEntity `json:"post"`
}

type CommentCreateRequest struct {
	CommentID int           `json:"comment_id,omitempty"`
	PostID    int           `json:"post_id"`
	Content   string        `json:"content"`
	Format    ContentFormat `json:"format,omitempty"`
}

type CommentResponse struct {
	Comment *CommentEntity      `json:"comment"`
	Users   map[int]*UserEntity `json:"users"`
}

type CommentEditRequest struct {
	ID      int           `json:"id"`
	Content string        `json:"content"`
	Format  ContentFormat `json:"format,omitempty"`
}

type PostEditRequest struct {
	ID      int           `json:"id"`
	Title   string        `json:"title"`
	Content string        `json:"content"`
	Format  ContentFormat `json:"format,omitempty"`
}

type PostEditResponse struct {
	Post  *PostEntity         `json:"post"`
	Users map[int]*UserEntity `json:"users"`
}

type PostReadRequest struct {
	PostID        int `json:"post_id"`
	Comments      int `json:"comments"`
	LastCommentID int `json:"last_comment_id,omitempty"`
}

type PostReadResponse struct {
	Watch         *WatchCounters `json:"watch,omitempty"`
	Notifications *struct {
		Unread  int `json:"unread"`
		Visible int `json:"visible"`
	} `json:"notifications,omitempty"`
}

type PostWatchRequest struct {
	PostID int  `json:"post_id"`
	Watch  bool `json:"watch"`
}

type PostWatchResponse struct {
	Watch bool `json:"watch"`
}

type PostBookmarkRequest struct {
	PostID   int  `json:"post_id"`
	Bookmark bool `json:"bookmark"`
}

type PostBookmarkResponse struct {
	Bookmark bool `json:"bookmark"`
}

// PostAPI exposes the post, comment and feed routes.
type PostAPI struct {
	client *Client
}

func NewPostAPI(client *Client) *PostAPI {
	return &PostAPI{client: client}
}

// Client returns the underlying transport, for date fixing.
func (p *PostAPI) Client() *Client {
	return p.client
}

func (p *PostAPI) Get(ctx context.Context, postID int) (*PostGetResponse, error) {
	var resp PostGetResponse
	req := &PostGetRequest{ID: postID, Format: FormatHTML}
	if err := p.client.Request(ctx, "/post/get", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *PostAPI) FeedPosts(ctx context.Context, site string, page, perPage int) (*FeedResponse, error) {
	var resp FeedResponse
	req := &FeedPostsRequest{Site: site, Page: page, PerPage: perPage, Format: FormatHTML}
	if err := p.client.Request(ctx, "/feed/posts", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *PostAPI) FeedSubscriptions(ctx context.Context, page, perPage int) (*FeedResponse, error) {
	var resp FeedResponse
	req := &FeedPostsRequest{Page: page, PerPage: perPage, Format: FormatHTML}
	if err := p.client.Request(ctx, "/feed/subscriptions", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *PostAPI) FeedAll(ctx context.Context, page, perPage int) (*FeedResponse, error) {
	var resp FeedResponse
	req := &FeedPostsRequest{Page: page, PerPage: perPage, Format: FormatHTML}
	if err := p.client.Request(ctx, "/feed/all", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *PostAPI) FeedWatch(ctx context.Context, all bool, page, perPage int) (*FeedResponse, error) {
	filter := "new"
	if all {
		filter = "all"
	}
	var resp FeedResponse
	req := &FeedWatchRequest{Filter: filter, Page: page, PerPage: perPage, Format: FormatHTML}
	if err := p.client.Request(ctx, "/feed/watch", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *PostAPI) Create(ctx context.Context, site, title, content string) (*PostCreateResponse, error) {
	var resp PostCreateResponse
	req := &PostCreateRequest{Site: site, Title: title, Content: content}
	if err := p.client.Request(ctx, "/post/create", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Comment posts a reply. parentCommentID 0 creates a top-level comment.
func (p *PostAPI) Comment(ctx context.Context, content string, postID, parentCommentID int) (*CommentResponse, error) {
	var resp CommentResponse
	req := &CommentCreateRequest{PostID: postID, CommentID: parentCommentID, Content: content}
	if err := p.client.Request(ctx, "/post/comment", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *PostAPI) EditComment(ctx context.Context, content string, commentID int) (*CommentResponse, error) {
	var resp CommentResponse
	req := &CommentEditRequest{ID: commentID, Content: content}
	if err := p.client.Request(ctx, "/post/edit-comment", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *PostAPI) EditPost(ctx context.Context, postID int, title, content string) (*PostEditResponse, error) {
	var resp PostEditResponse
	req := &PostEditRequest{ID: postID, Title: title, Content: content}
	if err := p.client.Request(ctx, "/post/edit", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Read reports the read position: how many comments the viewer has seen and
// optionally the last comment id. The response may carry refreshed unread
// counters.
func (p *PostAPI) Read(ctx context.Context, postID, comments, lastCommentID int) (*PostReadResponse, error) {
	var resp PostReadResponse
	req := &PostReadRequest{PostID: postID, Comments: comments, LastCommentID: lastCommentID}
	if err := p.client.Request(ctx, "/post/read", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *PostAPI) Watch(ctx context.Context, postID int, watch bool) (*PostWatchResponse, error) {
	var resp PostWatchResponse
	req := &PostWatchRequest{PostID: postID, Watch: watch}
	if err := p.client.Request(ctx, "/post/watch", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *PostAPI) Bookmark(ctx context.Context, postID int, bookmark bool) (*PostBookmarkResponse, error) {
	var resp PostBookmarkResponse
	req := &PostBookmarkRequest{PostID: postID, Bookmark: bookmark}
	if err := p.client.Request(ctx, "/post/bookmark", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
