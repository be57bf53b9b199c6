// Package state holds the client-side state machines: the application
// loading state with its background status poll, the paginated post feeds,
// and the per-post comment tree reconciler.
package state

import (
	"context"
	"sync"

	"github.com/spaceshelter/orbitar-sub001/internal/client/cache"
	"github.com/spaceshelter/orbitar-sub001/internal/client/models"
	"github.com/spaceshelter/orbitar-sub001/internal/client/services"
	"github.com/spaceshelter/orbitar-sub001/internal/logging"
)

// FeedStatus is the feed state machine: Loading while a page fetch is in
// flight, Ready after it applied, Error after it failed.
type FeedStatus int

const (
	FeedLoading FeedStatus = iota
	FeedReady
	FeedError
)

// FeedSource fetches one page of posts; implementations wrap the individual
// feed routes (site feed, subscriptions, all, watch).
type FeedSource func(ctx context.Context, page, perPage int) (*services.FeedResult, error)

// PostFeedState tracks one paginated post list. A page change supersedes an
// in-flight fetch: the stale response is discarded on arrival by comparing
// the page it was requested for against the page currently recorded. Before
// each fetch the item list is primed from the local cache so a stale list
// renders instantly.
type PostFeedState struct {
	source    FeedSource
	local     *cache.LocalCache
	log       logging.Logger
	cacheName string
	baseDeps  []any

	mu      sync.Mutex
	page    int
	perPage int
	pages   int
	status  FeedStatus
	posts   []*models.Post
}

// NewPostFeedState constructs a feed over source, primed from the local
// cache under cacheName and baseDeps. The page number and page size are
// appended to baseDeps, so every page has its own cache entry.
func NewPostFeedState(source FeedSource, local *cache.LocalCache, log logging.Logger, cacheName string, baseDeps []any, perPage int) *PostFeedState {
	s := &PostFeedState{
		source:    source,
		local:     local,
		log:       log,
		cacheName: cacheName,
		baseDeps:  baseDeps,
		page:      1,
		perPage:   perPage,
		status:    FeedLoading,
	}
	s.loadFromCache(context.Background(), 1)
	return s
}

// cacheDeps builds the dependency tuple for one page. perPage never changes
// after construction.
func (s *PostFeedState) cacheDeps(page int) []any {
	deps := make([]any, 0, len(s.baseDeps)+2)
	deps = append(deps, s.baseDeps...)
	return append(deps, page, s.perPage)
}

func (s *PostFeedState) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

func (s *PostFeedState) Pages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages
}

func (s *PostFeedState) Status() FeedStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *PostFeedState) Loading() bool { return s.Status() == FeedLoading }
func (s *PostFeedState) Error() bool   { return s.Status() == FeedError }

// Posts returns the current item list. The returned slice is a copy; the
// items are shared.
func (s *PostFeedState) Posts() []*models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := make([]*models.Post, len(s.posts))
	copy(posts, s.posts)
	return posts
}

// LoadPage navigates to a page: records it, enters Loading, primes the item
// list from the page's own cache entry (clearing the list when the page has
// none) and fetches. A fetch whose page was superseded while in flight is
// silently discarded.
func (s *PostFeedState) LoadPage(ctx context.Context, page int) error {
	s.mu.Lock()
	s.page = page
	s.status = FeedLoading
	s.mu.Unlock()

	s.loadFromCache(ctx, page)
	return s.loadPosts(ctx)
}

func (s *PostFeedState) loadPosts(ctx context.Context) error {
	s.mu.Lock()
	curPage := s.page
	perPage := s.perPage
	s.mu.Unlock()

	result, err := s.source(ctx, curPage, perPage)
	if err != nil {
		s.mu.Lock()
		s.status = FeedError
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	if curPage != s.page {
		// A newer navigation won; this response must neither clobber the
		// shown list nor the cache entry of the current page.
		s.mu.Unlock()
		return nil
	}
	s.posts = result.Posts
	s.status = FeedReady
	s.pages = totalPages(result.Total, perPage)
	s.mu.Unlock()

	s.local.Write(ctx, s.cacheName, s.cacheDeps(curPage), result.Posts)
	return nil
}

// UpdatePost patches a single item in place of a full reload; used by the
// vote controller and the watch/bookmark toggles. Missing ids are ignored.
func (s *PostFeedState) UpdatePost(id int, patch models.PostPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, post := range s.posts {
		if post.ID == id {
			s.posts[i] = patch.Apply(post)
			return
		}
	}
}

func (s *PostFeedState) loadFromCache(ctx context.Context, page int) {
	cached, ok := cache.Get[[]*models.Post](ctx, s.local, s.cacheName, s.cacheDeps(page))
	s.mu.Lock()
	if ok {
		s.posts = cached
	} else {
		// Another page's list must never render under this page number.
		s.posts = nil
	}
	s.mu.Unlock()
}

func totalPages(total, perPage int) int {
	if total <= 0 {
		return 0
	}
	return (total-1)/perPage + 1
}
