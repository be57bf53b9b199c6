package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/spaceshelter/orbitar-sub001/internal/client/api"
	"github.com/spaceshelter/orbitar-sub001/internal/client/cache"
	"github.com/spaceshelter/orbitar-sub001/internal/client/config"
	"github.com/spaceshelter/orbitar-sub001/internal/client/models"
	"github.com/spaceshelter/orbitar-sub001/internal/client/services"
	"github.com/spaceshelter/orbitar-sub001/internal/client/state"
	"github.com/spaceshelter/orbitar-sub001/internal/client/storage"
	"github.com/spaceshelter/orbitar-sub001/internal/logging"
)

// App is the composition root of the terminal client: it wires storage,
// transport, caches, services and state machines together and drives them
// from a REPL.
type App struct {
	config   *config.Config
	log      logging.Logger
	store    storage.Repository
	client   *api.Client
	auth     *services.AuthService
	posts    *services.PostService
	votes    *services.VoteService
	entities *cache.EntityCache
	local    *cache.LocalCache
	drafts   *storage.Drafts
	prefs    *storage.Preferences
	appState *state.AppState
	feeds    map[string]*state.PostFeedState
	feedName string
	post     *state.PostState
	reader   *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	repo, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.APIEndpoint, storage.NewSessionStore(repo), log)
	entities := cache.NewEntityCache()
	local := cache.NewLocalCache(repo, log)

	authService := services.NewAuthService(api.NewAuthAPI(client), client, entities)
	postService := services.NewPostService(api.NewPostAPI(client), entities)
	voteService := services.NewVoteService(api.NewVoteAPI(client))

	a := &App{
		config:   cfg,
		log:      log,
		store:    repo,
		client:   client,
		auth:     authService,
		posts:    postService,
		votes:    voteService,
		entities: entities,
		local:    local,
		drafts:   storage.NewDrafts(repo),
		prefs:    storage.NewPreferences(repo),
		appState: state.NewAppState(authService, log, cfg.Site, cfg.StatusUpdateInterval),
		feeds:    make(map[string]*state.PostFeedState),
		feedName: feedSite,
		reader:   bufio.NewReader(os.Stdin),
	}

	// Keep feed items in sync with vote activity; karma-dependent refreshes
	// hang off confirmed notifications only.
	voteService.Subscribe(func(target api.VoteTarget, id int, st services.RatingState, confirmed bool) {
		if target != api.VotePost {
			return
		}
		rating, vote := st.Rating, st.Vote
		for _, feed := range a.feeds {
			feed.UpdatePost(id, models.PostPatch{Rating: &rating, Vote: &vote})
		}
	})

	return a, nil
}

// Feed source names as typed at the prompt.
const (
	feedSite          = "site"
	feedSubscriptions = "subs"
	feedAll           = "all"
	feedWatch         = "watch"
)

// feedState returns the feed for a source name, constructing it on first
// use. The site feed is keyed by the site context so switching sites gets a
// fresh cache entry.
func (a *App) feedState(name string) *state.PostFeedState {
	if feed, ok := a.feeds[name]; ok {
		return feed
	}

	var source state.FeedSource
	var deps []any
	switch name {
	case feedSubscriptions:
		source = func(ctx context.Context, page, perPage int) (*services.FeedResult, error) {
			return a.posts.FeedSubscriptions(ctx, page, perPage)
		}
	case feedAll:
		source = func(ctx context.Context, page, perPage int) (*services.FeedResult, error) {
			return a.posts.FeedAll(ctx, page, perPage)
		}
	case feedWatch:
		source = func(ctx context.Context, page, perPage int) (*services.FeedResult, error) {
			return a.posts.FeedWatch(ctx, false, page, perPage)
		}
	default:
		site := a.appState.SiteName()
		deps = []any{site}
		source = func(ctx context.Context, page, perPage int) (*services.FeedResult, error) {
			return a.posts.Feed(ctx, site, page, perPage)
		}
	}

	feed := state.NewPostFeedState(source, a.local, a.log, "feed:"+name, deps, a.config.FeedPerPage)
	a.feeds[name] = feed
	return feed
}

// Run bootstraps the session in the background, starts the status poller
// and enters the REPL.
func (a *App) Run(ctx context.Context) {
	go func() {
		if err := a.appState.Init(ctx); err != nil {
			a.log.Warn(ctx, "session bootstrap gave up", "error", err)
		}
	}()
	a.appState.StartStatusPoller(ctx)

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.appState.State() == state.AppAuthorized
}

func (a *App) status() string {
	switch a.appState.State() {
	case state.AppAuthorized:
		if user := a.appState.User(); user != nil {
			return user.Username + "@" + a.appState.SiteName()
		}
		return a.appState.SiteName()
	case state.AppUnauthorized:
		return "signed out"
	default:
		return "connecting"
	}
}
