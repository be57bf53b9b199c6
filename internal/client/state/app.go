package state

import (
	"context"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/spaceshelter/orbitar-sub001/internal/client/api"
	"github.com/spaceshelter/orbitar-sub001/internal/client/models"
	"github.com/spaceshelter/orbitar-sub001/internal/client/services"
	"github.com/spaceshelter/orbitar-sub001/internal/logging"
)

// LoadingState is the top-level application state machine.
type LoadingState int

const (
	AppLoading LoadingState = iota
	AppUnauthorized
	AppAuthorized
)

// bootstrap retry schedule: one quick retry, a few short ones, then a slow
// crawl until the attempt cap.
const (
	bootstrapFirstRetry = 3 * time.Second
	bootstrapShortRetry = 7 * time.Second
	bootstrapSlowRetry  = 60 * time.Second
	bootstrapMaxRetries = 10
)

// AppState holds the session-wide client state: the loading state machine,
// the signed-in user, the current site and the unread counters refreshed by
// the periodic status poll.
type AppState struct {
	auth     *services.AuthService
	log      logging.Logger
	interval time.Duration

	mu            sync.Mutex
	state         LoadingState
	siteName      string
	user          *models.User
	site          *models.Site
	watch         api.WatchCounters
	notifications int
	subscriptions []*models.Site
}

// NewAppState constructs the state machine; interval is the status poll
// period.
func NewAppState(auth *services.AuthService, log logging.Logger, siteName string, interval time.Duration) *AppState {
	return &AppState{
		auth:     auth,
		log:      log,
		interval: interval,
		siteName: siteName,
		state:    AppLoading,
	}
}

func (a *AppState) State() LoadingState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *AppState) User() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

func (a *AppState) Site() *models.Site {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.site
}

func (a *AppState) SiteName() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.siteName
}

// SetSiteName switches the site context used by status refreshes.
func (a *AppState) SetSiteName(siteName string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.siteName = siteName
}

func (a *AppState) WatchCounters() api.WatchCounters {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.watch
}

func (a *AppState) Notifications() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.notifications
}

func (a *AppState) Subscriptions() []*models.Site {
	a.mu.Lock()
	defer a.mu.Unlock()
	subs := make([]*models.Site, len(a.subscriptions))
	copy(subs, a.subscriptions)
	return subs
}

// SetUnauthorized flips the state machine to the must-sign-in state, e.g.
// after a sign-out.
func (a *AppState) SetUnauthorized() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = AppUnauthorized
	a.user = nil
}

// Init bootstraps the session: it fetches the initial status, retrying
// network-level failures on the bootstrap schedule and giving up for good
// after the attempt cap. Application-level auth errors never retry: they
// flip the state machine to AppUnauthorized immediately.
func (a *AppState) Init(ctx context.Context) error {
	attempt := 0
	backoff := retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		if attempt > bootstrapMaxRetries {
			return 0, true
		}
		switch {
		case attempt == 1:
			return bootstrapFirstRetry, false
		case attempt < 5:
			return bootstrapShortRetry, false
		default:
			return bootstrapSlowRetry, false
		}
	})

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := a.refreshStatus(ctx); err != nil {
			if api.HasCode(err, api.CodeAuthRequired) {
				a.SetUnauthorized()
				return err
			}
			if api.IsNetworkError(err) {
				a.log.Warn(ctx, "status bootstrap failed, will retry", "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	return err
}

// StartStatusPoller launches the periodic status refresh. It re-arms after
// every attempt regardless of outcome and stops only when ctx is canceled;
// failures are logged and swallowed.
func (a *AppState) StartStatusPoller(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := a.refreshStatus(ctx); err != nil {
					a.log.Warn(ctx, "status poll failed", "error", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (a *AppState) refreshStatus(ctx context.Context) error {
	a.mu.Lock()
	siteName := a.siteName
	a.mu.Unlock()

	status, err := a.auth.Status(ctx, siteName)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = status.User
	a.watch = status.Watch
	a.notifications = status.Notifications
	a.subscriptions = status.Subscriptions
	if status.Site != nil {
		a.site = status.Site
	}
	a.state = AppAuthorized
	return nil
}
