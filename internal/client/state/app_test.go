package state

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaceshelter/orbitar-sub001/internal/client/api"
	"github.com/spaceshelter/orbitar-sub001/internal/client/cache"
	"github.com/spaceshelter/orbitar-sub001/internal/client/services"
	"github.com/spaceshelter/orbitar-sub001/internal/logging"
)

func statusPayload() map[string]any {
	return map[string]any{
		"user":          map[string]any{"id": 1, "username": "alice", "karma": 42},
		"site":          map[string]any{"id": 1, "site": "main", "name": "Main"},
		"watch":         map[string]any{"posts": 2, "comments": 5},
		"notifications": 3,
		"subscriptions": []any{
			map[string]any{"id": 2, "site": "idiod", "name": "Idiod"},
		},
	}
}

func newAppState(t *testing.T, handler http.HandlerFunc) (*AppState, *atomic.Int32) {
	t.Helper()
	calls := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, nil, logging.Nop{})
	auth := services.NewAuthService(api.NewAuthAPI(client), client, cache.NewEntityCache())
	return NewAppState(auth, logging.Nop{}, "main", time.Minute), calls
}

func TestAppState_Init_Success(t *testing.T) {
	s, calls := newAppState(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/status", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"result": "success", "payload": statusPayload()})
	})

	require.NoError(t, s.Init(context.Background()))
	assert.Equal(t, AppAuthorized, s.State())
	require.NotNil(t, s.User())
	assert.Equal(t, "alice", s.User().Username)
	assert.Equal(t, 5, s.WatchCounters().Comments)
	assert.Equal(t, 3, s.Notifications())
	require.Len(t, s.Subscriptions(), 1)
	assert.Equal(t, "idiod", s.Subscriptions()[0].Site)
	assert.Equal(t, int32(1), calls.Load())
}

func TestAppState_Init_AuthRequired_NoRetry(t *testing.T) {
	s, calls := newAppState(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"result": "error", "code": "auth-required", "message": "sign in"})
	})

	err := s.Init(context.Background())
	require.Error(t, err)
	assert.True(t, api.HasCode(err, api.CodeAuthRequired))
	assert.Equal(t, AppUnauthorized, s.State())
	assert.Nil(t, s.User())
	// Auth errors flip the state immediately, with no backoff rounds.
	assert.Equal(t, int32(1), calls.Load())
}

func TestAppState_Init_ApplicationError_NoRetry(t *testing.T) {
	s, calls := newAppState(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"result": "error", "code": "rate-limit", "message": "slow down"})
	})

	err := s.Init(context.Background())
	require.Error(t, err)
	assert.Equal(t, AppLoading, s.State())
	assert.Equal(t, int32(1), calls.Load())
}

func TestAppState_Init_NetworkError_RetriesUntilCanceled(t *testing.T) {
	s, calls := newAppState(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not an envelope"))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := s.Init(ctx)
	require.Error(t, err)
	// The first attempt ran; the 3s backoff outlived the context.
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, AppLoading, s.State())
}

func TestAppState_SetSiteName_UsedByNextRefresh(t *testing.T) {
	var gotSite atomic.Value
	s, _ := newAppState(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Site string `json:"site"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotSite.Store(req.Site)
		json.NewEncoder(w).Encode(map[string]any{"result": "success", "payload": statusPayload()})
	})

	s.SetSiteName("idiod")
	require.NoError(t, s.Init(context.Background()))
	assert.Equal(t, "idiod", gotSite.Load())
	assert.Equal(t, "idiod", s.SiteName())
}

func TestAppState_SetUnauthorized_DropsUser(t *testing.T) {
	s, _ := newAppState(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"result": "success", "payload": statusPayload()})
	})
	require.NoError(t, s.Init(context.Background()))
	require.NotNil(t, s.User())

	s.SetUnauthorized()
	assert.Equal(t, AppUnauthorized, s.State())
	assert.Nil(t, s.User())
}

func TestAppState_StatusPoller_RefreshesAndStops(t *testing.T) {
	s, calls := newAppState(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"result": "success", "payload": statusPayload()})
	})
	s.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	s.StartStatusPoller(ctx)

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, AppAuthorized, s.State())

	cancel()
	time.Sleep(30 * time.Millisecond)
	after := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}
