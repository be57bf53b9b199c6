package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spaceshelter/orbitar-sub001/internal/logging"
)

const (
	sessionHeader   = "X-Session-Id"
	requestIDHeader = "X-Request-Id"

	// SessionLifetime is how long a persisted session token stays valid
	// on the client side.
	SessionLifetime = 365 * 24 * time.Hour

	// skewBucket quantizes the clock-skew correction so that jitter in
	// round-trip times does not make the correction flap.
	skewBucket = 15 * time.Minute
)

// SessionStore persists the session token between runs.
type SessionStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string, expiresAt time.Time) error
}

type envelope struct {
	Result  string          `json:"result"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Sync    string          `json:"sync,omitempty"`
	Code    string          `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Client is the transport: it issues one kind of request (POST a JSON
// payload to a route, get a success-or-error envelope back), carries the
// session token across calls and keeps the clock-skew correction up to date.
// It never touches entity caches.
type Client struct {
	endpoint string
	http     *http.Client
	log      logging.Logger
	sessions SessionStore

	mu         sync.Mutex
	sessionID  string
	correction time.Duration

	// now is a test seam for the skew computation.
	now func() time.Time
}

// NewClient constructs a transport bound to an endpoint like
// "https://api.example.org/api/v1". sessions may be nil, in which case the
// token lives only for the lifetime of the process.
func NewClient(endpoint string, sessions SessionStore, log logging.Logger) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{},
		sessions: sessions,
		log:      log,
		now:      time.Now,
	}
	if sessions != nil {
		if token, err := sessions.Load(context.Background()); err == nil && token != "" {
			c.sessionID = token
		}
	}
	return c
}

// SessionID returns the currently held session token, "" if none.
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// ResetSession drops the held session token and its persisted copy.
func (c *Client) ResetSession(ctx context.Context) {
	c.mu.Lock()
	c.sessionID = ""
	c.mu.Unlock()
	if c.sessions != nil {
		if err := c.sessions.Save(ctx, "", time.Time{}); err != nil {
			c.log.Warn(ctx, "failed to clear persisted session", "error", err)
		}
	}
}

// Correction returns the current clock-skew correction.
func (c *Client) Correction() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.correction
}

// FixDate aligns a server-supplied timestamp with the local clock by adding
// the held correction. Applying the same correction twice to the same raw
// date yields the same result; the call is pure in the held state.
func (c *Client) FixDate(t time.Time) time.Time {
	return t.Add(c.Correction())
}

// Request POSTs payload to endpoint+route and decodes the payload of a
// success envelope into out (which may be nil when the caller does not need
// it). It returns *APIError for application errors and plain wrapped errors
// for network-kind failures.
func (c *Client) Request(ctx context.Context, route string, payload any, out any) error {
	if payload == nil {
		payload = struct{}{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", route, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+route, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", route, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	if session := c.SessionID(); session != "" {
		req.Header.Set(sessionHeader, session)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", route, err)
	}
	defer resp.Body.Close()

	// 429 is an application error regardless of what the body says.
	if resp.StatusCode == http.StatusTooManyRequests {
		return &APIError{Code: CodeRateLimit, Message: "rate limit exceeded", Status: resp.StatusCode}
	}

	if session := resp.Header.Get(sessionHeader); session != "" {
		c.replaceSession(ctx, session)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", route, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode %s response: %w", route, err)
	}

	if env.Result == "error" {
		return &APIError{Code: env.Code, Message: env.Message, Status: resp.StatusCode}
	}

	if env.Sync != "" {
		if serverTime, err := time.Parse(time.RFC3339, env.Sync); err == nil {
			c.updateCorrection(serverTime)
		} else {
			c.log.Warn(ctx, "unparseable sync timestamp", "route", route, "sync", env.Sync)
		}
	}

	if len(env.Payload) == 0 || string(env.Payload) == "null" {
		return &APIError{Code: CodeNoPayload, Message: "payload required", Status: resp.StatusCode}
	}

	if out != nil {
		if err := json.Unmarshal(env.Payload, out); err != nil {
			return fmt.Errorf("decode %s payload: %w", route, err)
		}
	}
	return nil
}

func (c *Client) replaceSession(ctx context.Context, session string) {
	c.mu.Lock()
	changed := c.sessionID != session
	c.sessionID = session
	c.mu.Unlock()
	if !changed || c.sessions == nil {
		return
	}
	if err := c.sessions.Save(ctx, session, c.now().Add(SessionLifetime)); err != nil {
		c.log.Warn(ctx, "failed to persist session", "error", err)
	}
}

func (c *Client) updateCorrection(serverTime time.Time) {
	correction := c.now().Sub(serverTime).Round(skewBucket)
	c.mu.Lock()
	c.correction = correction
	c.mu.Unlock()
}
