package api

import "context"

type StatusRequest struct {
	Site string `json:"site,omitempty"`
}

type StatusResponse struct {
	User          *UserEntity   `json:"user"`
	Site          *SiteEntity   `json:"site,omitempty"`
	Watch         WatchCounters `json:"watch"`
	Notifications int           `json:"notifications"`
	Subscriptions []*SiteEntity `json:"subscriptions,omitempty"`
}

type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Session string      `json:"session"`
	User    *UserEntity `json:"user"`
}

// AuthAPI exposes the session and status routes.
type AuthAPI struct {
	client *Client
}

func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

// Status fetches the signed-in user, unread counters and subscriptions.
// The background poller calls it once a minute.
func (a *AuthAPI) Status(ctx context.Context, site string) (*StatusResponse, error) {
	var resp StatusResponse
	if err := a.client.Request(ctx, "/status", &StatusRequest{Site: site}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AuthAPI) SignIn(ctx context.Context, username, password string) (*SignInResponse, error) {
	var resp SignInResponse
	if err := a.client.Request(ctx, "/auth/signin", &SignInRequest{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AuthAPI) SignOut(ctx context.Context) error {
	return a.client.Request(ctx, "/auth/signout", nil, nil)
}
