package services

import (
	"context"

	"github.com/spaceshelter/orbitar-sub001/internal/client/api"
	"github.com/spaceshelter/orbitar-sub001/internal/client/cache"
	"github.com/spaceshelter/orbitar-sub001/internal/client/models"
)

// StatusResult is the resolved periodic status snapshot.
type StatusResult struct {
	User          *models.User
	Site          *models.Site
	Watch         api.WatchCounters
	Notifications int
	Subscriptions []*models.Site
}

// AuthService wraps the session routes.
type AuthService struct {
	api    *api.AuthAPI
	client *api.Client
	res    resolver
}

func NewAuthService(authAPI *api.AuthAPI, client *api.Client, entities *cache.EntityCache) *AuthService {
	return &AuthService{
		api:    authAPI,
		client: client,
		res:    resolver{cache: entities, client: client},
	}
}

// Status fetches the signed-in user, unread counters and subscriptions for
// the given site context.
func (s *AuthService) Status(ctx context.Context, site string) (*StatusResult, error) {
	resp, err := s.api.Status(ctx, site)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{
		User:          s.res.user(resp.User),
		Site:          s.res.site(resp.Site),
		Watch:         resp.Watch,
		Notifications: resp.Notifications,
	}
	for _, entity := range resp.Subscriptions {
		result.Subscriptions = append(result.Subscriptions, s.res.site(entity))
	}
	return result, nil
}

// SignIn authenticates; on success the transport has already picked up the
// new session token from the response headers.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*models.User, error) {
	resp, err := s.api.SignIn(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.res.user(resp.User), nil
}

// SignOut ends the server-side session and drops the held token.
func (s *AuthService) SignOut(ctx context.Context) error {
	if err := s.api.SignOut(ctx); err != nil {
		return err
	}
	s.client.ResetSession(ctx)
	return nil
}
