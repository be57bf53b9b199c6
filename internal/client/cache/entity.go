// Package cache holds the client-side caches: the process-wide entity cache
// and the dependency-keyed local read-through cache.
package cache

import (
	"sync"

	"github.com/spaceshelter/orbitar-sub001/internal/client/models"
)

// EntityCache is the normalized store for User, Post and Site snapshots.
// Upserts replace wholesale: server responses are authoritative snapshots,
// never partial patches, so there is no field-level merge. The set methods
// return the stored pointer so callers can chain them while normalizing
// foreign-key references.
type EntityCache struct {
	mu    sync.Mutex
	users map[int]*models.User
	posts map[int]*models.Post
	sites map[string]*models.Site
}

func NewEntityCache() *EntityCache {
	return &EntityCache{
		users: make(map[int]*models.User),
		posts: make(map[int]*models.Post),
		sites: make(map[string]*models.Site),
	}
}

func (c *EntityCache) SetUser(user *models.User) *models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users[user.ID] = user
	return user
}

func (c *EntityCache) GetUser(id int) *models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.users[id]
}

func (c *EntityCache) SetPost(post *models.Post) *models.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts[post.ID] = post
	return post
}

func (c *EntityCache) GetPost(id int) *models.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.posts[id]
}

func (c *EntityCache) SetSite(site *models.Site) *models.Site {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sites[site.Site] = site
	return site
}

func (c *EntityCache) GetSite(slug string) *models.Site {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sites[slug]
}
