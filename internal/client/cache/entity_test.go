package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaceshelter/orbitar-sub001/internal/client/models"
)

func TestEntityCache_LastWriteWins(t *testing.T) {
	c := NewEntityCache()

	c.SetUser(&models.User{ID: 1, Username: "alice", Karma: 10})
	c.SetUser(&models.User{ID: 1, Username: "alice", Karma: 12})

	got := c.GetUser(1)
	require.NotNil(t, got)
	assert.Equal(t, 12, got.Karma)
}

func TestEntityCache_SetReturnsStoredPointer(t *testing.T) {
	c := NewEntityCache()

	user := &models.User{ID: 2, Username: "bob"}
	stored := c.SetUser(user)
	assert.Same(t, user, stored)
	assert.Same(t, user, c.GetUser(2))
}

func TestEntityCache_MissReturnsNil(t *testing.T) {
	c := NewEntityCache()
	assert.Nil(t, c.GetUser(99))
	assert.Nil(t, c.GetPost(99))
	assert.Nil(t, c.GetSite("nope"))
}

func TestEntityCache_SitesKeyedBySlug(t *testing.T) {
	c := NewEntityCache()

	c.SetSite(&models.Site{ID: 1, Site: "main", Name: "Main"})
	c.SetSite(&models.Site{ID: 1, Site: "main", Name: "Renamed"})

	got := c.GetSite("main")
	require.NotNil(t, got)
	assert.Equal(t, "Renamed", got.Name)
}

func TestEntityCache_PostsIndependentOfUsers(t *testing.T) {
	c := NewEntityCache()

	c.SetPost(&models.Post{ID: 5, Title: "hello"})
	assert.Nil(t, c.GetUser(5))
	require.NotNil(t, c.GetPost(5))
}
