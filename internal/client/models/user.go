// Package models defines the domain types shared by the caches, services
// and view state: users, sites, posts and comment trees.
package models

// UserGender mirrors the server-side gender enum.
type UserGender int

const (
	GenderFluid UserGender = iota
	GenderHe
	GenderShe
)

// User is the resolved identity of a platform user. Instances are
// authoritative snapshots from the server and are replaced wholesale
// on every fetch that carries a user record, never merged field by field.
type User struct {
	ID       int
	Username string
	Name     string
	Gender   UserGender
	Karma    int
	// Vote is the current viewer's karma vote for this user; 0 means no vote.
	Vote int
}

// SiteSubscription is the viewer's subscription state for a site.
type SiteSubscription struct {
	Main      bool
	Bookmarks bool
}

// Site is a sub-site ("board") of the platform, keyed by its domain slug.
type Site struct {
	ID    int
	Site  string
	Name  string
	Owner *User
	// Subscribe is present only when the server included the viewer's
	// subscription state.
	Subscribe *SiteSubscription
}
