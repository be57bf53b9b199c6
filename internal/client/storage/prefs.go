package storage

import "context"

const (
	themeKey    = "theme"
	menuOpenKey = "menuOpen"
)

// Preferences persists small UI settings in the key-value table.
type Preferences struct {
	repo Repository
}

func NewPreferences(repo Repository) *Preferences {
	return &Preferences{repo: repo}
}

// Theme returns the stored theme name, or def when none is stored.
func (p *Preferences) Theme(ctx context.Context, def string) string {
	data, err := p.repo.GetItem(ctx, themeKey)
	if err != nil || len(data) == 0 {
		return def
	}
	return string(data)
}

func (p *Preferences) SetTheme(ctx context.Context, theme string) error {
	return p.repo.SetItem(ctx, themeKey, []byte(theme))
}

// MenuOpen reports whether the site menu was left open.
func (p *Preferences) MenuOpen(ctx context.Context) bool {
	data, err := p.repo.GetItem(ctx, menuOpenKey)
	return err == nil && string(data) == "true"
}

func (p *Preferences) SetMenuOpen(ctx context.Context, open bool) error {
	value := "false"
	if open {
		value = "true"
	}
	return p.repo.SetItem(ctx, menuOpenKey, []byte(value))
}
