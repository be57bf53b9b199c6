package storage

import "context"

// draftPrefix matches the key convention for unsent comment text.
const draftPrefix = "crCmp:"

// Drafts persists unsent comment text per composer key, so a half-written
// reply survives navigation and restarts.
type Drafts struct {
	repo Repository
}

func NewDrafts(repo Repository) *Drafts {
	return &Drafts{repo: repo}
}

func (d *Drafts) Load(ctx context.Context, key string) (string, error) {
	data, err := d.repo.GetItem(ctx, draftPrefix+key)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (d *Drafts) Save(ctx context.Context, key, text string) error {
	if text == "" {
		return d.repo.DeleteItem(ctx, draftPrefix+key)
	}
	return d.repo.SetItem(ctx, draftPrefix+key, []byte(text))
}
