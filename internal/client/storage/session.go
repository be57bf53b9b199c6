package storage

import (
	"context"
	"encoding/json"
	"time"
)

const SessionKey = "session"

type sessionRecord struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionStore keeps the session token in the key-value table, playing the
// role of the long-lived session cookie. Satisfies api.SessionStore.
type SessionStore struct {
	repo Repository
}

func NewSessionStore(repo Repository) *SessionStore {
	return &SessionStore{repo: repo}
}

// Load returns the persisted token, or "" when there is none or it expired.
func (s *SessionStore) Load(ctx context.Context) (string, error) {
	data, err := s.repo.GetItem(ctx, SessionKey)
	if err != nil {
		return "", err
	}
	if data == nil {
		return "", nil
	}
	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", nil
	}
	if !rec.ExpiresAt.IsZero() && time.Now().After(rec.ExpiresAt) {
		return "", nil
	}
	return rec.Token, nil
}

// Save replaces the persisted token. An empty token deletes the record.
func (s *SessionStore) Save(ctx context.Context, token string, expiresAt time.Time) error {
	if token == "" {
		return s.repo.DeleteItem(ctx, SessionKey)
	}
	data, err := json.Marshal(sessionRecord{Token: token, ExpiresAt: expiresAt})
	if err != nil {
		return err
	}
	return s.repo.SetItem(ctx, SessionKey, data)
}
