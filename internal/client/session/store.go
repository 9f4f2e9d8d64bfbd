// Package session keeps the bearer token (and the cached user profile) in
// device storage and reports when it appears or disappears.
//
// The token is read fresh from the Store on every API request; nothing caches
// it in memory. Presence of a token is what "authenticated" means to the rest
// of the client. No expiry is tracked.
package session

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/vakwetoweya/internal/client/models"
)

// Storage keys. They match what the mobile app used, so a migrated store can
// be read as is.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

var ErrEmptyToken = errors.New("empty session token")

// Store is the single shared key/value cell holding the session.
//
// Get returns "" and a nil error when no token is stored. SetSession writes
// the token and the profile together; a nil user removes any cached profile.
// Clear removes both.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	SetSession(ctx context.Context, token string, user *models.User) error
	User(ctx context.Context) (*models.User, error)
	Clear(ctx context.Context) error
}

// notifyingStore reports every successful write to fn.
type notifyingStore struct {
	Store
	fn func(authenticated bool)
}

// WithNotify decorates s so that fn is called after each successful Set,
// SetSession (authenticated=true) and Clear (authenticated=false).
func WithNotify(s Store, fn func(authenticated bool)) Store {
	return &notifyingStore{Store: s, fn: fn}
}

func (n *notifyingStore) Set(ctx context.Context, token string) error {
	if err := n.Store.Set(ctx, token); err != nil {
		return err
	}
	n.fn(true)
	return nil
}

func (n *notifyingStore) SetSession(ctx context.Context, token string, user *models.User) error {
	if err := n.Store.SetSession(ctx, token, user); err != nil {
		return err
	}
	n.fn(true)
	return nil
}

func (n *notifyingStore) Clear(ctx context.Context) error {
	if err := n.Store.Clear(ctx); err != nil {
		return err
	}
	n.fn(false)
	return nil
}
