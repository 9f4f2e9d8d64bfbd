package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/vakwetoweya/internal/client/models"
)

// MemoryStore is an in-process Store, used by tests and as a fallback when no
// database path is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	user  *models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *MemoryStore) Set(_ context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) SetSession(_ context.Context, token string, user *models.User) error {
	if token == "" {
		return ErrEmptyToken
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.user = copyUser(user)
	return nil
}

func (m *MemoryStore) User(_ context.Context) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyUser(m.user), nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	m.token, m.user = "", nil
	m.mu.Unlock()
	return nil
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
