package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/vakwetoweya/internal/client/models"
	"github.com/dmitrijs2005/vakwetoweya/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/vakwetoweya/internal/dbx"
)

// SQLiteStore persists the session in the local metadata table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (s *SQLiteStore) Get(ctx context.Context) (string, error) {
	v, err := s.repo(s.db).Get(ctx, KeyToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *SQLiteStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	return s.repo(s.db).Set(ctx, KeyToken, []byte(token))
}

func (s *SQLiteStore) SetSession(ctx context.Context, token string, user *models.User) error {
	if token == "" {
		return ErrEmptyToken
	}

	var profile []byte
	if user != nil {
		b, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		profile = b
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		if err := r.Set(ctx, KeyToken, []byte(token)); err != nil {
			return err
		}
		if profile == nil {
			return r.Delete(ctx, KeyUser)
		}
		return r.Set(ctx, KeyUser, profile)
	})
}

func (s *SQLiteStore) User(ctx context.Context) (*models.User, error) {
	v, err := s.repo(s.db).Get(ctx, KeyUser)
	if err != nil || v == nil {
		return nil, err
	}
	var u models.User
	if err := json.Unmarshal(v, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.repo(s.db).Delete(ctx, KeyToken, KeyUser)
}
