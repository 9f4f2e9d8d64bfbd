// Package services contains application services for the booking client.
// This file defines the authentication service: login, the two-call signup,
// logout, and reporting of the locally stored session.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vakwetoweya/internal/client/client"
	"github.com/dmitrijs2005/vakwetoweya/internal/client/models"
	"github.com/dmitrijs2005/vakwetoweya/internal/client/session"
	"github.com/dmitrijs2005/vakwetoweya/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and persist token and profile.
//   - CheckEmail: ask the server whether an email may start a signup.
//   - CompleteRegistration: create the account; does not log in.
//   - Logout: end the session on the server and always drop the local one.
//   - Status: describe the locally stored session.
//   - Close: release underlying client resources.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	CheckEmail(ctx context.Context, email string) error
	CompleteRegistration(ctx context.Context, reg models.Registration) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) (*Status, error)
	Close(ctx context.Context) error
}

// Status is a snapshot of the stored session.
type Status struct {
	Authenticated bool
	User          *models.User
	Token         session.TokenInfo
}

// authService is the concrete AuthService backed by a remote Client and the
// session store.
type authService struct {
	client client.Client
	store  session.Store
	log    logging.Logger
	now    func() time.Time
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(c client.Client, store session.Store, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &authService{client: c, store: store, log: log, now: time.Now}
}

// Login authenticates and, on success, writes token and profile in one step.
// Nothing is persisted when the server rejects the credentials.
func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	res, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	if err := a.store.SetSession(ctx, res.Token, res.User); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	a.log.Info(ctx, "logged in", "email", email)
	return res.User, nil
}

func (a *authService) CheckEmail(ctx context.Context, email string) error {
	if err := a.client.CheckEmail(ctx, email); err != nil {
		return fmt.Errorf("check email error: %w", err)
	}
	return nil
}

func (a *authService) CompleteRegistration(ctx context.Context, reg models.Registration) error {
	if err := a.client.CompleteRegistration(ctx, reg); err != nil {
		return fmt.Errorf("registration error: %w", err)
	}
	return nil
}

// Logout tells the server the token is no longer in use and clears the local
// session regardless of the outcome. The server error, if any, is returned
// after the store is cleared.
func (a *authService) Logout(ctx context.Context) error {
	token, err := a.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("session read error: %w", err)
	}

	var serverErr error
	if token != "" {
		if serverErr = a.client.Logout(ctx); serverErr != nil {
			a.log.Warn(ctx, "server logout failed, clearing local session anyway", "error", serverErr)
		}
	}

	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("session clearing error: %w", err)
	}
	if serverErr != nil {
		return fmt.Errorf("logout error: %w", serverErr)
	}
	return nil
}

// Status reads the stored token and profile. An expired JWT is still
// reported as authenticated; only the backend decides.
func (a *authService) Status(ctx context.Context) (*Status, error) {
	token, err := a.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("session read error: %w", err)
	}
	if token == "" {
		return &Status{}, nil
	}

	st := &Status{Authenticated: true, Token: session.Inspect(token)}
	u, err := a.store.User(ctx)
	if err != nil {
		a.log.Warn(ctx, "cached profile unreadable", "error", err)
	}
	st.User = u
	return st, nil
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
