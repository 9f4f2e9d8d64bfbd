package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/vakwetoweya/internal/client/models"
)

// Client is the transport-agnostic contract of the booking backend.
type Client interface {
	// Request is the generic helper every typed call goes through.
	Request(ctx context.Context, endpoint, method string, body any, headers map[string]string) (*Envelope, error)

	Login(ctx context.Context, email, password string) (*LoginResult, error)
	CheckEmail(ctx context.Context, email string) error
	CompleteRegistration(ctx context.Context, reg models.Registration) error
	Logout(ctx context.Context) error

	Provinces(ctx context.Context) ([]*models.Province, error)
	Hosts(ctx context.Context) ([]*models.Host, error)
	Host(ctx context.Context, id string) (*models.Host, error)
	Tours(ctx context.Context) ([]*models.Tour, error)
	Tour(ctx context.Context, id string) (*models.Tour, error)
	Bnbs(ctx context.Context) ([]*models.Bnb, error)
	Bnb(ctx context.Context, id string) (*models.Bnb, error)
	BnbsByHost(ctx context.Context, hostID string) ([]*models.Bnb, error)

	Close() error
}

// TokenSource yields the current session token, "" when there is none.
// session.Store satisfies it.
type TokenSource interface {
	Get(ctx context.Context) (string, error)
}

// LoginResult is the payload of a successful /users/login.
type LoginResult struct {
	Token string
	User  *models.User
}

// Endpoint paths.
const (
	PathLogin                = "/users/login"
	PathCheckEmail           = "/users/check-email"
	PathCompleteRegistration = "/users/complete-registration"
	PathLogout               = "/users/logout"
	PathProvinces            = "/provinces"
	PathHosts                = "/hosts"
	PathTours                = "/tours"
	PathBnb                  = "/bnb"
)

const (
	HeaderRequestID = "X-Request-ID"
	contentTypeJSON = "application/json"
)

var _ Client = (*HTTPClient)(nil)

// defaultMethod is used when Request gets an empty method.
const defaultMethod = http.MethodGet
