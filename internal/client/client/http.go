package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/vakwetoweya/internal/client/models"
	"github.com/dmitrijs2005/vakwetoweya/internal/logging"
	"github.com/google/uuid"
)

// HTTPClient talks to the backend over HTTP/JSON. One call is one request:
// no retries, no batching, no queuing.
type HTTPClient struct {
	baseURL   string
	http      *http.Client
	tokens    TokenSource
	log       logging.Logger
	requestID func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout sets a per-request timeout. Zero leaves the network stack's
// defaults in charge.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient builds a client for baseURL reading the bearer token from
// tokens before every request.
func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
		tokens:    tokens,
		log:       logging.Discard(),
		requestID: uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Request sends one request and returns the decoded envelope.
//
// The session token is read from storage on every call. Content-Type is always
// application/json and Authorization is "Bearer <token>" or empty when logged
// out; headers may override Content-Type but never Authorization. body is
// serialized only for non-GET methods. The HTTP status does not decide
// success: the envelope's success field does.
func (c *HTTPClient) Request(ctx context.Context, endpoint, method string, body any, headers map[string]string) (*Envelope, error) {
	if method == "" {
		method = defaultMethod
	}

	token, err := c.tokens.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session token: %w", err)
	}

	var payload io.Reader
	if body != nil && method != http.MethodGet {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", endpoint, err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}

	reqID := c.requestID()
	req.Header.Set("Content-Type", contentTypeJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Authorization", bearer(token))
	req.Header.Set(HeaderRequestID, reqID)

	log := c.log.With("endpoint", endpoint, "method", method, "request_id", reqID)
	log.Debug(ctx, "sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error(ctx, "request error", "error", err)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(ctx, "read response error", "error", err)
		return nil, fmt.Errorf("%w: read %s response: %w", ErrTransport, endpoint, err)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Error(ctx, "response is not json", "status", resp.StatusCode, "error", err)
		return nil, fmt.Errorf("%w: decode %s response (status %d): %w", ErrTransport, endpoint, resp.StatusCode, err)
	}
	env.Status = resp.StatusCode

	if !env.Success && env.Auth == nil &&
		(resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		flag := true
		env.Auth = &flag
	}

	if env.IsAuthError() {
		// Surfaced to the caller as is; no re-login is attempted.
		log.Warn(ctx, "authentication expired or invalid", "status", resp.StatusCode)
	}

	log.Debug(ctx, "response received", "status", resp.StatusCode, "success", env.Success)
	return &env, nil
}

func bearer(token string) string {
	if token == "" {
		return ""
	}
	return "Bearer " + token
}

// call posts body to endpoint and turns a failed envelope into an error.
func (c *HTTPClient) call(ctx context.Context, endpoint, method string, body any) (*Envelope, error) {
	env, err := c.Request(ctx, endpoint, method, body, nil)
	if err != nil {
		return nil, err
	}
	if err := env.Result().Err(endpoint); err != nil {
		return env, err
	}
	return env, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	env, err := c.call(ctx, PathLogin, http.MethodPost, models.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if env.Token == "" {
		return nil, fmt.Errorf("%w: %s: no token", ErrMalformed, PathLogin)
	}

	res := &LoginResult{Token: env.Token}
	if len(env.User) > 0 && string(env.User) != "null" {
		var u models.User
		if err := json.Unmarshal(env.User, &u); err != nil {
			// The profile is only cached for display; a bad one is dropped.
			c.log.Warn(ctx, "ignoring undecodable user profile", "error", err)
		} else {
			res.User = &u
		}
	}
	return res, nil
}

func (c *HTTPClient) CheckEmail(ctx context.Context, email string) error {
	_, err := c.call(ctx, PathCheckEmail, http.MethodPost, map[string]string{"email": email})
	return err
}

func (c *HTTPClient) CompleteRegistration(ctx context.Context, reg models.Registration) error {
	_, err := c.call(ctx, PathCompleteRegistration, http.MethodPost, reg)
	return err
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.call(ctx, PathLogout, http.MethodPost, nil)
	return err
}

func getData[T any](ctx context.Context, c *HTTPClient, endpoint string) (T, error) {
	var zero T
	env, err := c.call(ctx, endpoint, http.MethodGet, nil)
	if err != nil {
		return zero, err
	}
	v, err := models.DecodeData[T](env.Data)
	if err != nil {
		return zero, fmt.Errorf("%w: %s data: %w", ErrMalformed, endpoint, err)
	}
	return v, nil
}

// getOne fetches a single record. A success envelope without data is
// malformed.
func getOne[T any](ctx context.Context, c *HTTPClient, endpoint string) (*T, error) {
	v, err := getData[*T](ctx, c, endpoint)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("%w: %s: no data", ErrMalformed, endpoint)
	}
	return v, nil
}

// getList fetches a collection, dropping null entries.
func getList[T any](ctx context.Context, c *HTTPClient, endpoint string) ([]*T, error) {
	vs, err := getData[[]*T](ctx, c, endpoint)
	if err != nil {
		return nil, err
	}
	return models.Compact(vs), nil
}

func (c *HTTPClient) Provinces(ctx context.Context) ([]*models.Province, error) {
	return getList[models.Province](ctx, c, PathProvinces)
}

func (c *HTTPClient) Hosts(ctx context.Context) ([]*models.Host, error) {
	return getList[models.Host](ctx, c, PathHosts)
}

func (c *HTTPClient) Host(ctx context.Context, id string) (*models.Host, error) {
	return getOne[models.Host](ctx, c, PathHosts+"/"+url.PathEscape(id))
}

func (c *HTTPClient) Tours(ctx context.Context) ([]*models.Tour, error) {
	return getList[models.Tour](ctx, c, PathTours)
}

func (c *HTTPClient) Tour(ctx context.Context, id string) (*models.Tour, error) {
	return getOne[models.Tour](ctx, c, PathTours+"/"+url.PathEscape(id))
}

func (c *HTTPClient) Bnbs(ctx context.Context) ([]*models.Bnb, error) {
	return getList[models.Bnb](ctx, c, PathBnb)
}

func (c *HTTPClient) Bnb(ctx context.Context, id string) (*models.Bnb, error) {
	return getOne[models.Bnb](ctx, c, PathBnb+"/"+url.PathEscape(id))
}

func (c *HTTPClient) BnbsByHost(ctx context.Context, hostID string) ([]*models.Bnb, error) {
	return getList[models.Bnb](ctx, c, PathBnb+"/host/"+url.PathEscape(hostID))
}

// Close drops idle keep-alive connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
