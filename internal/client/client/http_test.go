package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/vakwetoweya/internal/client/models"
	"github.com/dmitrijs2005/vakwetoweya/internal/client/session"
	"github.com/dmitrijs2005/vakwetoweya/internal/logging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Method        string
	Path          string
	Header        http.Header
	Body          []byte
	ContentLength int64
}

// recorder is an httptest backend that records requests and replies with a
// fixed status and body.
type recorder struct {
	mu     sync.Mutex
	reqs   []capturedRequest
	status int
	body   string
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	b, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	r.reqs = append(r.reqs, capturedRequest{
		Method:        req.Method,
		Path:          req.URL.EscapedPath(),
		Header:        req.Header.Clone(),
		Body:          b,
		ContentLength: req.ContentLength,
	})
	status, body := r.status, r.body
	r.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (r *recorder) last(t *testing.T) capturedRequest {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.reqs)
	return r.reqs[len(r.reqs)-1]
}

func newTestClient(t *testing.T, rec *recorder, store session.Store, opts ...Option) *HTTPClient {
	t.Helper()
	ts := httptest.NewServer(rec)
	t.Cleanup(ts.Close)
	c := NewHTTPClient(ts.URL+"/", store, opts...)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

type failingTokens struct{}

func (failingTokens) Get(context.Context) (string, error) { return "", errors.New("disk gone") }

func TestRequest_GETWithoutBody(t *testing.T) {
	rec := &recorder{body: `{"success":true,"data":[]}`}
	c := newTestClient(t, rec, session.NewMemoryStore())

	env, err := c.Request(context.Background(), "/provinces", "", map[string]string{"ignored": "for GET"}, nil)
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusOK, env.Status)

	got := rec.last(t)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/provinces", got.Path)
	assert.Empty(t, got.Body, "GET never carries a body")
	assert.Zero(t, got.ContentLength)
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "", got.Header.Get("Authorization"), "no token, empty authorization")

	_, err = uuid.Parse(got.Header.Get(HeaderRequestID))
	assert.NoError(t, err)
}

func TestRequest_POSTSerializesBodyAndSendsBearer(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "tok-1"))

	rec := &recorder{body: `{"success":true}`}
	c := newTestClient(t, rec, store)

	_, err := c.Request(ctx, "/users/check-email", http.MethodPost, map[string]string{"email": "a@b.co"}, nil)
	require.NoError(t, err)

	got := rec.last(t)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.JSONEq(t, `{"email":"a@b.co"}`, string(got.Body))
	assert.Equal(t, "Bearer tok-1", got.Header.Get("Authorization"))
}

func TestRequest_NilBodyOnPOSTIsOmitted(t *testing.T) {
	rec := &recorder{body: `{"success":true}`}
	c := newTestClient(t, rec, session.NewMemoryStore())

	require.NoError(t, c.Logout(context.Background()))
	got := rec.last(t)
	assert.Equal(t, "/users/logout", got.Path)
	assert.Empty(t, got.Body)
}

func TestRequest_TokenReadOnEveryCall(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	rec := &recorder{body: `{"success":true}`}
	c := newTestClient(t, rec, store)

	require.NoError(t, store.Set(ctx, "first"))
	_, err := c.Request(ctx, "/tours", "GET", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer first", rec.last(t).Header.Get("Authorization"))

	require.NoError(t, store.Set(ctx, "second"))
	_, err = c.Request(ctx, "/tours", "GET", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer second", rec.last(t).Header.Get("Authorization"))

	require.NoError(t, store.Clear(ctx))
	_, err = c.Request(ctx, "/tours", "GET", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "", rec.last(t).Header.Get("Authorization"))
}

func TestRequest_ExtraHeaders(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "real"))

	rec := &recorder{body: `{"success":true}`}
	c := newTestClient(t, rec, store)

	_, err := c.Request(ctx, "/hosts", "GET", nil, map[string]string{
		"Accept-Language": "pt-MZ",
		"Content-Type":    "application/vnd.custom+json",
		"Authorization":   "Bearer forged",
	})
	require.NoError(t, err)

	got := rec.last(t)
	assert.Equal(t, "pt-MZ", got.Header.Get("Accept-Language"))
	assert.Equal(t, "application/vnd.custom+json", got.Header.Get("Content-Type"))
	assert.Equal(t, "Bearer real", got.Header.Get("Authorization"))
}

func TestRequest_TokenSourceError(t *testing.T) {
	rec := &recorder{body: `{"success":true}`}
	ts := httptest.NewServer(rec)
	defer ts.Close()
	c := NewHTTPClient(ts.URL, failingTokens{})

	_, err := c.Request(context.Background(), "/tours", "GET", nil, nil)
	require.ErrorContains(t, err, "read session token")
	assert.NotErrorIs(t, err, ErrTransport)
	assert.Empty(t, rec.reqs)
}

func TestRequest_NonJSONIsTransportError(t *testing.T) {
	rec := &recorder{status: http.StatusInternalServerError, body: "<html>Internal Server Error</html>"}
	c := newTestClient(t, rec, session.NewMemoryStore())

	_, err := c.Request(context.Background(), "/tours", "GET", nil, nil)
	require.ErrorIs(t, err, ErrTransport)
	assert.ErrorContains(t, err, "status 500")
}

func TestRequest_StatusDoesNotDecideSuccess(t *testing.T) {
	rec := &recorder{status: http.StatusInternalServerError, body: `{"success":true,"data":{"id":"t1","title":"x"}}`}
	c := newTestClient(t, rec, session.NewMemoryStore())

	tour, err := c.Tour(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", tour.ID)
}

func TestRequest_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := NewHTTPClient(url, session.NewMemoryStore())
	_, err := c.Request(context.Background(), "/tours", "GET", nil, nil)
	require.ErrorIs(t, err, ErrTransport)
}

func TestRequest_AuthFlagIsReturnedAndLogged(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	rec := &recorder{body: `{"success":false,"auth":true,"msg":"token expired"}`}
	c := newTestClient(t, rec, session.NewMemoryStore(), WithLogger(log))

	env, err := c.Request(context.Background(), "/bnb", "GET", nil, nil)
	require.NoError(t, err, "envelope is returned unchanged")
	assert.False(t, env.Success)
	assert.True(t, env.IsAuthError())
	assert.Equal(t, "token expired", env.Msg)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "authentication expired or invalid")

	_, err = c.Bnbs(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	var rej *RejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "token expired", rej.Message)
}

func TestRequest_StatusMapsToAuthOnlyWithoutFlag(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		auth   bool
	}{
		{"401 without flag", http.StatusUnauthorized, `{"success":false}`, true},
		{"403 without flag", http.StatusForbidden, `{"success":false,"msg":"no"}`, true},
		{"401 with explicit false", http.StatusUnauthorized, `{"success":false,"auth":false}`, false},
		{"400 without flag", http.StatusBadRequest, `{"success":false}`, false},
		{"401 but success", http.StatusUnauthorized, `{"success":true}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{status: tt.status, body: tt.body}
			c := newTestClient(t, rec, session.NewMemoryStore())

			env, err := c.Request(context.Background(), "/hosts", "GET", nil, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.auth, env.IsAuthError())
		})
	}
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		rec := &recorder{body: `{"success":true,"token":"jwt.token.here","user":{"id":"u1","name":"Ana","email":"ana@example.com"}}`}
		c := newTestClient(t, rec, session.NewMemoryStore())

		res, err := c.Login(context.Background(), "ana@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "jwt.token.here", res.Token)
		assert.Equal(t, &models.User{ID: "u1", Name: "Ana", Email: "ana@example.com"}, res.User)

		var sent models.Credentials
		require.NoError(t, json.Unmarshal(rec.last(t).Body, &sent))
		assert.Equal(t, models.Credentials{Email: "ana@example.com", Password: "s3cret"}, sent)
	})

	t.Run("rejected", func(t *testing.T) {
		rec := &recorder{body: `{"success":false,"msg":"Invalid credentials"}`}
		c := newTestClient(t, rec, session.NewMemoryStore())

		_, err := c.Login(context.Background(), "a@b.co", "x")
		var rej *RejectedError
		require.ErrorAs(t, err, &rej)
		assert.Equal(t, "Invalid credentials", rej.Message)
		assert.Equal(t, PathLogin, rej.Endpoint)
		assert.NotErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("no token", func(t *testing.T) {
		rec := &recorder{body: `{"success":true}`}
		c := newTestClient(t, rec, session.NewMemoryStore())

		_, err := c.Login(context.Background(), "a@b.co", "x")
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("bad user is dropped", func(t *testing.T) {
		rec := &recorder{body: `{"success":true,"token":"t","user":"not an object"}`}
		c := newTestClient(t, rec, session.NewMemoryStore())

		res, err := c.Login(context.Background(), "a@b.co", "x")
		require.NoError(t, err)
		assert.Equal(t, "t", res.Token)
		assert.Nil(t, res.User)
	})
}

func TestCompleteRegistration_SendsAllFields(t *testing.T) {
	rec := &recorder{body: `{"success":true}`}
	c := newTestClient(t, rec, session.NewMemoryStore())

	reg := models.Registration{Name: "Ana", Surname: "Mussa", Email: "ana@example.com", Password: "pw"}
	require.NoError(t, c.CompleteRegistration(context.Background(), reg))

	got := rec.last(t)
	assert.Equal(t, PathCompleteRegistration, got.Path)
	assert.JSONEq(t, `{"name":"Ana","surname":"Mussa","email":"ana@example.com","password":"pw"}`, string(got.Body))
}

func TestCatalogPaths(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{body: `{"success":true,"data":null}`}
	c := newTestClient(t, rec, session.NewMemoryStore())

	calls := []struct {
		do     func() error
		path   string
		single bool
	}{
		{func() error { _, err := c.Provinces(ctx); return err }, "/provinces", false},
		{func() error { _, err := c.Hosts(ctx); return err }, "/hosts", false},
		{func() error { _, err := c.Host(ctx, "h 1"); return err }, "/hosts/h%201", true},
		{func() error { _, err := c.Tours(ctx); return err }, "/tours", false},
		{func() error { _, err := c.Tour(ctx, "t1"); return err }, "/tours/t1", true},
		{func() error { _, err := c.Bnbs(ctx); return err }, "/bnb", false},
		{func() error { _, err := c.Bnb(ctx, "b/2"); return err }, "/bnb/b%2F2", true},
		{func() error { _, err := c.BnbsByHost(ctx, "h1"); return err }, "/bnb/host/h1", false},
	}
	for _, call := range calls {
		err := call.do()
		if call.single {
			// A single record with null data has nothing to show.
			assert.ErrorIs(t, err, ErrMalformed, call.path)
		} else {
			require.NoError(t, err, call.path)
		}
		got := rec.last(t)
		assert.Equal(t, http.MethodGet, got.Method, call.path)
		assert.Equal(t, call.path, got.Path)
	}
}

func TestCatalog_SingleRecordWithoutData(t *testing.T) {
	ctx := context.Background()
	for _, body := range []string{`{"success":true,"data":null}`, `{"success":true}`} {
		rec := &recorder{body: body}
		c := newTestClient(t, rec, session.NewMemoryStore())

		tour, err := c.Tour(ctx, "x")
		require.ErrorIs(t, err, ErrMalformed, body)
		assert.Nil(t, tour)
		assert.Contains(t, err.Error(), "/tours/x: no data")

		_, err = c.Host(ctx, "x")
		assert.ErrorIs(t, err, ErrMalformed, body)
		_, err = c.Bnb(ctx, "x")
		assert.ErrorIs(t, err, ErrMalformed, body)
	}
}

func TestCatalog_ListsDropNullEntries(t *testing.T) {
	rec := &recorder{body: `{"success":true,"data":[null,{"id":"t1","title":"Inhaca"},null]}`}
	c := newTestClient(t, rec, session.NewMemoryStore())

	ts, err := c.Tours(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*models.Tour{{ID: "t1", Title: "Inhaca"}}, ts)
}

func TestCatalog_DecodesData(t *testing.T) {
	rec := &recorder{body: `{"success":true,"data":[{"id":"1","name":"Inhambane"}]}`}
	c := newTestClient(t, rec, session.NewMemoryStore())

	ps, err := c.Provinces(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*models.Province{{ID: "1", Name: "Inhambane"}}, ps)

	rec.mu.Lock()
	rec.body = `{"success":true,"data":"oops"}`
	rec.mu.Unlock()
	_, err = c.Provinces(context.Background())
	assert.ErrorIs(t, err, ErrMalformed)
}
