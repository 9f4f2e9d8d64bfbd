// Package devserver is an in-memory stand-in for the booking backend. It
// speaks the same envelope contract as the real service and is used for local
// development of the client and in tests.
package devserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/vakwetoweya/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const DefaultTokenTTL = 24 * time.Hour

type account struct {
	ID           string
	Name         string
	Surname      string
	Email        string
	PasswordHash []byte
}

// Server holds accounts, issued-token revocations and the catalog.
type Server struct {
	secret   []byte
	tokenTTL time.Duration
	log      logging.Logger
	now      func() time.Time

	mu       sync.RWMutex
	accounts map[string]*account // by lowercase email
	revoked  map[string]struct{} // token ids
	catalog  *Catalog
}

type Option func(*Server)

func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.tokenTTL = d }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func WithCatalog(c *Catalog) Option {
	return func(s *Server) { s.catalog = c }
}

// New creates a server signing tokens with secret and serving SeedCatalog()
// unless WithCatalog says otherwise.
func New(secret []byte, opts ...Option) *Server {
	s := &Server{
		secret:   secret,
		tokenTTL: DefaultTokenTTL,
		log:      logging.Discard(),
		now:      time.Now,
		accounts: make(map[string]*account),
		revoked:  make(map[string]struct{}),
		catalog:  SeedCatalog(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Router wires the endpoints.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/users", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/check-email", s.handleCheckEmail)
		r.Post("/complete-registration", s.handleCompleteRegistration)
		r.With(s.requireToken).Post("/logout", s.handleLogout)
	})

	r.Get("/provinces", s.handleProvinces)
	r.Get("/hosts", s.handleHosts)
	r.Get("/hosts/{id}", s.handleHost)
	r.Get("/tours", s.handleTours)
	r.Get("/tours/{id}", s.handleTour)
	r.Get("/bnb", s.handleBnbs)
	r.Get("/bnb/host/{id}", s.handleBnbsByHost)
	r.Get("/bnb/{id}", s.handleBnb)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.fail(w, r, http.StatusNotFound, "Not found")
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", r.Header.Get("X-Request-ID"),
			"duration", time.Since(start),
		)
	})
}
