package devserver

import (
	"net/http"
	"sync"

	"github.com/dmitrijs2005/vakwetoweya/internal/client/models"
	"github.com/go-chi/chi/v5"
)

// Catalog is the read-only listing data served under /provinces, /hosts,
// /tours and /bnb.
type Catalog struct {
	mu        sync.RWMutex
	Provinces []*models.Province
	Hosts     []*models.Host
	Bnbs      []*models.Bnb
	Tours     []*models.Tour
}

func (c *Catalog) host(id string) *models.Host {
	for _, h := range c.Hosts {
		if h.ID == id {
			return h
		}
	}
	return nil
}

func (c *Catalog) tour(id string) *models.Tour {
	for _, t := range c.Tours {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (c *Catalog) bnb(id string) *models.Bnb {
	for _, b := range c.Bnbs {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (c *Catalog) bnbsByHost(hostID string) []*models.Bnb {
	out := make([]*models.Bnb, 0)
	for _, b := range c.Bnbs {
		if b.HostID == hostID {
			out = append(out, b)
		}
	}
	return out
}

// AddTour appends t to the catalog.
func (c *Catalog) AddTour(t *models.Tour) {
	c.mu.Lock()
	c.Tours = append(c.Tours, t)
	c.mu.Unlock()
}

// SeedCatalog returns a small fixed data set.
func SeedCatalog() *Catalog {
	return &Catalog{
		Provinces: []*models.Province{
			{ID: "1", Name: "Maputo"},
			{ID: "2", Name: "Gaza"},
			{ID: "3", Name: "Inhambane"},
			{ID: "4", Name: "Sofala"},
			{ID: "5", Name: "Nampula"},
		},
		Hosts: []*models.Host{
			{ID: "h1", Name: "Casa Tofo", Description: "Beach house hosts", ProvinceID: "3", Phone: "+258 84 000 0001", Email: "tofo@example.com"},
			{ID: "h2", Name: "Bilene Lagoon Stays", Description: "Lagoon-side cottages", ProvinceID: "2", Email: "bilene@example.com"},
		},
		Bnbs: []*models.Bnb{
			{ID: "b1", HostID: "h1", Name: "Tofo Reef Room", ProvinceID: "3", Price: 3500, Rooms: 2},
			{ID: "b2", HostID: "h1", Name: "Tofo Dune Cabin", ProvinceID: "3", Price: 2800, Rooms: 1},
			{ID: "b3", HostID: "h2", Name: "Bilene Shore Cottage", ProvinceID: "2", Price: 4100, Rooms: 3},
		},
		Tours: []*models.Tour{
			{ID: "t1", Title: "Inhaca Island Day Trip", ProvinceID: "1", Price: 5200, Duration: "1 day"},
			{ID: "t2", Title: "Gorongosa Safari", ProvinceID: "4", Price: 18000, Duration: "3 days"},
			{ID: "t3", Title: "Ilha de Mocambique Heritage Walk", ProvinceID: "5", Price: 2500, Duration: "4 hours"},
		},
	}
}

func (s *Server) handleProvinces(w http.ResponseWriter, r *http.Request) {
	s.catalog.mu.RLock()
	defer s.catalog.mu.RUnlock()
	s.data(w, r, s.catalog.Provinces)
}

func (s *Server) handleHosts(w http.ResponseWriter, r *http.Request) {
	s.catalog.mu.RLock()
	defer s.catalog.mu.RUnlock()
	s.data(w, r, s.catalog.Hosts)
}

func (s *Server) handleHost(w http.ResponseWriter, r *http.Request) {
	s.catalog.mu.RLock()
	defer s.catalog.mu.RUnlock()
	h := s.catalog.host(chi.URLParam(r, "id"))
	if h == nil {
		s.fail(w, r, http.StatusNotFound, "Host not found")
		return
	}
	s.data(w, r, h)
}

func (s *Server) handleTours(w http.ResponseWriter, r *http.Request) {
	s.catalog.mu.RLock()
	defer s.catalog.mu.RUnlock()
	s.data(w, r, s.catalog.Tours)
}

func (s *Server) handleTour(w http.ResponseWriter, r *http.Request) {
	s.catalog.mu.RLock()
	defer s.catalog.mu.RUnlock()
	t := s.catalog.tour(chi.URLParam(r, "id"))
	if t == nil {
		s.fail(w, r, http.StatusNotFound, "Tour not found")
		return
	}
	s.data(w, r, t)
}

func (s *Server) handleBnbs(w http.ResponseWriter, r *http.Request) {
	s.catalog.mu.RLock()
	defer s.catalog.mu.RUnlock()
	s.data(w, r, s.catalog.Bnbs)
}

func (s *Server) handleBnb(w http.ResponseWriter, r *http.Request) {
	s.catalog.mu.RLock()
	defer s.catalog.mu.RUnlock()
	b := s.catalog.bnb(chi.URLParam(r, "id"))
	if b == nil {
		s.fail(w, r, http.StatusNotFound, "Bnb not found")
		return
	}
	s.data(w, r, b)
}

func (s *Server) handleBnbsByHost(w http.ResponseWriter, r *http.Request) {
	s.catalog.mu.RLock()
	defer s.catalog.mu.RUnlock()
	id := chi.URLParam(r, "id")
	if s.catalog.host(id) == nil {
		s.fail(w, r, http.StatusNotFound, "Host not found")
		return
	}
	s.data(w, r, s.catalog.bnbsByHost(id))
}
