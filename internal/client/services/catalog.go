package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vakwetoweya/internal/client/client"
	"github.com/dmitrijs2005/vakwetoweya/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// CatalogService reads listings. Detail views fetch their parts in parallel
// and fail as a whole when any part fails.
type CatalogService interface {
	Provinces(ctx context.Context) ([]*models.Province, error)
	Hosts(ctx context.Context) ([]*models.Host, error)
	Tours(ctx context.Context) ([]*models.Tour, error)
	Bnbs(ctx context.Context) ([]*models.Bnb, error)
	Bnb(ctx context.Context, id string) (*models.Bnb, error)
	HostDetails(ctx context.Context, id string) (*models.HostDetails, error)
	TourDetails(ctx context.Context, id string) (*models.TourDetails, error)
}

type catalogService struct {
	client client.Client
}

func NewCatalogService(c client.Client) CatalogService {
	return &catalogService{client: c}
}

func (c *catalogService) Provinces(ctx context.Context) ([]*models.Province, error) {
	return c.client.Provinces(ctx)
}

func (c *catalogService) Hosts(ctx context.Context) ([]*models.Host, error) {
	return c.client.Hosts(ctx)
}

func (c *catalogService) Tours(ctx context.Context) ([]*models.Tour, error) {
	return c.client.Tours(ctx)
}

func (c *catalogService) Bnbs(ctx context.Context) ([]*models.Bnb, error) {
	return c.client.Bnbs(ctx)
}

func (c *catalogService) Bnb(ctx context.Context, id string) (*models.Bnb, error) {
	return c.client.Bnb(ctx, id)
}

// HostDetails loads the host, its stays and the province names.
func (c *catalogService) HostDetails(ctx context.Context, id string) (*models.HostDetails, error) {
	var (
		host      *models.Host
		bnbs      []*models.Bnb
		provinces []*models.Province
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		host, err = c.client.Host(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		bnbs, err = c.client.BnbsByHost(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		provinces, err = c.client.Provinces(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("host details error: %w", err)
	}

	return &models.HostDetails{Host: host, Bnbs: bnbs, Provinces: models.ProvinceNames(provinces)}, nil
}

// TourDetails loads the tour and the province names.
func (c *catalogService) TourDetails(ctx context.Context, id string) (*models.TourDetails, error) {
	var (
		tour      *models.Tour
		provinces []*models.Province
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		tour, err = c.client.Tour(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		provinces, err = c.client.Provinces(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("tour details error: %w", err)
	}

	return &models.TourDetails{Tour: tour, Provinces: models.ProvinceNames(provinces)}, nil
}
