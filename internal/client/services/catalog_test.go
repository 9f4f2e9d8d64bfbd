package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/vakwetoweya/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostDetails(t *testing.T) {
	b := newBackend(t)
	svc := NewCatalogService(b.client)

	d, err := svc.HostDetails(context.Background(), "h1")
	require.NoError(t, err)
	assert.Equal(t, "Casa Tofo", d.Host.Name)
	assert.Len(t, d.Bnbs, 2)
	assert.Equal(t, "Inhambane", d.Provinces[d.Host.ProvinceID])
}

func TestHostDetails_UnknownHostFailsWhole(t *testing.T) {
	b := newBackend(t)
	svc := NewCatalogService(b.client)

	d, err := svc.HostDetails(context.Background(), "nope")
	assert.Nil(t, d)
	var rej *client.RejectedError
	require.ErrorAs(t, err, &rej)
}

func TestTourDetails(t *testing.T) {
	b := newBackend(t)
	svc := NewCatalogService(b.client)

	d, err := svc.TourDetails(context.Background(), "t2")
	require.NoError(t, err)
	assert.Equal(t, "Gorongosa Safari", d.Tour.Title)
	assert.Equal(t, "Sofala", d.Provinces[d.Tour.ProvinceID])
}

func TestListings(t *testing.T) {
	b := newBackend(t)
	svc := NewCatalogService(b.client)
	ctx := context.Background()

	ps, err := svc.Provinces(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, ps)

	hs, err := svc.Hosts(ctx)
	require.NoError(t, err)
	assert.Len(t, hs, 2)

	ts, err := svc.Tours(ctx)
	require.NoError(t, err)
	assert.Len(t, ts, 3)

	bs, err := svc.Bnbs(ctx)
	require.NoError(t, err)
	assert.Len(t, bs, 3)

	bn, err := svc.Bnb(ctx, "b3")
	require.NoError(t, err)
	assert.Equal(t, "h2", bn.HostID)
}
