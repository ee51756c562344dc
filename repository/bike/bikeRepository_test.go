package bikerepo_test

import (
	"context"
	"testing"

	"bikerental/model"
	bikerepo "bikerental/repository/bike"
	"bikerental/repository/listing"
	"bikerental/util/database/dbtest"

	"github.com/stretchr/testify/require"
)

func TestBikeRepo(t *testing.T) {
	db := dbtest.Open(t)
	r := bikerepo.New(db, listing.DefaultPageSize)
	ctx := context.Background()

	for _, b := range []model.Bike{
		{ID: "BIKE-0001", Model: "Trek FX 2", Type: "Hybrid", DailyRate: 250, Picture: "a.png", Status: model.BikeAvailable},
		{ID: "BIKE-0002", Model: "Giant Talon", Type: "Mountain", DailyRate: 300, Picture: "b.png", Status: model.BikeRented},
		{ID: "BIKE-0010", Model: "Brompton C", Type: "Folding", DailyRate: 450, Picture: "c.jpg", Status: model.BikeMaintenance},
	} {
		b := b
		require.NoError(t, r.Add(ctx, &b))
	}

	last, ok, err := r.LastID(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "BIKE-0010", last)

	page, err := r.List(ctx, listing.Query{})
	require.NoError(t, err)
	require.Equal(t, "BIKE-0010", page.Items[0].ID)

	// numeric columns are searchable as text
	page, err = r.List(ctx, listing.Query{Search: "450"})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)

	page, err = r.List(ctx, listing.Query{Search: "under maint"})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)

	page, err = r.List(ctx, listing.Query{Sort: "rate", Dir: listing.Asc})
	require.NoError(t, err)
	require.EqualValues(t, 250, page.Items[0].DailyRate)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, r.SetStatus(ctx, tx, "BIKE-0001", model.BikeRented))
	require.Error(t, r.SetStatus(ctx, tx, "BIKE-0404", model.BikeRented))
	require.NoError(t, tx.Commit())

	b, err := r.ByID(ctx, "BIKE-0001")
	require.NoError(t, err)
	require.Equal(t, model.BikeRented, b.Status)

	b, err = r.ByID(ctx, "BIKE-0404")
	require.NoError(t, err)
	require.Nil(t, b)

	updated, err := r.Update(ctx, &model.Bike{
		ID: "BIKE-0002", Model: "Giant Talon 3", Type: "Mountain", DailyRate: 320, Picture: "b.png", Status: model.BikeAvailable,
	})
	require.NoError(t, err)
	require.True(t, updated)
	b, err = r.ByID(ctx, "BIKE-0002")
	require.NoError(t, err)
	require.Equal(t, "Giant Talon 3", b.Model)
	require.EqualValues(t, 320, b.DailyRate)
	require.Equal(t, model.BikeAvailable, b.Status)

	updated, err = r.Update(ctx, &model.Bike{ID: "BIKE-0404", Model: "x", Type: "Hybrid", DailyRate: 1, Status: model.BikeAvailable})
	require.NoError(t, err)
	require.False(t, updated)

	n, err := r.Clear(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)
}
