package customerrepo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"bikerental/model"
	customerrepo "bikerental/repository/customer"
	"bikerental/repository/listing"
	"bikerental/util/database"
	"bikerental/util/database/dbtest"

	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, r customerrepo.Repo, n int) {
	t.Helper()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		c := &model.Customer{
			ID:           fmt.Sprintf("1000-%04d", i),
			Name:         fmt.Sprintf("Customer %02d", i),
			Phone:        fmt.Sprintf("0917-000-%04d", i),
			Address:      "Iligan City",
			Status:       model.CustomerInactive,
			RegisteredAt: base.AddDate(0, 0, i),
		}
		require.NoError(t, r.Add(context.Background(), c))
	}
}

func TestList_Paginates(t *testing.T) {
	r := customerrepo.New(dbtest.Open(t), listing.DefaultPageSize)
	seed(t, r, 15)
	ctx := context.Background()

	p1, err := r.List(ctx, listing.Query{Page: 1})
	require.NoError(t, err)
	require.EqualValues(t, 15, p1.Total)
	require.Len(t, p1.Items, 12)
	// default: newest registration first
	require.Equal(t, "1000-0015", p1.Items[0].ID)

	p2, err := r.List(ctx, listing.Query{Page: 2})
	require.NoError(t, err)
	require.Len(t, p2.Items, 3)
	require.Equal(t, "1000-0001", p2.Items[2].ID)

	p3, err := r.List(ctx, listing.Query{Page: 3})
	require.NoError(t, err)
	require.Empty(t, p3.Items)
	require.EqualValues(t, 15, p3.Total)
}

func TestList_SearchAndSort(t *testing.T) {
	r := customerrepo.New(dbtest.Open(t), 5)
	seed(t, r, 12)
	ctx := context.Background()

	got, err := r.List(ctx, listing.Query{Search: "CUSTOMER 1"})
	require.NoError(t, err)
	// 10, 11, 12
	require.EqualValues(t, 3, got.Total)

	got, err = r.List(ctx, listing.Query{Search: "0917-000-0007"})
	require.NoError(t, err)
	require.EqualValues(t, 1, got.Total)
	require.Equal(t, "1000-0007", got.Items[0].ID)

	got, err = r.List(ctx, listing.Query{Sort: "name", Dir: listing.Asc})
	require.NoError(t, err)
	require.Equal(t, 5, got.PageSize)
	require.Equal(t, "Customer 01", got.Items[0].Name)

	got, err = r.List(ctx, listing.Query{Sort: "name", Dir: listing.Desc})
	require.NoError(t, err)
	require.Equal(t, "Customer 12", got.Items[0].Name)
}

func TestCRUD(t *testing.T) {
	r := customerrepo.New(dbtest.Open(t), listing.DefaultPageSize)
	ctx := context.Background()

	c, err := r.ByID(ctx, "1000-0001")
	require.NoError(t, err)
	require.Nil(t, c)

	_, ok, err := r.LastID(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	seed(t, r, 2)
	err = r.Add(ctx, &model.Customer{ID: "1000-0001", Name: "Dup", Phone: "1", Address: "x", Status: model.CustomerActive, RegisteredAt: time.Now()})
	require.ErrorIs(t, err, database.ErrDuplicate)

	last, ok, err := r.LastID(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1000-0002", last)

	c, err = r.ByID(ctx, "1000-0002")
	require.NoError(t, err)
	require.NotNil(t, c)
	c.Status = model.CustomerBlacklisted
	updated, err := r.Update(ctx, c)
	require.NoError(t, err)
	require.True(t, updated)

	c, err = r.ByID(ctx, "1000-0002")
	require.NoError(t, err)
	require.Equal(t, model.CustomerBlacklisted, c.Status)

	updated, err = r.Update(ctx, &model.Customer{ID: "1000-0404"})
	require.NoError(t, err)
	require.False(t, updated)

	deleted, err := r.Delete(ctx, "1000-0001")
	require.NoError(t, err)
	require.True(t, deleted)

	n, err := r.Clear(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}
