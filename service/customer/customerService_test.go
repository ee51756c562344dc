package customersvc_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bikerental/model"
	customerrepo "bikerental/repository/customer"
	customersvc "bikerental/service/customer"
	"bikerental/util/idgen"
	"bikerental/validation"

	"github.com/stretchr/testify/require"
)

// repoMock panics on any method a test does not stub.
type repoMock struct {
	customerrepo.Repo
	byIDFn   func(ctx context.Context, id string) (*model.Customer, error)
	addFn    func(ctx context.Context, c *model.Customer) error
	updateFn func(ctx context.Context, c *model.Customer) (bool, error)
	deleteFn func(ctx context.Context, id string) (bool, error)
	lastIDFn func(ctx context.Context) (string, bool, error)
	countFn  func(ctx context.Context, id string) (int64, error)
}

func (m *repoMock) ByID(ctx context.Context, id string) (*model.Customer, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) Add(ctx context.Context, c *model.Customer) error { return m.addFn(ctx, c) }
func (m *repoMock) Update(ctx context.Context, c *model.Customer) (bool, error) {
	return m.updateFn(ctx, c)
}
func (m *repoMock) Delete(ctx context.Context, id string) (bool, error) { return m.deleteFn(ctx, id) }
func (m *repoMock) LastID(ctx context.Context) (string, bool, error)    { return m.lastIDFn(ctx) }
func (m *repoMock) CountActiveRentals(ctx context.Context, id string) (int64, error) {
	return m.countFn(ctx, id)
}

func customer() *model.Customer {
	return &model.Customer{
		Name:    "Ana Dela Cruz",
		Phone:   "0917-555-0101",
		Address: "12 Rizal St., Iligan City",
	}
}

func newSvc(m *repoMock) customersvc.Service {
	return customersvc.New(m, validation.New(), idgen.Sequence{Prefix: "1000"})
}

func TestCreate_AssignsNextIDAndDefaults(t *testing.T) {
	var saved *model.Customer
	m := &repoMock{
		lastIDFn: func(ctx context.Context) (string, bool, error) { return "1000-0041", true, nil },
		addFn:    func(ctx context.Context, c *model.Customer) error { saved = c; return nil },
	}
	c := customer()
	c.RegisteredAt = time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)
	require.NoError(t, newSvc(m).Create(context.Background(), c))

	require.Equal(t, "1000-0042", saved.ID)
	require.Equal(t, model.CustomerInactive, saved.Status)
	require.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), saved.RegisteredAt)
}

func TestCreate_FirstCustomer(t *testing.T) {
	var saved *model.Customer
	m := &repoMock{
		lastIDFn: func(ctx context.Context) (string, bool, error) { return "", false, nil },
		addFn:    func(ctx context.Context, c *model.Customer) error { saved = c; return nil },
	}
	require.NoError(t, newSvc(m).Create(context.Background(), customer()))
	require.Equal(t, "1000-0001", saved.ID)
	require.False(t, saved.RegisteredAt.IsZero())
}

func TestCreate_Invalid(t *testing.T) {
	m := &repoMock{
		lastIDFn: func(ctx context.Context) (string, bool, error) { return "", false, nil },
	}
	c := customer()
	c.Name = ""
	err := newSvc(m).Create(context.Background(), c)
	require.Equal(t, customersvc.ErrInvalid, customersvc.Code(err))
	require.EqualError(t, err, "Name: is required")
}

func TestCreate_RepoError(t *testing.T) {
	boom := errors.New("boom")
	m := &repoMock{
		lastIDFn: func(ctx context.Context) (string, bool, error) { return "", false, boom },
	}
	require.ErrorIs(t, newSvc(m).Create(context.Background(), customer()), boom)
}

func TestUpdate_BlacklistRefusedWithActiveRentals(t *testing.T) {
	updated := false
	m := &repoMock{
		byIDFn: func(ctx context.Context, id string) (*model.Customer, error) {
			c := customer()
			c.ID, c.Status = id, model.CustomerActive
			return c, nil
		},
		countFn:  func(ctx context.Context, id string) (int64, error) { return 1, nil },
		updateFn: func(ctx context.Context, c *model.Customer) (bool, error) { updated = true; return true, nil },
	}
	c := customer()
	c.ID, c.Status, c.RegisteredAt = "1000-0001", model.CustomerBlacklisted, time.Now()

	err := newSvc(m).Update(context.Background(), c)
	require.Equal(t, customersvc.ErrHasActiveRentals, customersvc.Code(err))
	require.False(t, updated)

	m.countFn = func(ctx context.Context, id string) (int64, error) { return 0, nil }
	require.NoError(t, newSvc(m).Update(context.Background(), c))
	require.True(t, updated)
}

func TestUpdate_NotFound(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id string) (*model.Customer, error) { return nil, nil },
	}
	c := customer()
	c.ID, c.Status, c.RegisteredAt = "1000-0009", model.CustomerActive, time.Now()
	require.Equal(t, customersvc.ErrNotFound, customersvc.Code(newSvc(m).Update(context.Background(), c)))
}

func TestDelete(t *testing.T) {
	m := &repoMock{
		deleteFn: func(ctx context.Context, id string) (bool, error) { return id == "1000-0001", nil },
	}
	s := newSvc(m)
	require.NoError(t, s.Delete(context.Background(), "1000-0001"))
	require.Equal(t, customersvc.ErrNotFound, customersvc.Code(s.Delete(context.Background(), "1000-0002")))
}
