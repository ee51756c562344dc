package customersvc

import (
	"context"
	"errors"

	"bikerental/model"
	customerrepo "bikerental/repository/customer"
	"bikerental/repository/listing"
	"bikerental/util/dates"
	"bikerental/util/idgen"
)

type ErrCode string

const (
	ErrInvalid          ErrCode = "INVALID"
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrHasActiveRentals ErrCode = "HAS_ACTIVE_RENTALS"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Checker interface {
	Check(i any) (bool, string)
}

type Service interface {
	List(ctx context.Context, q listing.Query) (listing.Page[model.Customer], error)
	Get(ctx context.Context, id string) (*model.Customer, error)
	// Create assigns an id when none is given; new customers start Inactive.
	Create(ctx context.Context, c *model.Customer) error
	Update(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) (int64, error)
}

type service struct {
	r   customerrepo.Repo
	v   Checker
	seq idgen.Sequence
}

func New(r customerrepo.Repo, v Checker, seq idgen.Sequence) Service {
	return &service{r: r, v: v, seq: seq}
}

func (s *service) List(ctx context.Context, q listing.Query) (listing.Page[model.Customer], error) {
	return s.r.List(ctx, q)
}

func (s *service) Get(ctx context.Context, id string) (*model.Customer, error) {
	return s.r.ByID(ctx, id)
}

func (s *service) Create(ctx context.Context, c *model.Customer) error {
	if c.ID == "" {
		last, ok, err := s.r.LastID(ctx)
		if err != nil {
			return err
		}
		if c.ID, err = s.seq.Next(last, ok); err != nil {
			return err
		}
	}
	if c.Status == "" {
		c.Status = model.CustomerInactive
	}
	if c.RegisteredAt.IsZero() {
		c.RegisteredAt = dates.Today()
	}
	c.RegisteredAt = dates.Day(c.RegisteredAt)
	if ok, msg := s.v.Check(c); !ok {
		return makeErr(ErrInvalid, msg)
	}
	return s.r.Add(ctx, c)
}

func (s *service) Update(ctx context.Context, c *model.Customer) error {
	if ok, msg := s.v.Check(c); !ok {
		return makeErr(ErrInvalid, msg)
	}
	cur, err := s.r.ByID(ctx, c.ID)
	if err != nil {
		return err
	}
	if cur == nil {
		return makeErr(ErrNotFound, "customer not found")
	}
	if c.Status == model.CustomerBlacklisted && cur.Status != model.CustomerBlacklisted {
		n, err := s.r.CountActiveRentals(ctx, c.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return makeErr(ErrHasActiveRentals, "customer with active rentals cannot be blacklisted")
		}
	}
	c.RegisteredAt = dates.Day(c.RegisteredAt)
	updated, err := s.r.Update(ctx, c)
	if err != nil {
		return err
	}
	if !updated {
		return makeErr(ErrNotFound, "customer not found")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	deleted, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return makeErr(ErrNotFound, "customer not found")
	}
	return nil
}

func (s *service) Clear(ctx context.Context) (int64, error) { return s.r.Clear(ctx) }
