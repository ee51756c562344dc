package bikesvc

import (
	"context"
	"errors"

	"bikerental/model"
	bikerepo "bikerental/repository/bike"
	"bikerental/repository/listing"
	"bikerental/util/idgen"
)

type ErrCode string

const (
	ErrInvalid  ErrCode = "INVALID"
	ErrNotFound ErrCode = "NOT_FOUND"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

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
	List(ctx context.Context, q listing.Query) (listing.Page[model.Bike], error)
	Get(ctx context.Context, id string) (*model.Bike, error)
	Create(ctx context.Context, b *model.Bike) error
	Update(ctx context.Context, b *model.Bike) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) (int64, error)
}

type service struct {
	r bikerepo.Repo
	v Checker
}

func New(r bikerepo.Repo, v Checker) Service { return &service{r: r, v: v} }

var seq = idgen.Sequence{Prefix: idgen.BikePrefix}

func (s *service) List(ctx context.Context, q listing.Query) (listing.Page[model.Bike], error) {
	return s.r.List(ctx, q)
}

func (s *service) Get(ctx context.Context, id string) (*model.Bike, error) { return s.r.ByID(ctx, id) }

func (s *service) Create(ctx context.Context, b *model.Bike) error {
	if b.ID == "" {
		last, ok, err := s.r.LastID(ctx)
		if err != nil {
			return err
		}
		if b.ID, err = seq.Next(last, ok); err != nil {
			return err
		}
	}
	if b.Status == "" {
		b.Status = model.BikeAvailable
	}
	if ok, msg := s.v.Check(b); !ok {
		return makeErr(ErrInvalid, msg)
	}
	return s.r.Add(ctx, b)
}

func (s *service) Update(ctx context.Context, b *model.Bike) error {
	if ok, msg := s.v.Check(b); !ok {
		return makeErr(ErrInvalid, msg)
	}
	updated, err := s.r.Update(ctx, b)
	if err != nil {
		return err
	}
	if !updated {
		return makeErr(ErrNotFound, "bike not found")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	deleted, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return makeErr(ErrNotFound, "bike not found")
	}
	return nil
}

func (s *service) Clear(ctx context.Context) (int64, error) { return s.r.Clear(ctx) }
