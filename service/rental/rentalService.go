package rental

import (
	"context"
	"database/sql"
	"errors"

	"bikerental/model"
	bikerepo "bikerental/repository/bike"
	customerrepo "bikerental/repository/customer"
	"bikerental/repository/listing"
	rentalrepo "bikerental/repository/rental"
	"bikerental/util/dates"
	"bikerental/util/idgen"
)

type ErrCode string

const (
	ErrInvalid             ErrCode = "INVALID"
	ErrNotFound            ErrCode = "NOT_FOUND"
	ErrBikeNotFound        ErrCode = "BIKE_NOT_FOUND"
	ErrBikeUnavailable     ErrCode = "BIKE_UNAVAILABLE"
	ErrCustomerNotFound    ErrCode = "CUSTOMER_NOT_FOUND"
	ErrCustomerBlacklisted ErrCode = "CUSTOMER_BLACKLISTED"
	ErrStatusLocked        ErrCode = "STATUS_LOCKED"
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
	List(ctx context.Context, q listing.Query) (listing.Page[model.Rental], error)
	Get(ctx context.Context, id string) (*model.Rental, error)

	// Start opens an Active rental and marks its bike Rented and its
	// customer Active, all in one transaction.
	Start(ctx context.Context, r *model.Rental) error

	Update(ctx context.Context, r *model.Rental) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	db        *sql.DB
	r         rentalrepo.Repo
	bikes     bikerepo.Repo
	customers customerrepo.Repo
	v         Checker
	seq       idgen.Sequence
}

func New(db *sql.DB, r rentalrepo.Repo, bikes bikerepo.Repo, customers customerrepo.Repo, v Checker, seq idgen.Sequence) Service {
	return &service{db: db, r: r, bikes: bikes, customers: customers, v: v, seq: seq}
}

func (s *service) List(ctx context.Context, q listing.Query) (listing.Page[model.Rental], error) {
	return s.r.List(ctx, q)
}

func (s *service) Get(ctx context.Context, id string) (*model.Rental, error) {
	return s.r.ByID(ctx, id)
}

func (s *service) Start(ctx context.Context, rt *model.Rental) (err error) {
	rt.Status = model.RentalActive
	if rt.RentalDate.IsZero() {
		rt.RentalDate = dates.Today()
	}
	rt.RentalDate = dates.Day(rt.RentalDate)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if rt.ID == "" {
		var last string
		var ok bool
		if last, ok, err = s.r.LastIDTx(ctx, tx); err != nil {
			return err
		}
		if rt.ID, err = s.seq.Next(last, ok); err != nil {
			return err
		}
	}
	if ok, msg := s.v.Check(rt); !ok {
		return makeErr(ErrInvalid, msg)
	}

	bike, err := s.bikes.ByIDTx(ctx, tx, rt.BikeID)
	if err != nil {
		return err
	}
	if bike == nil {
		return makeErr(ErrBikeNotFound, "bike not found")
	}
	if bike.Status != model.BikeAvailable {
		return makeErr(ErrBikeUnavailable, "bike "+bike.ID+" is "+string(bike.Status))
	}

	cust, err := s.customers.ByIDTx(ctx, tx, rt.CustomerID)
	if err != nil {
		return err
	}
	if cust == nil {
		return makeErr(ErrCustomerNotFound, "customer not found")
	}
	if cust.Status == model.CustomerBlacklisted {
		return makeErr(ErrCustomerBlacklisted, "customer "+cust.ID+" is blacklisted")
	}

	if err = s.r.Insert(ctx, tx, rt); err != nil {
		return err
	}
	if err = s.bikes.SetStatus(ctx, tx, rt.BikeID, model.BikeRented); err != nil {
		return err
	}
	if err = s.customers.SetStatus(ctx, tx, rt.CustomerID, model.CustomerActive); err != nil {
		return err
	}
	return tx.Commit()
}

// Update edits a rental in place. Completed is reached and left only
// through the return flow, which also releases the bike.
func (s *service) Update(ctx context.Context, rt *model.Rental) error {
	if ok, msg := s.v.Check(rt); !ok {
		return makeErr(ErrInvalid, msg)
	}
	cur, err := s.r.ByID(ctx, rt.ID)
	if err != nil {
		return err
	}
	if cur == nil {
		return makeErr(ErrNotFound, "rental not found")
	}
	if cur.Status != rt.Status && (cur.Status == model.RentalCompleted || rt.Status == model.RentalCompleted) {
		return makeErr(ErrStatusLocked, "rental "+rt.ID+" cannot move from "+string(cur.Status)+" to "+string(rt.Status))
	}
	rt.RentalDate = dates.Day(rt.RentalDate)
	updated, err := s.r.Update(ctx, rt)
	if err != nil {
		return err
	}
	if !updated {
		return makeErr(ErrNotFound, "rental not found")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	deleted, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return makeErr(ErrNotFound, "rental not found")
	}
	return nil
}
