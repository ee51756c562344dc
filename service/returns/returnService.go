package returnsvc

import (
	"context"
	"database/sql"
	"errors"

	"bikerental/model"
	bikerepo "bikerental/repository/bike"
	customerrepo "bikerental/repository/customer"
	"bikerental/repository/listing"
	rentalrepo "bikerental/repository/rental"
	returnrepo "bikerental/repository/returns"
	"bikerental/util/dates"
	"bikerental/util/idgen"
)

type ErrCode string

const (
	ErrInvalid         ErrCode = "INVALID"
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrRentalNotFound  ErrCode = "RENTAL_NOT_FOUND"
	ErrDuplicateReturn ErrCode = "DUPLICATE_RETURN"
	ErrBikeInUse       ErrCode = "BIKE_IN_USE"
	ErrClearRefused    ErrCode = "CLEAR_REFUSED"
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

// AddOptions selects which related rows a return releases.
type AddOptions struct {
	ReleaseBike        bool
	DeactivateCustomer bool
}

type Service interface {
	List(ctx context.Context, q listing.Query) (listing.Page[model.Return], error)
	Get(ctx context.Context, id string) (*model.Return, error)
	Add(ctx context.Context, ret *model.Return, opt AddOptions) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) (int64, error)
}

type service struct {
	db        *sql.DB
	r         returnrepo.Repo
	rentals   rentalrepo.Repo
	bikes     bikerepo.Repo
	customers customerrepo.Repo
	v         Checker
	seq       idgen.Sequence
}

func New(db *sql.DB, r returnrepo.Repo, rentals rentalrepo.Repo, bikes bikerepo.Repo, customers customerrepo.Repo, v Checker, seq idgen.Sequence) Service {
	return &service{db: db, r: r, rentals: rentals, bikes: bikes, customers: customers, v: v, seq: seq}
}

func (s *service) List(ctx context.Context, q listing.Query) (listing.Page[model.Return], error) {
	return s.r.List(ctx, q)
}

func (s *service) Get(ctx context.Context, id string) (*model.Return, error) {
	return s.r.ByID(ctx, id)
}

func (s *service) Add(ctx context.Context, ret *model.Return, opt AddOptions) (err error) {
	if ret.RentalID == "" {
		return makeErr(ErrInvalid, "Rental ID: is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	exists, err := s.r.ExistsForRental(ctx, tx, ret.RentalID)
	if err != nil {
		return err
	}
	if exists {
		return makeErr(ErrDuplicateReturn, "rental "+ret.RentalID+" already has a return")
	}

	rt, err := s.rentals.ByIDTx(ctx, tx, ret.RentalID)
	if err != nil {
		return err
	}
	if rt == nil {
		return makeErr(ErrRentalNotFound, "rental not found")
	}
	if ret.CustomerID == "" {
		ret.CustomerID = rt.CustomerID
	}
	if ret.BikeID == "" {
		ret.BikeID = rt.BikeID
	}

	if ret.ID == "" {
		last, ok, err := s.r.LastIDTx(ctx, tx)
		if err != nil {
			return err
		}
		if ret.ID, err = s.seq.Next(last, ok); err != nil {
			return err
		}
	}
	if ret.ReturnDate.IsZero() {
		ret.ReturnDate = dates.Today()
	}
	ret.ReturnDate = dates.Day(ret.ReturnDate)
	if ok, msg := s.v.Check(ret); !ok {
		return makeErr(ErrInvalid, msg)
	}

	if err = s.rentals.SetStatus(ctx, tx, ret.RentalID, model.RentalCompleted); err != nil {
		return err
	}
	if err = s.r.Insert(ctx, tx, ret); err != nil {
		return err
	}
	if opt.ReleaseBike {
		if err = s.bikes.SetStatus(ctx, tx, ret.BikeID, model.BikeAvailable); err != nil {
			return err
		}
	}
	// the customer is deactivated even when other rentals are still open
	if opt.DeactivateCustomer {
		if err = s.customers.SetStatus(ctx, tx, ret.CustomerID, model.CustomerInactive); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *service) Delete(ctx context.Context, id string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	ret, err := s.r.ByIDTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if ret == nil {
		return makeErr(ErrNotFound, "return not found")
	}
	others, err := s.bikes.CountOtherActiveRentals(ctx, tx, ret.BikeID, ret.RentalID)
	if err != nil {
		return err
	}
	if others > 0 {
		return makeErr(ErrBikeInUse, "bike "+ret.BikeID+" is out on another active rental")
	}

	if err = s.r.Delete(ctx, tx, id); err != nil {
		return err
	}
	if err = s.rentals.SetStatus(ctx, tx, ret.RentalID, model.RentalActive); err != nil {
		return err
	}
	if err = s.bikes.SetStatus(ctx, tx, ret.BikeID, model.BikeRented); err != nil {
		return err
	}
	if err = s.customers.SetStatus(ctx, tx, ret.CustomerID, model.CustomerActive); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) Clear(ctx context.Context) (int64, error) {
	n, err := s.r.Clear(ctx)
	switch {
	case errors.Is(err, returnrepo.ErrActiveRentals), errors.Is(err, returnrepo.ErrRepeatedBikeReturns):
		return 0, makeErr(ErrClearRefused, err.Error())
	case err != nil:
		return 0, err
	}
	return n, nil
}
