package paymentsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bikerental/model"
	"bikerental/repository/listing"
	paymentrepo "bikerental/repository/payment"
	rentalrepo "bikerental/repository/rental"
	returnrepo "bikerental/repository/returns"
	"bikerental/util/dates"
	"bikerental/util/idgen"
)

type ErrCode string

const (
	ErrInvalid        ErrCode = "INVALID"
	ErrNotFound       ErrCode = "NOT_FOUND"
	ErrRentalNotFound ErrCode = "RENTAL_NOT_FOUND"
	ErrOverpayment    ErrCode = "OVERPAYMENT"
	ErrUnknownCost    ErrCode = "UNKNOWN_RENTAL_COST"
	ErrRefundTooLarge ErrCode = "REFUND_TOO_LARGE"
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
	List(ctx context.Context, q listing.Query) (listing.Page[model.Payment], error)
	Get(ctx context.Context, id string) (*model.Payment, error)

	// Add records a payment. Payments on a returned rental may not push the
	// total past its amount to pay.
	Add(ctx context.Context, p *model.Payment) error

	// Refund writes a negative Refunded row bounded by what was paid over
	// the rental cost.
	Refund(ctx context.Context, paymentID string, amount int64) (*model.Payment, error)

	Update(ctx context.Context, p *model.Payment) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) (int64, error)
}

type service struct {
	db      *sql.DB
	r       paymentrepo.Repo
	rentals rentalrepo.Repo
	returns returnrepo.Repo
	v       Checker
	seq     idgen.Sequence
}

func New(db *sql.DB, r paymentrepo.Repo, rentals rentalrepo.Repo, returns returnrepo.Repo, v Checker, seq idgen.Sequence) Service {
	return &service{db: db, r: r, rentals: rentals, returns: returns, v: v, seq: seq}
}

func (s *service) List(ctx context.Context, q listing.Query) (listing.Page[model.Payment], error) {
	return s.r.List(ctx, q)
}

func (s *service) Get(ctx context.Context, id string) (*model.Payment, error) {
	return s.r.ByID(ctx, id)
}

func (s *service) Add(ctx context.Context, p *model.Payment) (err error) {
	if p.AmountPaid <= 0 {
		return makeErr(ErrInvalid, "Amount paid: must be greater than 0")
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

	rt, err := s.rentals.ByIDTx(ctx, tx, p.RentalID)
	if err != nil {
		return err
	}
	if rt == nil {
		return makeErr(ErrRentalNotFound, "rental not found")
	}
	if p.CustomerID == "" {
		p.CustomerID = rt.CustomerID
	}
	if p.BikeID == "" {
		p.BikeID = rt.BikeID
	}

	total, err := s.r.TotalPaid(ctx, tx, p.RentalID)
	if err != nil {
		return err
	}
	completed, err := s.returns.ExistsForRental(ctx, tx, p.RentalID)
	if err != nil {
		return err
	}

	limit, capped := int64(0), false
	if completed {
		if p.AmountToPay != nil {
			limit, capped = *p.AmountToPay, true
		} else if limit, capped, err = s.r.RentalCost(ctx, tx, p.RentalID); err != nil {
			return err
		}
	}
	if capped && total+p.AmountPaid > limit {
		return makeErr(ErrOverpayment, fmt.Sprintf(
			"payment of %d exceeds amount due: %d already paid of %d", p.AmountPaid, total, limit))
	}

	if p.ID == "" {
		last, ok, err := s.r.LastIDTx(ctx, tx)
		if err != nil {
			return err
		}
		if p.ID, err = s.seq.Next(last, ok); err != nil {
			return err
		}
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = dates.Today()
	}
	p.PaymentDate = dates.Day(p.PaymentDate)
	if p.Status == "" {
		p.Status = model.PaymentPending
		if completed && capped && total+p.AmountPaid == limit {
			p.Status = model.PaymentPaid
		}
	}
	if ok, msg := s.v.Check(p); !ok {
		return makeErr(ErrInvalid, msg)
	}

	if err = s.r.Insert(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) Refund(ctx context.Context, paymentID string, amount int64) (_ *model.Payment, err error) {
	if amount <= 0 {
		return nil, makeErr(ErrInvalid, "refund amount must be greater than 0")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	orig, err := s.r.ByIDTx(ctx, tx, paymentID)
	if err != nil {
		return nil, err
	}
	if orig == nil {
		return nil, makeErr(ErrNotFound, "payment not found")
	}

	total, err := s.r.TotalPaid(ctx, tx, orig.RentalID)
	if err != nil {
		return nil, err
	}
	cost, ok, err := s.r.RentalCost(ctx, tx, orig.RentalID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, makeErr(ErrUnknownCost, "cannot determine rental cost for "+orig.RentalID)
	}
	if refundable := total - cost; amount > refundable {
		return nil, makeErr(ErrRefundTooLarge, fmt.Sprintf("refund of %d exceeds refundable %d", amount, refundable))
	}

	last, found, err := s.r.LastIDTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	id, err := s.seq.Next(last, found)
	if err != nil {
		return nil, err
	}
	refund := &model.Payment{
		ID:          id,
		RentalID:    orig.RentalID,
		CustomerID:  orig.CustomerID,
		BikeID:      orig.BikeID,
		AmountPaid:  -amount,
		PaymentDate: dates.Today(),
		Status:      model.PaymentRefunded,
	}
	if err = s.r.Insert(ctx, tx, refund); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return refund, nil
}

func (s *service) Update(ctx context.Context, p *model.Payment) error {
	if ok, msg := s.v.Check(p); !ok {
		return makeErr(ErrInvalid, msg)
	}
	p.PaymentDate = dates.Day(p.PaymentDate)
	updated, err := s.r.Update(ctx, p)
	if err != nil {
		return err
	}
	if !updated {
		return makeErr(ErrNotFound, "payment not found")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	deleted, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return makeErr(ErrNotFound, "payment not found")
	}
	return nil
}

func (s *service) Clear(ctx context.Context) (int64, error) {
	return s.r.Clear(ctx)
}
