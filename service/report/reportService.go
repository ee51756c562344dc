package reportsvc

import (
	"context"
	"time"

	"bikerental/model"
	"bikerental/repository/listing"
)

type PaymentLister interface {
	List(ctx context.Context, q listing.Query) (listing.Page[model.Payment], error)
}

type RentalLister interface {
	List(ctx context.Context, q listing.Query) (listing.Page[model.Rental], error)
}

type Month struct {
	Month   time.Month `json:"month"`
	Revenue int64      `json:"revenue"`
	Rentals int        `json:"rentals"`
}

type Monthly struct {
	Year   int     `json:"year"`
	Months []Month `json:"months"`
}

type Service interface {
	// Monthly totals net revenue (refunds subtract) and rentals started in
	// each month of year.
	Monthly(ctx context.Context, year int) (*Monthly, error)
}

type service struct {
	payments PaymentLister
	rentals  RentalLister
}

func New(p PaymentLister, r RentalLister) Service { return &service{payments: p, rentals: r} }

func (s *service) Monthly(ctx context.Context, year int) (*Monthly, error) {
	out := &Monthly{Year: year, Months: make([]Month, 12)}
	for i := range out.Months {
		out.Months[i].Month = time.Month(i + 1)
	}

	err := each(ctx, s.payments.List, func(p model.Payment) {
		if p.PaymentDate.Year() == year {
			out.Months[p.PaymentDate.Month()-1].Revenue += p.AmountPaid
		}
	})
	if err != nil {
		return nil, err
	}
	err = each(ctx, s.rentals.List, func(r model.Rental) {
		if r.RentalDate.Year() == year {
			out.Months[r.RentalDate.Month()-1].Rentals++
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// each walks every page of a listing in order.
func each[T any](ctx context.Context, list func(context.Context, listing.Query) (listing.Page[T], error), fn func(T)) error {
	for page := 1; ; page++ {
		res, err := list(ctx, listing.Query{Page: page})
		if err != nil {
			return err
		}
		for _, it := range res.Items {
			fn(it)
		}
		if len(res.Items) == 0 || int64(page*res.PageSize) >= res.Total {
			return nil
		}
	}
}
