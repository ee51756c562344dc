package paymentrepo

import (
	"context"
	"database/sql"
	"errors"

	"bikerental/model"
	"bikerental/repository/listing"
	"bikerental/util/database"
)

const columns = `
	p.payment_id, p.rental_id, p.customer_id, p.bike_id, p.amount_to_pay, p.amount_paid,
	p.payment_date, p.payment_status, c.name, c.phone, b.bike_model, b.daily_rate`

const from = `
	FROM payments p
	LEFT JOIN customer c ON c.customer_id = p.customer_id
	LEFT JOIN bike b ON b.bike_id = p.bike_id`

var spec = listing.Spec{
	From:    from,
	Columns: columns,
	Searchable: []string{
		"p.payment_id", "p.rental_id", "p.customer_id", "p.bike_id", "c.name", "b.bike_model",
		"p.amount_to_pay", "p.amount_paid", "p.payment_date", "p.payment_status",
	},
	Sortable: map[string]string{
		"id":       "p.payment_id",
		"rental":   "p.rental_id",
		"customer": "c.name",
		"bike":     "b.bike_model",
		"to_pay":   "p.amount_to_pay",
		"paid":     "p.amount_paid",
		"date":     "p.payment_date",
		"status":   "p.payment_status",
	},
	DefaultSort: "p.payment_date",
	Tiebreak:    "p.payment_id",
}

type Repo interface {
	List(ctx context.Context, q listing.Query) (listing.Page[model.Payment], error)
	ByID(ctx context.Context, id string) (*model.Payment, error)
	Update(ctx context.Context, p *model.Payment) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Clear(ctx context.Context) (int64, error)
	LastID(ctx context.Context) (string, bool, error)

	// in-transaction steps
	ByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.Payment, error)
	LastIDTx(ctx context.Context, tx *sql.Tx) (string, bool, error)
	Insert(ctx context.Context, tx *sql.Tx, p *model.Payment) error
	// TotalPaid sums every payment of the rental, refunds included.
	TotalPaid(ctx context.Context, tx *sql.Tx, rentalID string) (int64, error)
	// RentalCost is the amount_to_pay fixed by the latest Paid payment.
	RentalCost(ctx context.Context, tx *sql.Tx, rentalID string) (int64, bool, error)
}

type repo struct {
	db       *sql.DB
	pageSize int
}

func New(db *sql.DB, pageSize int) Repo { return &repo{db: db, pageSize: pageSize} }

func scan(s interface{ Scan(...any) error }) (model.Payment, error) {
	var p model.Payment
	err := s.Scan(
		&p.ID, &p.RentalID, &p.CustomerID, &p.BikeID, &p.AmountToPay, &p.AmountPaid,
		&p.PaymentDate, &p.Status, &p.CustomerName, &p.CustomerPhone, &p.BikeModel, &p.BikeDailyRate,
	)
	return p, err
}

func absent(p model.Payment, err error) (*model.Payment, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) List(ctx context.Context, q listing.Query) (listing.Page[model.Payment], error) {
	return listing.Fetch(ctx, r.db, spec, q, r.pageSize, func(rows *sql.Rows) (model.Payment, error) {
		return scan(rows)
	})
}

func (r *repo) ByID(ctx context.Context, id string) (*model.Payment, error) {
	return absent(scan(r.db.QueryRowContext(ctx, `SELECT `+columns+from+` WHERE p.payment_id = $1`, id)))
}

func (r *repo) ByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.Payment, error) {
	return absent(scan(tx.QueryRowContext(ctx, `SELECT `+columns+from+` WHERE p.payment_id = $1`, id)))
}

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, p *model.Payment) error {
	const q = `
		INSERT INTO payments (payment_id, rental_id, customer_id, bike_id, amount_to_pay, amount_paid, payment_date, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := tx.ExecContext(ctx, q, p.ID, p.RentalID, p.CustomerID, p.BikeID, p.AmountToPay, p.AmountPaid, p.PaymentDate, p.Status)
	return database.MapError(err)
}

func (r *repo) Update(ctx context.Context, p *model.Payment) (bool, error) {
	const q = `
		UPDATE payments
		SET rental_id = $1, customer_id = $2, bike_id = $3, amount_to_pay = $4,
			amount_paid = $5, payment_date = $6, payment_status = $7
		WHERE payment_id = $8`
	res, err := r.db.ExecContext(ctx, q, p.RentalID, p.CustomerID, p.BikeID, p.AmountToPay, p.AmountPaid, p.PaymentDate, p.Status, p.ID)
	if err != nil {
		return false, database.MapError(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *repo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE payment_id = $1`, id)
	if err != nil {
		return false, database.MapError(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *repo) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments`)
	if err != nil {
		return 0, database.MapError(err)
	}
	return res.RowsAffected()
}

const lastID = `SELECT payment_id FROM payments ORDER BY payment_id DESC LIMIT 1`

func (r *repo) LastID(ctx context.Context) (string, bool, error) {
	return last(r.db.QueryRowContext(ctx, lastID))
}

func (r *repo) LastIDTx(ctx context.Context, tx *sql.Tx) (string, bool, error) {
	return last(tx.QueryRowContext(ctx, lastID))
}

func last(row *sql.Row) (string, bool, error) {
	var id string
	err := row.Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	return id, err == nil, err
}

func (r *repo) TotalPaid(ctx context.Context, tx *sql.Tx, rentalID string) (int64, error) {
	const q = `
		SELECT CAST(COALESCE(SUM(amount_paid), 0) AS BIGINT)
		FROM payments
		WHERE rental_id = $1`
	var total int64
	err := tx.QueryRowContext(ctx, q, rentalID).Scan(&total)
	return total, err
}

func (r *repo) RentalCost(ctx context.Context, tx *sql.Tx, rentalID string) (int64, bool, error) {
	const q = `
		SELECT amount_to_pay
		FROM payments
		WHERE rental_id = $1
		AND payment_status = 'Paid'
		AND amount_to_pay IS NOT NULL
		ORDER BY payment_date DESC, payment_id DESC
		LIMIT 1`
	var cost int64
	err := tx.QueryRowContext(ctx, q, rentalID).Scan(&cost)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return cost, true, nil
}
