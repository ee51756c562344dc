// repository/rental/repo.go
package rental

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bikerental/model"
	"bikerental/repository/listing"
	"bikerental/util/database"
)

const columns = `
	r.rental_id, r.customer_id, r.bike_id, r.rental_date, r.rental_status,
	c.name, c.phone, b.bike_model, b.daily_rate`

const from = `
	FROM rentals r
	LEFT JOIN customer c ON c.customer_id = r.customer_id
	LEFT JOIN bike b ON b.bike_id = r.bike_id`

var spec = listing.Spec{
	From:    from,
	Columns: columns,
	Searchable: []string{
		"r.rental_id", "r.customer_id", "r.bike_id", "c.name", "c.phone",
		"b.bike_model", "r.rental_date", "r.rental_status",
	},
	Sortable: map[string]string{
		"id":       "r.rental_id",
		"customer": "c.name",
		"bike":     "b.bike_model",
		"date":     "r.rental_date",
		"status":   "r.rental_status",
	},
	DefaultSort: "r.rental_date",
	Tiebreak:    "r.rental_id",
}

type Repo interface {
	List(ctx context.Context, q listing.Query) (listing.Page[model.Rental], error)
	ByID(ctx context.Context, id string) (*model.Rental, error)
	Update(ctx context.Context, r *model.Rental) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	LastID(ctx context.Context) (string, bool, error)
	MarkOverdue(ctx context.Context, cutoff time.Time) (int64, error)

	// in-transaction steps
	ByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.Rental, error)
	LastIDTx(ctx context.Context, tx *sql.Tx) (string, bool, error)
	Insert(ctx context.Context, tx *sql.Tx, r *model.Rental) error
	SetStatus(ctx context.Context, tx *sql.Tx, id string, status model.RentalStatus) error
}

type repo struct {
	db       *sql.DB
	pageSize int
}

func New(db *sql.DB, pageSize int) Repo { return &repo{db: db, pageSize: pageSize} }

func scan(s interface{ Scan(...any) error }) (model.Rental, error) {
	var r model.Rental
	err := s.Scan(
		&r.ID, &r.CustomerID, &r.BikeID, &r.RentalDate, &r.Status,
		&r.CustomerName, &r.CustomerPhone, &r.BikeModel, &r.BikeDailyRate,
	)
	return r, err
}

func absent(r model.Rental, err error) (*model.Rental, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *repo) List(ctx context.Context, q listing.Query) (listing.Page[model.Rental], error) {
	return listing.Fetch(ctx, r.db, spec, q, r.pageSize, func(rows *sql.Rows) (model.Rental, error) {
		return scan(rows)
	})
}

func (r *repo) ByID(ctx context.Context, id string) (*model.Rental, error) {
	return absent(scan(r.db.QueryRowContext(ctx, `SELECT `+columns+from+` WHERE r.rental_id = $1`, id)))
}

func (r *repo) ByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.Rental, error) {
	return absent(scan(tx.QueryRowContext(ctx, `SELECT `+columns+from+` WHERE r.rental_id = $1`, id)))
}

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, rt *model.Rental) error {
	const q = `
		INSERT INTO rentals (rental_id, customer_id, bike_id, rental_date, rental_status)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := tx.ExecContext(ctx, q, rt.ID, rt.CustomerID, rt.BikeID, rt.RentalDate, rt.Status)
	return database.MapError(err)
}

func (r *repo) Update(ctx context.Context, rt *model.Rental) (bool, error) {
	const q = `
		UPDATE rentals
		SET customer_id = $1, bike_id = $2, rental_date = $3, rental_status = $4
		WHERE rental_id = $5`
	res, err := r.db.ExecContext(ctx, q, rt.CustomerID, rt.BikeID, rt.RentalDate, rt.Status, rt.ID)
	if err != nil {
		return false, database.MapError(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *repo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rentals WHERE rental_id = $1`, id)
	if err != nil {
		return false, database.MapError(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

const lastID = `SELECT rental_id FROM rentals ORDER BY rental_id DESC LIMIT 1`

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

func (r *repo) SetStatus(ctx context.Context, tx *sql.Tx, id string, status model.RentalStatus) error {
	res, err := tx.ExecContext(ctx, `UPDATE rentals SET rental_status = $1 WHERE rental_id = $2`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarkOverdue flips Active rentals that started before cutoff.
func (r *repo) MarkOverdue(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `
		UPDATE rentals
		SET rental_status = 'Overdue'
		WHERE rental_status = 'Active'
		AND rental_date < $1`
	res, err := r.db.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
