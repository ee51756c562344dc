package returnrepo

import (
	"context"
	"database/sql"
	"errors"

	"bikerental/model"
	"bikerental/repository/listing"
	"bikerental/util/database"
)

var (
	ErrActiveRentals       = errors.New("returns cannot be cleared while rentals are active")
	ErrRepeatedBikeReturns = errors.New("returns cannot be cleared: a bike has more than one return on record")
)

const columns = `
	t.return_id, t.rental_id, t.customer_id, t.bike_id, t.return_date,
	c.name, c.phone, b.bike_model, b.daily_rate`

const from = `
	FROM returns t
	LEFT JOIN customer c ON c.customer_id = t.customer_id
	LEFT JOIN bike b ON b.bike_id = t.bike_id`

var spec = listing.Spec{
	From:    from,
	Columns: columns,
	Searchable: []string{
		"t.return_id", "t.rental_id", "t.customer_id", "t.bike_id",
		"c.name", "c.phone", "b.bike_model", "t.return_date",
	},
	Sortable: map[string]string{
		"id":       "t.return_id",
		"rental":   "t.rental_id",
		"customer": "c.name",
		"bike":     "b.bike_model",
		"date":     "t.return_date",
	},
	DefaultSort: "t.return_date",
	Tiebreak:    "t.return_id",
}

type Repo interface {
	List(ctx context.Context, q listing.Query) (listing.Page[model.Return], error)
	ByID(ctx context.Context, id string) (*model.Return, error)
	LastID(ctx context.Context) (string, bool, error)
	// Clear removes every return and reopens the rentals they closed.
	Clear(ctx context.Context) (int64, error)

	// in-transaction steps
	ByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.Return, error)
	LastIDTx(ctx context.Context, tx *sql.Tx) (string, bool, error)
	ExistsForRental(ctx context.Context, tx *sql.Tx, rentalID string) (bool, error)
	Insert(ctx context.Context, tx *sql.Tx, ret *model.Return) error
	Delete(ctx context.Context, tx *sql.Tx, id string) error
}

type repo struct {
	db       *sql.DB
	pageSize int
}

func New(db *sql.DB, pageSize int) Repo { return &repo{db: db, pageSize: pageSize} }

func scan(s interface{ Scan(...any) error }) (model.Return, error) {
	var t model.Return
	err := s.Scan(
		&t.ID, &t.RentalID, &t.CustomerID, &t.BikeID, &t.ReturnDate,
		&t.CustomerName, &t.CustomerPhone, &t.BikeModel, &t.BikeDailyRate,
	)
	return t, err
}

func absent(t model.Return, err error) (*model.Return, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repo) List(ctx context.Context, q listing.Query) (listing.Page[model.Return], error) {
	return listing.Fetch(ctx, r.db, spec, q, r.pageSize, func(rows *sql.Rows) (model.Return, error) {
		return scan(rows)
	})
}

func (r *repo) ByID(ctx context.Context, id string) (*model.Return, error) {
	return absent(scan(r.db.QueryRowContext(ctx, `SELECT `+columns+from+` WHERE t.return_id = $1`, id)))
}

func (r *repo) ByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.Return, error) {
	return absent(scan(tx.QueryRowContext(ctx, `SELECT `+columns+from+` WHERE t.return_id = $1`, id)))
}

const lastID = `SELECT return_id FROM returns ORDER BY return_id DESC LIMIT 1`

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

func (r *repo) ExistsForRental(ctx context.Context, tx *sql.Tx, rentalID string) (bool, error) {
	var n int64
	err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM returns WHERE rental_id = $1`, rentalID).Scan(&n)
	return n > 0, err
}

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, t *model.Return) error {
	const q = `
		INSERT INTO returns (return_id, rental_id, customer_id, bike_id, return_date)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := tx.ExecContext(ctx, q, t.ID, t.RentalID, t.CustomerID, t.BikeID, t.ReturnDate)
	return database.MapError(err)
}

func (r *repo) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM returns WHERE return_id = $1`, id)
	if err != nil {
		return database.MapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Clear(ctx context.Context) (n int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var active int64
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM rentals WHERE rental_status = 'Active'`).Scan(&active); err != nil {
		return 0, err
	}
	if active > 0 {
		return 0, ErrActiveRentals
	}

	const repeatedQ = `
		SELECT COUNT(*) FROM (
			SELECT bike_id FROM returns GROUP BY bike_id HAVING COUNT(*) > 1
		) AS repeated`
	var repeated int64
	if err = tx.QueryRowContext(ctx, repeatedQ).Scan(&repeated); err != nil {
		return 0, err
	}
	if repeated > 0 {
		return 0, ErrRepeatedBikeReturns
	}

	reopen := []string{
		`UPDATE rentals SET rental_status = 'Active' WHERE rental_id IN (SELECT rental_id FROM returns)`,
		`UPDATE bike SET bike_status = 'Rented' WHERE bike_id IN (SELECT bike_id FROM returns)`,
		`UPDATE customer SET customer_status = 'Active' WHERE customer_id IN (SELECT customer_id FROM returns)`,
	}
	for _, q := range reopen {
		if _, err = tx.ExecContext(ctx, q); err != nil {
			return 0, err
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM returns`)
	if err != nil {
		return 0, database.MapError(err)
	}
	n, _ = res.RowsAffected()
	return n, tx.Commit()
}
