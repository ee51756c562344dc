package bikerepo

import (
	"context"
	"database/sql"
	"errors"

	"bikerental/model"
	"bikerental/repository/listing"
	"bikerental/util/database"
)

const columns = `bike_id, bike_model, bike_type, daily_rate, bike_picture, bike_status`

var spec = listing.Spec{
	From:       "FROM bike",
	Columns:    columns,
	Searchable: []string{"bike_id", "bike_model", "bike_type", "daily_rate", "bike_status"},
	Sortable: map[string]string{
		"id":     "bike_id",
		"model":  "bike_model",
		"type":   "bike_type",
		"rate":   "daily_rate",
		"status": "bike_status",
	},
	DefaultSort: "bike_id",
	Tiebreak:    "bike_id",
}

type Repo interface {
	List(ctx context.Context, q listing.Query) (listing.Page[model.Bike], error)
	ByID(ctx context.Context, id string) (*model.Bike, error)
	Add(ctx context.Context, b *model.Bike) error
	Update(ctx context.Context, b *model.Bike) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Clear(ctx context.Context) (int64, error)
	LastID(ctx context.Context) (string, bool, error)

	// in-transaction steps
	ByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.Bike, error)
	SetStatus(ctx context.Context, tx *sql.Tx, id string, status model.BikeStatus) error
	// CountOtherActiveRentals counts Active rentals of the bike, excluding rentalID.
	CountOtherActiveRentals(ctx context.Context, tx *sql.Tx, bikeID, rentalID string) (int64, error)
}

type repo struct {
	db       *sql.DB
	pageSize int
}

func New(db *sql.DB, pageSize int) Repo { return &repo{db: db, pageSize: pageSize} }

func scan(s interface{ Scan(...any) error }) (model.Bike, error) {
	var b model.Bike
	err := s.Scan(&b.ID, &b.Model, &b.Type, &b.DailyRate, &b.Picture, &b.Status)
	return b, err
}

func (r *repo) List(ctx context.Context, q listing.Query) (listing.Page[model.Bike], error) {
	return listing.Fetch(ctx, r.db, spec, q, r.pageSize, func(rows *sql.Rows) (model.Bike, error) {
		return scan(rows)
	})
}

func (r *repo) ByID(ctx context.Context, id string) (*model.Bike, error) {
	return absent(scan(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM bike WHERE bike_id = $1`, id)))
}

func (r *repo) ByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.Bike, error) {
	return absent(scan(tx.QueryRowContext(ctx, `SELECT `+columns+` FROM bike WHERE bike_id = $1`, id)))
}

func absent(b model.Bike, err error) (*model.Bike, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) Add(ctx context.Context, b *model.Bike) error {
	const q = `
		INSERT INTO bike (bike_id, bike_model, bike_type, daily_rate, bike_picture, bike_status)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, q, b.ID, b.Model, b.Type, b.DailyRate, b.Picture, b.Status)
	return database.MapError(err)
}

func (r *repo) Update(ctx context.Context, b *model.Bike) (bool, error) {
	const q = `
		UPDATE bike
		SET bike_model = $1, bike_type = $2, daily_rate = $3, bike_picture = $4, bike_status = $5
		WHERE bike_id = $6`
	res, err := r.db.ExecContext(ctx, q, b.Model, b.Type, b.DailyRate, b.Picture, b.Status, b.ID)
	if err != nil {
		return false, database.MapError(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *repo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bike WHERE bike_id = $1`, id)
	if err != nil {
		return false, database.MapError(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *repo) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bike`)
	if err != nil {
		return 0, database.MapError(err)
	}
	return res.RowsAffected()
}

func (r *repo) LastID(ctx context.Context) (string, bool, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `SELECT bike_id FROM bike ORDER BY bike_id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	return id, err == nil, err
}

func (r *repo) SetStatus(ctx context.Context, tx *sql.Tx, id string, status model.BikeStatus) error {
	res, err := tx.ExecContext(ctx, `UPDATE bike SET bike_status = $1 WHERE bike_id = $2`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) CountOtherActiveRentals(ctx context.Context, tx *sql.Tx, bikeID, rentalID string) (int64, error) {
	const q = `
		SELECT COUNT(*)
		FROM rentals
		WHERE bike_id = $1
		AND rental_id <> $2
		AND rental_status = 'Active'`
	var n int64
	err := tx.QueryRowContext(ctx, q, bikeID, rentalID).Scan(&n)
	return n, err
}
