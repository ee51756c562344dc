package customerrepo

import (
	"context"
	"database/sql"
	"errors"

	"bikerental/model"
	"bikerental/repository/listing"
	"bikerental/util/database"
)

const columns = `customer_id, name, phone, address, id_picture, customer_status, registration_date`

var spec = listing.Spec{
	From:       "FROM customer",
	Columns:    columns,
	Searchable: []string{"customer_id", "name", "phone", "address", "customer_status", "registration_date"},
	Sortable: map[string]string{
		"id":         "customer_id",
		"name":       "name",
		"phone":      "phone",
		"address":    "address",
		"status":     "customer_status",
		"registered": "registration_date",
	},
	DefaultSort: "registration_date",
	Tiebreak:    "customer_id",
}

type Repo interface {
	List(ctx context.Context, q listing.Query) (listing.Page[model.Customer], error)
	ByID(ctx context.Context, id string) (*model.Customer, error)
	Add(ctx context.Context, c *model.Customer) error
	Update(ctx context.Context, c *model.Customer) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Clear(ctx context.Context) (int64, error)
	LastID(ctx context.Context) (string, bool, error)
	CountActiveRentals(ctx context.Context, id string) (int64, error)

	// in-transaction steps
	ByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.Customer, error)
	SetStatus(ctx context.Context, tx *sql.Tx, id string, status model.CustomerStatus) error
}

type repo struct {
	db       *sql.DB
	pageSize int
}

func New(db *sql.DB, pageSize int) Repo { return &repo{db: db, pageSize: pageSize} }

type scanner interface{ Scan(dest ...any) error }

func scan(s scanner) (model.Customer, error) {
	var c model.Customer
	err := s.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.IDPicture, &c.Status, &c.RegisteredAt)
	return c, err
}

func (r *repo) List(ctx context.Context, q listing.Query) (listing.Page[model.Customer], error) {
	return listing.Fetch(ctx, r.db, spec, q, r.pageSize, func(rows *sql.Rows) (model.Customer, error) {
		return scan(rows)
	})
}

func (r *repo) ByID(ctx context.Context, id string) (*model.Customer, error) {
	return byID(ctx, r.db, id)
}

func (r *repo) ByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.Customer, error) {
	return byID(ctx, tx, id)
}

func byID(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}, id string) (*model.Customer, error) {
	c, err := scan(q.QueryRowContext(ctx, `SELECT `+columns+` FROM customer WHERE customer_id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) Add(ctx context.Context, c *model.Customer) error {
	const q = `
		INSERT INTO customer (customer_id, name, phone, address, id_picture, customer_status, registration_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, q, c.ID, c.Name, c.Phone, c.Address, c.IDPicture, c.Status, c.RegisteredAt)
	return database.MapError(err)
}

func (r *repo) Update(ctx context.Context, c *model.Customer) (bool, error) {
	const q = `
		UPDATE customer
		SET name = $1, phone = $2, address = $3, id_picture = $4, customer_status = $5, registration_date = $6
		WHERE customer_id = $7`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Phone, c.Address, c.IDPicture, c.Status, c.RegisteredAt, c.ID)
	if err != nil {
		return false, database.MapError(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *repo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customer WHERE customer_id = $1`, id)
	if err != nil {
		return false, database.MapError(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *repo) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customer`)
	if err != nil {
		return 0, database.MapError(err)
	}
	return res.RowsAffected()
}

func (r *repo) LastID(ctx context.Context) (string, bool, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `SELECT customer_id FROM customer ORDER BY customer_id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	return id, err == nil, err
}

func (r *repo) CountActiveRentals(ctx context.Context, id string) (int64, error) {
	const q = `SELECT COUNT(*) FROM rentals WHERE customer_id = $1 AND rental_status = 'Active'`
	var n int64
	err := r.db.QueryRowContext(ctx, q, id).Scan(&n)
	return n, err
}

func (r *repo) SetStatus(ctx context.Context, tx *sql.Tx, id string, status model.CustomerStatus) error {
	res, err := tx.ExecContext(ctx, `UPDATE customer SET customer_status = $1 WHERE customer_id = $2`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
