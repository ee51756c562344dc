package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// Column widths mirror the validation rules on the model types.
var schema = []struct {
	table string
	ddl   string
}{
	{"customer", `
		CREATE TABLE IF NOT EXISTS customer (
			customer_id       VARCHAR(9)   PRIMARY KEY,
			name              VARCHAR(50)  NOT NULL,
			phone             VARCHAR(15)  NOT NULL,
			address           VARCHAR(100) NOT NULL,
			id_picture        VARCHAR(255) NOT NULL DEFAULT '',
			customer_status   VARCHAR(12)  NOT NULL DEFAULT 'Inactive',
			registration_date DATE         NOT NULL
		)`},
	{"bike", `
		CREATE TABLE IF NOT EXISTS bike (
			bike_id      VARCHAR(9)   PRIMARY KEY,
			bike_model   VARCHAR(50)  NOT NULL,
			bike_type    VARCHAR(30)  NOT NULL,
			daily_rate   BIGINT       NOT NULL,
			bike_picture VARCHAR(255) NOT NULL,
			bike_status  VARCHAR(17)  NOT NULL DEFAULT 'Available'
		)`},
	{"rentals", `
		CREATE TABLE IF NOT EXISTS rentals (
			rental_id     VARCHAR(9)  PRIMARY KEY,
			customer_id   VARCHAR(9)  NOT NULL REFERENCES customer (customer_id),
			bike_id       VARCHAR(9)  NOT NULL REFERENCES bike (bike_id),
			rental_date   DATE        NOT NULL,
			rental_status VARCHAR(9)  NOT NULL DEFAULT 'Active'
		)`},
	{"payments", `
		CREATE TABLE IF NOT EXISTS payments (
			payment_id     VARCHAR(9) PRIMARY KEY,
			rental_id      VARCHAR(9) NOT NULL REFERENCES rentals (rental_id),
			customer_id    VARCHAR(9) NOT NULL REFERENCES customer (customer_id),
			bike_id        VARCHAR(9) NOT NULL REFERENCES bike (bike_id),
			amount_to_pay  BIGINT     NULL,
			amount_paid    BIGINT     NOT NULL,
			payment_date   DATE       NOT NULL,
			payment_status VARCHAR(8) NOT NULL
		)`},
	{"returns", `
		CREATE TABLE IF NOT EXISTS returns (
			return_id   VARCHAR(9) PRIMARY KEY,
			rental_id   VARCHAR(9) NOT NULL UNIQUE REFERENCES rentals (rental_id),
			customer_id VARCHAR(9) NOT NULL REFERENCES customer (customer_id),
			bike_id     VARCHAR(9) NOT NULL REFERENCES bike (bike_id),
			return_date DATE       NOT NULL
		)`},
}

// EnsureSchema creates any missing table. Safe to run on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, t := range schema {
		if _, err := db.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.table, err)
		}
		slog.Debug("table ensured", "table", t.table)
	}
	return nil
}
