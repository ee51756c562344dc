package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

const (
	DriverPgx    = "pgx"
	DriverSQLite = "sqlite3"
	DriverLibSQL = "libsql"
)

// DB is the *sql.DB handed to repositories plus whatever owns the
// underlying connections.
type DB struct {
	*sql.DB
	Driver string
	pool   *pgxpool.Pool
}

func New(ctx context.Context, driver, dsn string) (*DB, error) {
	d := &DB{Driver: driver}
	switch driver {
	case DriverPgx, "":
		cfg, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			return nil, err
		}
		cfg.MaxConns = 10
		cfg.MaxConnLifetime = time.Hour
		p, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		d.Driver = DriverPgx
		d.pool = p
		d.DB = stdlib.OpenDBFromPool(p)
	case DriverSQLite, DriverLibSQL:
		db, err := sql.Open(driver, dsn)
		if err != nil {
			return nil, err
		}
		if driver == DriverSQLite {
			// one writer at a time; transactions must not call back into the pool
			db.SetMaxOpenConns(1)
		}
		d.DB = db
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	if err := d.PingContext(ctx); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) Close() error {
	err := d.DB.Close()
	if d.pool != nil {
		d.pool.Close()
	}
	return err
}
