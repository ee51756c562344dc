package returnrepo_test

import (
	"context"
	"database/sql"
	"testing"

	"bikerental/repository/listing"
	returnrepo "bikerental/repository/returns"
	"bikerental/util/database/dbtest"

	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, db *sql.DB) {
	dbtest.Exec(t, db,
		`INSERT INTO customer VALUES ('1000-0001','Ana Cruz','0917','Iligan','','Inactive','2026-01-01')`,
		`INSERT INTO customer VALUES ('1000-0002','Ben Uy','0918','Iligan','','Inactive','2026-01-01')`,
		`INSERT INTO bike VALUES ('BIKE-0001','Trek FX 2','Hybrid',250,'a.png','Available')`,
		`INSERT INTO bike VALUES ('BIKE-0002','Giant Talon','Mountain',300,'b.png','Available')`,
		`INSERT INTO rentals VALUES ('2000-0001','1000-0001','BIKE-0001','2026-01-02','Completed')`,
		`INSERT INTO rentals VALUES ('2000-0002','1000-0002','BIKE-0002','2026-01-03','Completed')`,
		`INSERT INTO returns VALUES ('4000-0001','2000-0001','1000-0001','BIKE-0001','2026-01-05')`,
		`INSERT INTO returns VALUES ('4000-0002','2000-0002','1000-0002','BIKE-0002','2026-01-06')`,
	)
}

func status(t *testing.T, db *sql.DB, q, id string) string {
	var s string
	require.NoError(t, db.QueryRow(q, id).Scan(&s))
	return s
}

func TestClear_RevertsEverything(t *testing.T) {
	db := dbtest.Open(t)
	seed(t, db)
	r := returnrepo.New(db, listing.DefaultPageSize)

	n, err := r.Clear(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	var left int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM returns`).Scan(&left))
	require.Zero(t, left)
	for _, id := range []string{"2000-0001", "2000-0002"} {
		require.Equal(t, "Active", status(t, db, `SELECT rental_status FROM rentals WHERE rental_id = $1`, id))
	}
	require.Equal(t, "Rented", status(t, db, `SELECT bike_status FROM bike WHERE bike_id = $1`, "BIKE-0001"))
	require.Equal(t, "Active", status(t, db, `SELECT customer_status FROM customer WHERE customer_id = $1`, "1000-0002"))
}

func TestClear_RefusesWhileRentalActive(t *testing.T) {
	db := dbtest.Open(t)
	seed(t, db)
	dbtest.Exec(t, db, `INSERT INTO rentals VALUES ('2000-0003','1000-0001','BIKE-0001','2026-02-01','Active')`)
	r := returnrepo.New(db, listing.DefaultPageSize)

	_, err := r.Clear(context.Background())
	require.ErrorIs(t, err, returnrepo.ErrActiveRentals)

	var left int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM returns`).Scan(&left))
	require.Equal(t, 2, left)
	require.Equal(t, "Completed", status(t, db, `SELECT rental_status FROM rentals WHERE rental_id = $1`, "2000-0001"))
	require.Equal(t, "Available", status(t, db, `SELECT bike_status FROM bike WHERE bike_id = $1`, "BIKE-0001"))
}

func TestClear_RefusesRepeatedBikeReturns(t *testing.T) {
	db := dbtest.Open(t)
	seed(t, db)
	dbtest.Exec(t, db,
		`INSERT INTO rentals VALUES ('2000-0003','1000-0001','BIKE-0001','2026-02-01','Completed')`,
		`INSERT INTO returns VALUES ('4000-0003','2000-0003','1000-0001','BIKE-0001','2026-02-04')`,
	)
	r := returnrepo.New(db, listing.DefaultPageSize)

	_, err := r.Clear(context.Background())
	require.ErrorIs(t, err, returnrepo.ErrRepeatedBikeReturns)
}

func TestList_JoinsNames(t *testing.T) {
	db := dbtest.Open(t)
	seed(t, db)
	r := returnrepo.New(db, listing.DefaultPageSize)

	page, err := r.List(context.Background(), listing.Query{Search: "ben"})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	require.Equal(t, "4000-0002", page.Items[0].ID)
	require.Equal(t, "Ben Uy", *page.Items[0].CustomerName)

	last, ok, err := r.LastID(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "4000-0002", last)
}
