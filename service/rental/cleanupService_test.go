package rental

import (
	"context"
	"testing"
	"time"

	"bikerental/repository/listing"
	rentalrepo "bikerental/repository/rental"
	"bikerental/util/database/dbtest"

	"github.com/stretchr/testify/require"
)

func TestMarkOverdue(t *testing.T) {
	db := dbtest.Open(t)
	dbtest.Exec(t, db,
		`INSERT INTO customer VALUES ('1000-0001','Ana Cruz','0917','Iligan','','Active','2026-01-01')`,
		`INSERT INTO bike VALUES ('BIKE-0001','Trek FX 2','Hybrid',250,'a.png','Rented')`,
		`INSERT INTO rentals VALUES ('2000-0001','1000-0001','BIKE-0001','2026-01-01','Active')`,
		`INSERT INTO rentals VALUES ('2000-0002','1000-0001','BIKE-0001','2026-01-09','Active')`,
		`INSERT INTO rentals VALUES ('2000-0003','1000-0001','BIKE-0001','2025-12-01','Completed')`,
	)
	c := NewCleaner(rentalrepo.New(db, listing.DefaultPageSize), 7).(*cleaner)
	c.now = func() time.Time { return time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC) }

	n, err := c.MarkOverdue(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	var s string
	require.NoError(t, db.QueryRow(`SELECT rental_status FROM rentals WHERE rental_id = '2000-0001'`).Scan(&s))
	require.Equal(t, "Overdue", s)
}
