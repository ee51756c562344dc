package returnsvc_test

import (
	"context"
	"database/sql"
	"testing"

	"bikerental/model"
	bikerepo "bikerental/repository/bike"
	customerrepo "bikerental/repository/customer"
	"bikerental/repository/listing"
	rentalrepo "bikerental/repository/rental"
	returnrepo "bikerental/repository/returns"
	returnsvc "bikerental/service/returns"
	"bikerental/util/database/dbtest"
	"bikerental/util/idgen"
	"bikerental/validation"

	"github.com/stretchr/testify/require"
)

var both = returnsvc.AddOptions{ReleaseBike: true, DeactivateCustomer: true}

func setup(t *testing.T) (*sql.DB, returnsvc.Service) {
	db := dbtest.Open(t)
	dbtest.Exec(t, db,
		`INSERT INTO customer VALUES ('1000-0001','Ana Cruz','0917','Iligan','','Active','2026-01-01')`,
		`INSERT INTO bike VALUES ('BIKE-0001','Trek FX 2','Hybrid',250,'a.png','Rented')`,
		`INSERT INTO bike VALUES ('BIKE-0002','Giant Talon','Mountain',300,'b.png','Available')`,
		`INSERT INTO rentals VALUES ('2000-0001','1000-0001','BIKE-0001','2026-01-02','Active')`,
	)
	n := listing.DefaultPageSize
	svc := returnsvc.New(db,
		returnrepo.New(db, n), rentalrepo.New(db, n), bikerepo.New(db, n), customerrepo.New(db, n),
		validation.New(), idgen.Sequence{Prefix: "4000"})
	return db, svc
}

func scalar(t *testing.T, db *sql.DB, q string, args ...any) string {
	t.Helper()
	var s string
	require.NoError(t, db.QueryRow(q, args...).Scan(&s))
	return s
}

func rentalStatus(t *testing.T, db *sql.DB, id string) string {
	return scalar(t, db, `SELECT rental_status FROM rentals WHERE rental_id = $1`, id)
}

func bikeStatus(t *testing.T, db *sql.DB, id string) string {
	return scalar(t, db, `SELECT bike_status FROM bike WHERE bike_id = $1`, id)
}

func customerStatus(t *testing.T, db *sql.DB, id string) string {
	return scalar(t, db, `SELECT customer_status FROM customer WHERE customer_id = $1`, id)
}

func returnCount(t *testing.T, db *sql.DB) string {
	return scalar(t, db, `SELECT COUNT(*) FROM returns`)
}

func TestAdd_ClosesRental(t *testing.T) {
	db, svc := setup(t)
	ret := &model.Return{RentalID: "2000-0001"}
	require.NoError(t, svc.Add(context.Background(), ret, both))

	require.Equal(t, "4000-0001", ret.ID)
	require.Equal(t, "1000-0001", ret.CustomerID)
	require.Equal(t, "BIKE-0001", ret.BikeID)
	require.Equal(t, "Completed", rentalStatus(t, db, "2000-0001"))
	require.Equal(t, "Available", bikeStatus(t, db, "BIKE-0001"))
	require.Equal(t, "Inactive", customerStatus(t, db, "1000-0001"))
	require.Equal(t, "1", returnCount(t, db))
}

func TestAdd_WithoutRelatedRows(t *testing.T) {
	db, svc := setup(t)
	require.NoError(t, svc.Add(context.Background(), &model.Return{RentalID: "2000-0001"}, returnsvc.AddOptions{}))

	require.Equal(t, "Completed", rentalStatus(t, db, "2000-0001"))
	require.Equal(t, "Rented", bikeStatus(t, db, "BIKE-0001"))
	require.Equal(t, "Active", customerStatus(t, db, "1000-0001"))
}

func TestAdd_DuplicateRejected(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	require.NoError(t, svc.Add(ctx, &model.Return{RentalID: "2000-0001"}, both))

	err := svc.Add(ctx, &model.Return{RentalID: "2000-0001"}, both)
	require.Equal(t, returnsvc.ErrDuplicateReturn, returnsvc.Code(err))

	require.Equal(t, "1", returnCount(t, db))
	require.Equal(t, "4000-0001", scalar(t, db, `SELECT return_id FROM returns`))
	require.Equal(t, "Completed", rentalStatus(t, db, "2000-0001"))
	require.Equal(t, "Available", bikeStatus(t, db, "BIKE-0001"))
}

func TestAdd_RollsBackOnFailure(t *testing.T) {
	db, svc := setup(t)
	// the rental is completed before the insert trips the bike reference
	err := svc.Add(context.Background(), &model.Return{RentalID: "2000-0001", BikeID: "BIKE-0404"}, both)
	require.Error(t, err)

	require.Equal(t, "Active", rentalStatus(t, db, "2000-0001"))
	require.Equal(t, "Rented", bikeStatus(t, db, "BIKE-0001"))
	require.Equal(t, "Active", customerStatus(t, db, "1000-0001"))
	require.Equal(t, "0", returnCount(t, db))
}

func TestAdd_RentalNotFound(t *testing.T) {
	_, svc := setup(t)
	err := svc.Add(context.Background(), &model.Return{RentalID: "2000-0099"}, both)
	require.Equal(t, returnsvc.ErrRentalNotFound, returnsvc.Code(err))
}

func TestDelete_ReopensRental(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	ret := &model.Return{RentalID: "2000-0001"}
	require.NoError(t, svc.Add(ctx, ret, both))

	require.NoError(t, svc.Delete(ctx, ret.ID))
	require.Equal(t, "Active", rentalStatus(t, db, "2000-0001"))
	require.Equal(t, "Rented", bikeStatus(t, db, "BIKE-0001"))
	require.Equal(t, "Active", customerStatus(t, db, "1000-0001"))
	require.Equal(t, "0", returnCount(t, db))

	got, err := svc.Get(ctx, ret.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestDelete_RefusedWhileBikeOutAgain(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	ret := &model.Return{RentalID: "2000-0001"}
	require.NoError(t, svc.Add(ctx, ret, both))
	dbtest.Exec(t, db, `INSERT INTO rentals VALUES ('2000-0002','1000-0001','BIKE-0001','2026-01-09','Active')`)

	err := svc.Delete(ctx, ret.ID)
	require.Equal(t, returnsvc.ErrBikeInUse, returnsvc.Code(err))
	require.Equal(t, "1", returnCount(t, db))
	require.Equal(t, "Completed", rentalStatus(t, db, "2000-0001"))
}

func TestDelete_NotFound(t *testing.T) {
	_, svc := setup(t)
	require.Equal(t, returnsvc.ErrNotFound, returnsvc.Code(svc.Delete(context.Background(), "4000-0001")))
}

func TestClear(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	require.NoError(t, svc.Add(ctx, &model.Return{RentalID: "2000-0001"}, both))
	dbtest.Exec(t, db, `INSERT INTO rentals VALUES ('2000-0002','1000-0001','BIKE-0002','2026-01-09','Active')`)

	_, err := svc.Clear(ctx)
	require.Equal(t, returnsvc.ErrClearRefused, returnsvc.Code(err))
	require.Equal(t, "1", returnCount(t, db))

	dbtest.Exec(t, db, `UPDATE rentals SET rental_status = 'Completed' WHERE rental_id = '2000-0002'`)
	n, err := svc.Clear(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	require.Equal(t, "Active", rentalStatus(t, db, "2000-0001"))
}
