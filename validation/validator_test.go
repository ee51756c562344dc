package validation_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bikerental/model"
	"bikerental/validation"

	"github.com/stretchr/testify/require"
)

func picture(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("img"), 0o600))
	return p
}

func validBike(t *testing.T) model.Bike {
	return model.Bike{
		ID:        "BIKE-0007",
		Model:     "Trek FX 2",
		Type:      "Hybrid",
		DailyRate: 250,
		Picture:   picture(t, "trek.png"),
		Status:    model.BikeAvailable,
	}
}

func TestBike_Valid(t *testing.T) {
	v := validation.New()
	ok, msg := v.Check(validBike(t))
	require.True(t, ok, msg)
	require.Empty(t, msg)

	b := validBike(t)
	b.Status = model.BikeMaintenance
	b.Picture = picture(t, "upper.JPEG")
	ok, msg = v.Check(b)
	require.True(t, ok, msg)
}

func TestBike_FieldRules(t *testing.T) {
	v := validation.New()
	cases := []struct {
		name   string
		mutate func(b *model.Bike)
		field  string
	}{
		{"missing id", func(b *model.Bike) { b.ID = "" }, "Bike ID"},
		{"long id", func(b *model.Bike) { b.ID = "BIKE-00001" }, "Bike ID"},
		{"bad id format", func(b *model.Bike) { b.ID = "BK-0001" }, "Bike ID"},
		{"missing model", func(b *model.Bike) { b.Model = "" }, "Model"},
		{"long model", func(b *model.Bike) { b.Model = strings.Repeat("a", 51) }, "Model"},
		{"model charset", func(b *model.Bike) { b.Model = "Trek<script>" }, "Model"},
		{"type charset", func(b *model.Bike) { b.Type = "road;drop" }, "Type"},
		{"zero rate", func(b *model.Bike) { b.DailyRate = 0 }, "Daily rate"},
		{"negative rate", func(b *model.Bike) { b.DailyRate = -5 }, "Daily rate"},
		{"missing picture", func(b *model.Bike) { b.Picture = "" }, "Picture"},
		{"picture not on disk", func(b *model.Bike) { b.Picture = "/no/such/bike.png" }, "Picture"},
		{"picture extension", func(b *model.Bike) { b.Picture = picture(t, "bike.gif") }, "Picture"},
		{"unknown status", func(b *model.Bike) { b.Status = "Stolen" }, "Status"},
		{"status case", func(b *model.Bike) { b.Status = "available" }, "Status"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := validBike(t)
			tc.mutate(&b)
			ok, msg := v.Check(b)
			require.False(t, ok)
			require.True(t, strings.HasPrefix(msg, tc.field+": "), msg)
		})
	}
}

func TestCheck_ReportsFirstFailureOnly(t *testing.T) {
	v := validation.New()
	ok, msg := v.Check(model.Bike{})
	require.False(t, ok)
	require.Equal(t, "Bike ID: is required", msg)
}

func TestCustomer_Rules(t *testing.T) {
	v := validation.New()
	c := model.Customer{
		ID:           "1000-0001",
		Name:         "Ana Dela Cruz",
		Phone:        "0917-555-0101",
		Address:      "12 Rizal St., Iligan City",
		Status:       model.CustomerInactive,
		RegisteredAt: time.Now(),
	}
	ok, msg := v.Check(c)
	require.True(t, ok, msg)

	bad := c
	bad.Name = "Ana 2"
	ok, msg = v.Check(bad)
	require.False(t, ok)
	require.Contains(t, msg, "Name:")

	bad = c
	bad.Phone = "0917x"
	ok, msg = v.Check(bad)
	require.False(t, ok)
	require.Contains(t, msg, "Phone:")

	bad = c
	bad.Status = "Banned"
	ok, msg = v.Check(bad)
	require.False(t, ok)
	require.Equal(t, "Status: must be one of Active Inactive Blacklisted", msg)
}

func TestPayment_Rules(t *testing.T) {
	v := validation.New()
	toPay := int64(1000)
	p := model.Payment{
		ID:          "3000-0001",
		RentalID:    "2000-0001",
		CustomerID:  "1000-0001",
		BikeID:      "BIKE-0001",
		AmountToPay: &toPay,
		AmountPaid:  500,
		PaymentDate: time.Now(),
		Status:      model.PaymentPending,
	}
	ok, msg := v.Check(p)
	require.True(t, ok, msg)

	p.AmountToPay = nil
	ok, msg = v.Check(p)
	require.True(t, ok, msg)

	zero := int64(0)
	p.AmountToPay = &zero
	ok, msg = v.Check(p)
	require.False(t, ok)
	require.Contains(t, msg, "Amount to pay:")

	p.AmountToPay = nil
	p.AmountPaid = 0
	ok, msg = v.Check(p)
	require.False(t, ok)
	require.Contains(t, msg, "Amount paid:")
}

func TestValidate_ForRequestBodies(t *testing.T) {
	v := validation.New()
	require.Error(t, v.Validate(model.LoginReq{Username: "admin"}))
	require.NoError(t, v.Validate(model.LoginReq{Username: "admin", Password: "pw"}))
}
