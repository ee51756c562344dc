package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/bikes")
	t.Setenv("APP_PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PAGE_SIZE_BIKE", "")

	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "pgx", cfg.DBDriver)
	require.Equal(t, 12, cfg.PageSize.Bike)
	require.Equal(t, 7, cfg.OverdueAfterDays)
	require.Equal(t, "2000", cfg.IDPrefix.Rental)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "file:bikes.db")
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("PAGE_SIZE_CUSTOMER", "25")
	t.Setenv("PAGE_SIZE_PAYMENT", "abc")
	t.Setenv("ID_PREFIX_CUSTOMER", "2026")

	cfg := Load()
	require.Equal(t, "sqlite3", cfg.DBDriver)
	require.Equal(t, 25, cfg.PageSize.Customer)
	require.Equal(t, 12, cfg.PageSize.Payment)
	require.Equal(t, "2026", cfg.IDPrefix.Customer)
}

func TestLoad_MissingDatabaseURLPanics(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	require.Panics(t, func() { Load() })
}
