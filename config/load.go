package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultPageSize = 12

func Load() App {
	// .env is optional outside local dev
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}

	cfg := App{
		Port:        getenv("APP_PORT", "8080"),
		Env:         getenv("APP_ENV", "dev"),
		DBDriver:    getenv("DB_DRIVER", "pgx"),
		DatabaseURL: must("DATABASE_URL"),
		JWTSecret:   getenv("JWT_SECRET", "local_dev_secret"),

		OperatorUsername:     getenv("OPERATOR_USERNAME", "admin"),
		OperatorPasswordHash: os.Getenv("OPERATOR_PASSWORD_HASH"),

		OverdueAfterDays: getint("OVERDUE_AFTER_DAYS", 7),

		PageSize: PageSizes{
			Customer: getint("PAGE_SIZE_CUSTOMER", defaultPageSize),
			Bike:     getint("PAGE_SIZE_BIKE", defaultPageSize),
			Rental:   getint("PAGE_SIZE_RENTAL", defaultPageSize),
			Payment:  getint("PAGE_SIZE_PAYMENT", defaultPageSize),
			Return:   getint("PAGE_SIZE_RETURN", defaultPageSize),
		},
		IDPrefix: IDPrefixes{
			Customer: getenv("ID_PREFIX_CUSTOMER", "1000"),
			Rental:   getenv("ID_PREFIX_RENTAL", "2000"),
			Payment:  getenv("ID_PREFIX_PAYMENT", "3000"),
			Return:   getenv("ID_PREFIX_RETURN", "4000"),
		},
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid integer env, using default", "key", k, "value", v, "default", def)
		return def
	}
	return n
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
