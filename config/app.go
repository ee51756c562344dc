package config

type App struct {
	Port        string `env:"APP_PORT" default:"8080"`
	Env         string `env:"APP_ENV" default:"dev"`
	DBDriver    string `env:"DB_DRIVER" default:"pgx"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET"`

	OperatorUsername     string `env:"OPERATOR_USERNAME" default:"admin"`
	OperatorPasswordHash string `env:"OPERATOR_PASSWORD_HASH"`

	OverdueAfterDays int `env:"OVERDUE_AFTER_DAYS" default:"7"`

	PageSize PageSizes
	IDPrefix IDPrefixes
}

// PageSizes are handed to each repository constructor.
type PageSizes struct {
	Customer int `env:"PAGE_SIZE_CUSTOMER" default:"12"`
	Bike     int `env:"PAGE_SIZE_BIKE" default:"12"`
	Rental   int `env:"PAGE_SIZE_RENTAL" default:"12"`
	Payment  int `env:"PAGE_SIZE_PAYMENT" default:"12"`
	Return   int `env:"PAGE_SIZE_RETURN" default:"12"`
}

// IDPrefixes is the static leading segment of generated ids. Bikes always
// use BIKE.
type IDPrefixes struct {
	Customer string `env:"ID_PREFIX_CUSTOMER" default:"1000"`
	Rental   string `env:"ID_PREFIX_RENTAL" default:"2000"`
	Payment  string `env:"ID_PREFIX_PAYMENT" default:"3000"`
	Return   string `env:"ID_PREFIX_RETURN" default:"4000"`
}
