package echoServer

import (
	"log/slog"

	"bikerental/app/echoServer/controller/auth"
	"bikerental/app/echoServer/controller/bike"
	"bikerental/app/echoServer/controller/customer"
	"bikerental/app/echoServer/controller/payment"
	"bikerental/app/echoServer/controller/rental"
	"bikerental/app/echoServer/controller/report"
	"bikerental/app/echoServer/controller/returns"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth      *auth.Controller
	Customer  *customer.Controller
	Bike      *bike.Controller
	Rental    *rental.Controller
	Payment   *payment.Controller
	Return    *returns.Controller
	Report    *report.Controller
	JWTSecret string
	Log       *slog.Logger
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/auth/login", c.Auth.Login)

	// Operator only
	op := e.Group("/v1")
	op.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization:Bearer ",
	}))
	op.Use(Operator(c.Log))

	op.GET("/customers", c.Customer.List)
	op.POST("/customers", c.Customer.Create)
	op.DELETE("/customers", c.Customer.Clear)
	op.GET("/customers/:id", c.Customer.Detail)
	op.PUT("/customers/:id", c.Customer.Update)
	op.DELETE("/customers/:id", c.Customer.Delete)

	op.GET("/bikes", c.Bike.List)
	op.POST("/bikes", c.Bike.Create)
	op.DELETE("/bikes", c.Bike.Clear)
	op.GET("/bikes/:id", c.Bike.Detail)
	op.PUT("/bikes/:id", c.Bike.Update)
	op.DELETE("/bikes/:id", c.Bike.Delete)

	op.GET("/rentals", c.Rental.List)
	op.POST("/rentals", c.Rental.Create)
	op.POST("/rentals/overdue", c.Rental.MarkOverdue)
	op.GET("/rentals/:id", c.Rental.Detail)
	op.PUT("/rentals/:id", c.Rental.Update)
	op.DELETE("/rentals/:id", c.Rental.Delete)

	op.GET("/payments", c.Payment.List)
	op.POST("/payments", c.Payment.Create)
	op.DELETE("/payments", c.Payment.Clear)
	op.GET("/payments/:id", c.Payment.Detail)
	op.PUT("/payments/:id", c.Payment.Update)
	op.DELETE("/payments/:id", c.Payment.Delete)
	op.POST("/payments/:id/refund", c.Payment.Refund)

	// returns drive the rental lifecycle
	op.GET("/returns", c.Return.List)
	op.POST("/returns", c.Return.Create)
	op.DELETE("/returns", c.Return.Clear)
	op.GET("/returns/:id", c.Return.Detail)
	op.DELETE("/returns/:id", c.Return.Delete)

	op.GET("/reports/monthly", c.Report.Monthly)
}
