// Package main bike rental back office API.
//
// @title           Bike Rental API
// @version         1.0
// @description     Back office for a bicycle rental shop: customers, bikes, rentals, payments and returns.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"bikerental/app/echoServer"
	authctrl "bikerental/app/echoServer/controller/auth"
	bikectrl "bikerental/app/echoServer/controller/bike"
	customerctrl "bikerental/app/echoServer/controller/customer"
	paymentctrl "bikerental/app/echoServer/controller/payment"
	rentalctrl "bikerental/app/echoServer/controller/rental"
	reportctrl "bikerental/app/echoServer/controller/report"
	returnctrl "bikerental/app/echoServer/controller/returns"
	"bikerental/config"
	bikerepo "bikerental/repository/bike"
	customerrepo "bikerental/repository/customer"
	paymentrepo "bikerental/repository/payment"
	rentalrepo "bikerental/repository/rental"
	returnrepo "bikerental/repository/returns"
	authsvc "bikerental/service/auth"
	bikesvc "bikerental/service/bike"
	customersvc "bikerental/service/customer"
	paymentsvc "bikerental/service/payment"
	rentalsvc "bikerental/service/rental"
	reportsvc "bikerental/service/report"
	returnsvc "bikerental/service/returns"
	"bikerental/util/database"
	"bikerental/util/idgen"
	"bikerental/validation"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	level := slog.LevelInfo
	if cfg.Env == "dev" {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	db, err := database.New(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "driver", cfg.DBDriver, "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db.DB); err != nil {
		log.Error("schema setup failed", "err", err)
		os.Exit(1)
	}

	// repos
	cr := customerrepo.New(db.DB, cfg.PageSize.Customer)
	br := bikerepo.New(db.DB, cfg.PageSize.Bike)
	rr := rentalrepo.New(db.DB, cfg.PageSize.Rental)
	pr := paymentrepo.New(db.DB, cfg.PageSize.Payment)
	retr := returnrepo.New(db.DB, cfg.PageSize.Return)

	// services
	v := validation.New()
	as := authsvc.New(cfg.OperatorUsername, cfg.OperatorPasswordHash, cfg.JWTSecret)
	cs := customersvc.New(cr, v, idgen.Sequence{Prefix: cfg.IDPrefix.Customer})
	bs := bikesvc.New(br, v)
	rs := rentalsvc.New(db.DB, rr, br, cr, v, idgen.Sequence{Prefix: cfg.IDPrefix.Rental})
	cleaner := rentalsvc.NewCleaner(rr, cfg.OverdueAfterDays)
	ps := paymentsvc.New(db.DB, pr, rr, retr, v, idgen.Sequence{Prefix: cfg.IDPrefix.Payment})
	rets := returnsvc.New(db.DB, retr, rr, br, cr, v, idgen.Sequence{Prefix: cfg.IDPrefix.Return})
	reps := reportsvc.New(pr, rr)

	if cfg.OperatorPasswordHash == "" {
		log.Warn("OPERATOR_PASSWORD_HASH is empty, login is disabled")
	}
	if n, err := cleaner.MarkOverdue(ctx); err != nil {
		log.Error("overdue sweep failed", "err", err)
	} else if n > 0 {
		log.Info("rentals marked overdue", "count", n)
	}

	// controllers
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	customerC := &customerctrl.Controller{Svc: cs, Log: log}
	bikeC := &bikectrl.Controller{Svc: bs, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, Cleaner: cleaner, V: v, Log: log}
	paymentC := &paymentctrl.Controller{Svc: ps, V: v, Log: log}
	returnC := &returnctrl.Controller{Svc: rets, V: v, Log: log}
	reportC := &reportctrl.Controller{Svc: reps, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e, log)
	e.Validator = v

	e.GET("/health", func(c echo.Context) error {
		if err := db.PingContext(c.Request().Context()); err != nil {
			return c.JSON(503, map[string]any{"status": "down", "message": err.Error()})
		}
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
			"driver":  db.Driver,
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:     authC,
		Customer: customerC,
		Bike:     bikeC,
		Rental:   rentalC,
		Payment:  paymentC,
		Return:   returnC,
		Report:   reportC,

		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "PORT_env", os.Getenv("PORT"), "chosen_port", port, "driver", db.Driver)

	e.Logger.Fatal(e.Start(":" + port))
}
