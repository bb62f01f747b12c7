// Package main rentaldesk API.
//
// @title           Rentaldesk API
// @version         1.0
// @description     Student book-rental service (auth, students, catalog search, rentals, analytics).
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

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"rentaldesk/app/echoServer"
	analyticsctrl "rentaldesk/app/echoServer/controller/analytics"
	authctrl "rentaldesk/app/echoServer/controller/auth"
	catalogctrl "rentaldesk/app/echoServer/controller/catalog"
	rentalctrl "rentaldesk/app/echoServer/controller/rental"
	studentctrl "rentaldesk/app/echoServer/controller/student"
	"rentaldesk/app/echoServer/validation"
	"rentaldesk/config"
	bookrepo "rentaldesk/repository/book"
	"rentaldesk/repository/openlibrary"
	rentalrepo "rentaldesk/repository/rental"
	studentrepo "rentaldesk/repository/student"
	userrepo "rentaldesk/repository/user"
	analyticssvc "rentaldesk/service/analytics"
	authsvc "rentaldesk/service/auth"
	catalogsvc "rentaldesk/service/catalog"
	rentalsvc "rentaldesk/service/rental"
	studentsvc "rentaldesk/service/student"
	"rentaldesk/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	sr := studentrepo.New(db)
	br := bookrepo.New(db)
	rr := rentalrepo.New(db)
	ol := openlibrary.NewHTTP(cfg.OpenLibraryURL)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	ss := studentsvc.New(db, sr, cfg.JWTSecret)
	cs := catalogsvc.New(br, ol)
	rs := rentalsvc.New(db, rr, br, sr, ol)
	ans := analyticssvc.New(rr, sr, br)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	studentC := &studentctrl.Controller{Svc: ss, V: v, Log: log}
	catalogC := &catalogctrl.Controller{Svc: cs, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}
	analyticsC := &analyticsctrl.Controller{Svc: ans, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:      authC,
		Student:   studentC,
		Catalog:   catalogC,
		Rental:    rentalC,
		Analytics: analyticsC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8000"
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
