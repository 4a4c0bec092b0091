package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/jsponceA/api-express-tienda/config"
	"github.com/jsponceA/api-express-tienda/database"
	"github.com/jsponceA/api-express-tienda/handlers"
	"github.com/jsponceA/api-express-tienda/middlewares"
	"github.com/jsponceA/api-express-tienda/routes"
	"github.com/jsponceA/api-express-tienda/store"
	"github.com/jsponceA/api-express-tienda/upload"
)

// @title           Express Tienda API
// @version         1.0
// @description     Echo + PostgreSQL store API (products, books, customers, students, enrollments)
// @BasePath        /api/v1
func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	if cfg.AppEnv == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("connect database")
	}

	uploads := upload.NewSaver(cfg.UploadDir, cfg.MaxUploadBytes)
	students := store.NewStudentStore(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middlewares.RequestLogger())
	e.Use(middleware.CORS())
	e.Static(upload.PublicPrefix, cfg.UploadDir)

	routes.Register(e, routes.Handlers{
		Products:    handlers.NewProductHandler(store.NewProductStore(db), uploads),
		Books:       handlers.NewBookHandler(store.NewBookStore(db)),
		Customers:   handlers.NewCustomerHandler(store.NewCustomerStore(db), uploads),
		Students:    handlers.NewStudentHandler(students, uploads),
		Enrollments: handlers.NewEnrollmentHandler(store.NewEnrollmentStore(db), students),
	})

	addr := ":" + cfg.AppPort
	log.WithField("addr", addr).Info("server listening")
	if err := e.Start(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
