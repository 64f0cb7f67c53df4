package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/armenxdev/restaurant-finder/internal/config"
	"github.com/armenxdev/restaurant-finder/internal/events"
	"github.com/armenxdev/restaurant-finder/internal/httpserver"
	"github.com/armenxdev/restaurant-finder/internal/models"
	"github.com/armenxdev/restaurant-finder/internal/repo"
	"github.com/armenxdev/restaurant-finder/internal/search"
	"github.com/armenxdev/restaurant-finder/internal/service"
	"github.com/armenxdev/restaurant-finder/internal/upload"
	pkgdb "github.com/armenxdev/restaurant-finder/pkg/db"
	"github.com/armenxdev/restaurant-finder/pkg/logging"
	loggingmw "github.com/armenxdev/restaurant-finder/pkg/middleware/logging"
)

func main() {
	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Restaurant{}, &models.Product{}); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	var searchClient *search.Client
	if cfg.ESURL != "" {
		searchClient, err = search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword, cfg.ESIndex)
		if err != nil {
			log.Printf("warning: search disabled: %v", err)
			searchClient = nil
		}
	}

	store := repo.New(db)
	uploads := &upload.Store{Dir: cfg.UploadDir}

	userSvc := &service.UserService{
		Repo:      store,
		Events:    producer,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.JWTTTL,
	}
	restaurantSvc := &service.RestaurantService{
		Repo:   store,
		Events: producer,
		Search: searchClient,
	}
	productSvc := &service.ProductService{
		Repo:   store,
		Events: producer,
	}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())
	e.Static("/uploads", cfg.UploadDir)

	httpserver.Register(e, &httpserver.Deps{
		UserHandler:       &httpserver.UserHTTP{Svc: userSvc, Uploads: uploads},
		RestaurantHandler: &httpserver.RestaurantHTTP{Svc: restaurantSvc, Search: searchClient, Uploads: uploads},
		ProductHandler:    &httpserver.ProductHTTP{Svc: productSvc},
		JWTSecret:         cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("%s listening on %s", cfg.ServiceName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	_ = producer.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("server stopped")
}
