package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/vpetrakov/webshop/internal/auth"
	"github.com/vpetrakov/webshop/internal/config"
	"github.com/vpetrakov/webshop/internal/es"
	"github.com/vpetrakov/webshop/internal/event"
	"github.com/vpetrakov/webshop/internal/handlers"
	"github.com/vpetrakov/webshop/internal/logging"
	"github.com/vpetrakov/webshop/internal/repo"
	"github.com/vpetrakov/webshop/internal/service"
	httpserver "github.com/vpetrakov/webshop/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	var publisher event.Publisher
	if configuration.KAFKA_ADDRESS != "" {
		publisher = event.NewKafkaPublisher([]string{configuration.KAFKA_ADDRESS})
	} else {
		logger.Warn("KAFKA_ADDRESS not set, event publishing disabled")
	}

	var searchSvc *service.SearchService
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		searchSvc = &service.SearchService{ES: esClient, Index: "products"}
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	store := repo.New(db)
	tokens := &auth.TokenService{
		Repo:          store,
		JWTSecret:     []byte(configuration.JWT_SECRET),
		RefreshSecret: []byte(configuration.REFRESH_SECRET),
	}

	authSvc := &service.AuthService{Repo: store, Publisher: publisher, AdminEmail: configuration.ADMIN_EMAIL}
	catalogSvc := &service.CatalogService{Repo: store, Publisher: publisher, Search: searchSvc}
	cartSvc := &service.CartService{Repo: store, Publisher: publisher}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), logging.RequestLogger(logger))

	deps := httpserver.Deps{
		Tokens:         tokens,
		PageHandler:    &handlers.PageHandler{},
		AuthHandler:    &handlers.AuthHandler{Auth: authSvc, Tokens: tokens},
		ProductHandler: &handlers.ProductHandler{Catalog: catalogSvc},
		CartHandler:    &handlers.CartHandler{Cart: cartSvc},
	}
	if searchSvc != nil {
		deps.SearchHandler = &handlers.SearchHandler{Svc: searchSvc}
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	logger.Info("shutdown complete")
}
