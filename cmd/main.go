package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"postavki/internal/config"
	httpapi "postavki/internal/http"
	"postavki/internal/logging"
	"postavki/internal/repository"
	"postavki/internal/service"

	_ "postavki/docs"
)

func main() {
	configPath := flag.String("config", "", "path to config file (yaml, json or toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// цены уходят клиентам числами, а не строками
	decimal.MarshalJSONWithoutQuotes = true

	log := logging.New(os.Stdout, cfg.Log)
	slog.SetDefault(log)
	if logging.ParseLevel(cfg.Log.Level) > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := repository.Open(cfg.Database, log)
	if err != nil {
		log.Error("failed to open database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	if err := repository.Migrate(db); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	r := repository.NewRepositories(db)
	hasher := service.NewPasswordHasher(cfg.Auth.BcryptCost)

	srv := httpapi.NewServer(httpapi.Services{
		Supplies:   service.NewSupplyService(r.Supplies, r.Batches, r.Stores, r.Suppliers, r.Warehouses, r.Products, r.DB),
		Warehouses: service.NewWarehouseService(r.Warehouses, r.Products, r.DB),
		Stores:     service.NewStoreService(r.Stores, r.Warehouses, r.Reviews, r.SupportMessages, r.Supplies, r.DB, hasher),
		Suppliers:  service.NewSupplierService(r.Suppliers, r.Batches, r.Reviews, r.SupportMessages, r.Supplies, r.DB, hasher),
		Batches:    service.NewBatchService(r.Batches, r.Suppliers),
		Products:   service.NewProductService(r.Products, r.Warehouses, r.DB),
		Reviews:    service.NewReviewService(r.Reviews, r.Stores, r.Suppliers),
		Support:    service.NewSupportService(r.SupportMessages, r.Stores, r.Suppliers),
	}, r.DB, log)

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", "addr", httpServer.Addr, "driver", cfg.Database.Driver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	if err := repository.Close(db); err != nil {
		log.Error("failed to close database", "error", err)
	}
}
