package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/3rdhubtech/cosmoleen-storefront/internal/config"
	"github.com/3rdhubtech/cosmoleen-storefront/internal/db"
	"github.com/3rdhubtech/cosmoleen-storefront/internal/httpserver"
	categoryrepo "github.com/3rdhubtech/cosmoleen-storefront/internal/repository/category"
	locationrepo "github.com/3rdhubtech/cosmoleen-storefront/internal/repository/location"
	orderrepo "github.com/3rdhubtech/cosmoleen-storefront/internal/repository/order"
	productrepo "github.com/3rdhubtech/cosmoleen-storefront/internal/repository/product"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	deps := httpserver.Deps{
		Products:   productrepo.NewPostgres(dbpool, logger),
		Categories: categoryrepo.NewPostgres(dbpool),
		Locations:  locationrepo.NewPostgres(dbpool),
		Orders:     orderrepo.NewPostgres(dbpool, logger),
	}

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, deps, cfg.CORSOrigins)

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
