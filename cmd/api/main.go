package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Diego999991/ecommerce-api/internal/config"
	"github.com/Diego999991/ecommerce-api/internal/db"
	"github.com/Diego999991/ecommerce-api/internal/httpserver"
	cartrepo "github.com/Diego999991/ecommerce-api/internal/repository/cart"
	orderrepo "github.com/Diego999991/ecommerce-api/internal/repository/order"
	productrepo "github.com/Diego999991/ecommerce-api/internal/repository/product"
	tokenrepo "github.com/Diego999991/ecommerce-api/internal/repository/token"
	userrepo "github.com/Diego999991/ecommerce-api/internal/repository/user"
	authsvc "github.com/Diego999991/ecommerce-api/internal/service/auth"
	cartsvc "github.com/Diego999991/ecommerce-api/internal/service/cart"
	checkoutsvc "github.com/Diego999991/ecommerce-api/internal/service/checkout"
	ordersvc "github.com/Diego999991/ecommerce-api/internal/service/order"
	productsvc "github.com/Diego999991/ecommerce-api/internal/service/product"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	userRepo := userrepo.NewPostgres(dbpool)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	authService := authsvc.New(userRepo, tokenRepo)
	productService := productsvc.New(productRepo)
	cartService := cartsvc.New(cartRepo, productRepo)
	checkoutService := checkoutsvc.New(cartRepo, orderRepo)
	orderService := ordersvc.New(orderRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		AuthSvc:     authService,
		ProductSvc:  productService,
		CartSvc:     cartService,
		CheckoutSvc: checkoutService,
		OrderSvc:    orderService,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

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
