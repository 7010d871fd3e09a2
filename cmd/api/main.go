package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/xspace-labs/xspace-backend/internal/config"
	"github.com/xspace-labs/xspace-backend/internal/handler"
	"github.com/xspace-labs/xspace-backend/internal/model/catalog"
	clientmodel "github.com/xspace-labs/xspace-backend/internal/model/client"
	reservationmodel "github.com/xspace-labs/xspace-backend/internal/model/reservation"
	"github.com/xspace-labs/xspace-backend/internal/service/auth"
	"github.com/xspace-labs/xspace-backend/internal/service/checkout"
	"github.com/xspace-labs/xspace-backend/internal/service/visit"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// In-memory stores; everything is volatile for the process lifetime.
	productStore := catalog.NewMemoryStore(catalog.Seed())
	clientStore := clientmodel.NewMemoryStore(nil)
	reservationStore := reservationmodel.NewMemoryStore(nil)

	authSvc := auth.NewService(cfg.Auth.Username, cfg.Auth.Password)
	visitSvc := visit.NewService(productStore, cfg.Billing.VisitHourRate, nil)
	checkoutSvc := checkout.NewService(productStore, cfg.Billing.HallHourRate, nil)

	log.Printf("billing rates: visit %s/h, hall %s/h",
		cfg.Billing.VisitHourRate, cfg.Billing.HallHourRate)

	router := handler.NewRouter(authSvc, productStore, clientStore, reservationStore, visitSvc, checkoutSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("X Space backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
