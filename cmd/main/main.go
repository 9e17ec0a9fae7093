package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"pbf-price-service/internal/config"
	"pbf-price-service/internal/extract"
	plHandler "pbf-price-service/internal/pricelist/handler"
	"pbf-price-service/internal/pricelist/service"
	"pbf-price-service/internal/session"
	serverhttp "pbf-price-service/server/http"
)

func main() {
	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		runtime.GOMAXPROCS(runtime.NumCPU())
	}

	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	store := session.NewStore(time.Duration(cfg.SessionTTLMin) * time.Minute)
	svc := service.New(extract.DefaultLayout(), logger)
	h := plHandler.New(svc, store, cfg, logger)

	r := serverhttp.NewRouter(cfg, logger, h)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go store.Sweep(sweepCtx, time.Minute)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	stopSweep()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}
