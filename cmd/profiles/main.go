package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AlibekovAA/profile-cards/internal/common/bootstrap"
	commonhttp "github.com/AlibekovAA/profile-cards/internal/common/http"
	srv "github.com/AlibekovAA/profile-cards/internal/common/server"
	profilehttp "github.com/AlibekovAA/profile-cards/internal/profile/http"
)

func main() {
	app, err := bootstrap.NewProfilesApp()
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to start profiles service: %v\n", err))
		os.Exit(1)
	}
	log := app.Log
	cfg := app.Config

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app.Controller.Start(ctx)

	handler := profilehttp.NewHandler(app.Controller, app.Renderer, cfg, log)

	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.Handle("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())

	rateLimiter := commonhttp.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustProxyHeaders, "/health", "/metrics")
	baseHandler := commonhttp.BuildBaseHandler("profiles", log, mux, rateLimiter.Middleware)

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), baseHandler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Infof("profiles service: closing state streams")
			handler.Close()
			return nil
		},
		func(ctx context.Context) error {
			log.Infof("profiles service: tearing down fetch controller %s", app.Controller.ID())
			app.Controller.Teardown()
			cancel()
			return nil
		},
		func(ctx context.Context) error {
			rateLimiter.Stop()
			return nil
		},
	}

	if err := srv.StartWithGracefulShutdownAndHooks(server, log, "profiles", shutdownHooks); err != nil {
		log.Fatalf("profiles service stopped: %v", err)
	}
}
