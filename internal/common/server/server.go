package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/AlibekovAA/profile-cards/internal/common/constants"
	"github.com/AlibekovAA/profile-cards/internal/common/logger"
)

type ShutdownHook func(ctx context.Context) error

// StartWithGracefulShutdownAndHooks serves until SIGINT or SIGTERM.
func StartWithGracefulShutdownAndHooks(
	server *http.Server,
	log *logger.Logger,
	serviceName string,
	hooks []ShutdownHook,
) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return Run(ctx, server, log, serviceName, hooks)
}

// Run serves until ctx is done, then drains: keep-alives off, hooks run
// within the drain window, and the server is shut down.
func Run(
	ctx context.Context,
	server *http.Server,
	log *logger.Logger,
	serviceName string,
	hooks []ShutdownHook,
) error {
	serveErr := make(chan error, 1)
	go func() {
		log.Infof("%s service listening on %s", serviceName, server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok && err != nil {
			return fmt.Errorf("failed to start %s service: %w", serviceName, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infof("shutting down %s service...", serviceName)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer shutdownCancel()

	drainCtx, drainCancel := context.WithTimeout(shutdownCtx, constants.DrainTimeout)
	defer drainCancel()

	log.Infof("%s service: stopping accepting new connections (drain period: %v)", serviceName, constants.DrainTimeout)
	server.SetKeepAlivesEnabled(false)

	if len(hooks) > 0 {
		log.Infof("%s service: executing shutdown hooks", serviceName)
		for i, hook := range hooks {
			if err := hook(drainCtx); err != nil {
				log.Errorf("%s service: shutdown hook %d failed: %v", serviceName, i, err)
			}
		}
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("%s service forced to shutdown: %v", serviceName, err)
		return err
	}

	log.Infof("%s service stopped gracefully", serviceName)
	return nil
}
