package run

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/broker-session/src/session-api/router"
)

const shutdownTimeout = 10 * time.Second

// Serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, app *App) error {
	hub := router.NewEventHub()
	if err := hub.Attach(app.Bus, app.Center); err != nil {
		return fmt.Errorf("Serve: %w", err)
	}

	srv := &http.Server{
		Addr:         ":" + app.Config.Server.Port,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      router.NewHTTPHandler(app.Session, hub),
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Infof("Serve: listening on %s", srv.Addr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-srvErr:
		hub.Close()
		return fmt.Errorf("Serve: %w", err)
	case <-ctx.Done():
		log.Info("Serve: shutting down")
	}

	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("Serve: failed to shutdown: %w", err)
	}

	app.Bus.WaitAsync()
	return nil
}
