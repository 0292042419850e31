package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/raynzz/eventdesk/pkg/observability/attr"
)

// Run serves HTTP and runs the background modules until ctx is cancelled,
// then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Logger

	var wg sync.WaitGroup
	wg.Add(2)
	go a.Modules.Activity.Run(ctx, &wg)
	go a.Modules.Auth.Run(ctx, &wg)

	srv := &http.Server{
		Addr:              a.Config.HTTP.Address,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	servers := []*http.Server{srv}
	if addr := a.Config.Observability.MetricsAddress; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", a.Observability.MetricsHandler())
		servers = append(servers, &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second})
	}

	errCh := make(chan error, len(servers))
	for _, s := range servers {
		go func(s *http.Server) {
			logger.InfoContext(ctx, "Starting HTTP server", attr.String("address", s.Addr))
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("http server %s: %w", s.Addr, err)
			}
		}(s)
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutting down eventdesk")
	case runErr = <-errCh:
		logger.Error("HTTP server failed", attr.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, s := range servers {
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Warn("HTTP server shutdown failed", attr.String("address", s.Addr), attr.Error(err))
		}
	}

	a.Close()
	wg.Wait()
	return runErr
}

// Close stops the modules and releases the bus and the database.
func (a *App) Close() {
	logger := a.Observability.Logger
	if a.Modules.Activity != nil {
		if err := a.Modules.Activity.Close(); err != nil {
			logger.Warn("Failed to close activity module", attr.Error(err))
		}
	}
	if a.Modules.Auth != nil {
		_ = a.Modules.Auth.Close()
	}
	if a.EventBus != nil {
		if err := a.EventBus.Close(); err != nil {
			logger.Warn("Failed to close event bus", attr.Error(err))
		}
	}
	closeDB(a.DB)
}
