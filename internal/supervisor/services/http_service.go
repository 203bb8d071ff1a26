// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HTTPServer is the lifecycle half of *http.Server.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs the JSON API server under supervision.
//
// ListenAndServe runs in a goroutine; cancellation of the Serve context
// triggers Shutdown bounded by the drain timeout.
//
//	server := &http.Server{Addr: ":8080", Handler: router}
//	tree.AddFrontendService(services.NewHTTPServerService(server, ":8080", 10*time.Second, logger))
type HTTPServerService struct {
	server       HTTPServer
	addr         string
	drainTimeout time.Duration
	logger       zerolog.Logger
	name         string
}

// NewHTTPServerService wraps server. A non-positive drainTimeout selects 10s.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHTTPServerService(server HTTPServer, addr string, drainTimeout time.Duration, logger zerolog.Logger) *HTTPServerService {
	if drainTimeout <= 0 {
		drainTimeout = 10 * time.Second
	}
	return &HTTPServerService{
		server:       server,
		addr:         addr,
		drainTimeout: drainTimeout,
		logger:       logger.With().Str("service", "http").Str("addr", addr).Logger(),
		name:         "http-api",
	}
}

// Serve implements suture.Service. http.ErrServerClosed is not an error.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	h.logger.Info().Msg("http api listening")

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http api on %s: %w", h.addr, err)
		}
		return nil

	case <-ctx.Done():
		// ctx is already canceled; drain on a fresh one.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.drainTimeout)
		defer cancel()

		h.logger.Info().Dur("drain_timeout", h.drainTimeout).Msg("http api draining")
		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http api shutdown: %w", err)
		}

		<-errCh
		return ctx.Err()
	}
}

// String identifies the service in supervisor events.
func (h *HTTPServerService) String() string {
	return h.name
}
