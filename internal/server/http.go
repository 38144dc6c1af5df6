// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HTTPServer serves the rule set config API.
type HTTPServer struct {
	server  *http.Server
	port    int
	handler http.Handler
}

// NewHTTPServer creates a new config API server instance.
func NewHTTPServer(port int, handler http.Handler) *HTTPServer {
	return &HTTPServer{
		port:    port,
		handler: handler,
	}
}

// Setup wraps the API handler with tracing.
func (h *HTTPServer) Setup() error {
	if h.handler == nil {
		return fmt.Errorf("config API handler is required")
	}

	h.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", h.port),
		Handler:           otelhttp.NewHandler(h.handler, "config-api"),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return nil
}

// Start begins serving the config API on the configured port.
func (h *HTTPServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("config API listening on port %d", h.port)
		if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("config API server failed: %v", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the config API server.
func (h *HTTPServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down config API server...")
	if err := h.server.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("config API server stopped")
	return nil
}
