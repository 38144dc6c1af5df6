// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AccelByte/extend-conditional-actions/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// MetricsServer manages the Prometheus metrics HTTP server.
type MetricsServer struct {
	server   *http.Server
	port     int
	endpoint string
	metrics  *metrics.Metrics
}

// NewMetricsServer creates a new metrics server instance.
func NewMetricsServer(port int, endpoint string, m *metrics.Metrics) *MetricsServer {
	return &MetricsServer{
		port:     port,
		endpoint: endpoint,
		metrics:  m,
	}
}

// Setup mounts the metrics registry on the endpoint.
//
// ============================================================
// DEVELOPER: Register custom Prometheus metrics in pkg/metrics
// ============================================================
// The registry already carries the Go runtime and process
// collectors plus the engine, dispatch and gRPC metrics.
// Add new collectors to metrics.New() and record them through
// methods on *metrics.Metrics.
// ============================================================
func (m *MetricsServer) Setup() error {
	if m.metrics == nil {
		return fmt.Errorf("metrics registry is required")
	}

	mux := http.NewServeMux()
	mux.Handle(m.endpoint, m.metrics.Handler())

	m.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", m.port),
		Handler: mux,
	}

	return nil
}

// Start begins serving metrics on the configured port.
func (m *MetricsServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("metrics server listening on port %d%s", m.port, m.endpoint)
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("metrics server failed: %v", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the metrics server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down metrics server...")
	if err := m.server.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("metrics server stopped")
	return nil
}
