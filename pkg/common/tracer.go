// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package common

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// DefaultZipkinEndpoint is the span collector of a local zipkin.
const DefaultZipkinEndpoint = "http://localhost:9411/api/v2/spans"

// TracerConfig configures the tracer provider.
type TracerConfig struct {
	ServiceName string
	Environment string
	ID          int64
	// Export disables span export when false. Spans are still created so
	// trace ids keep flowing through logs.
	Export         bool
	ZipkinEndpoint string
}

// NewTracerProvider creates a tracer provider exporting to zipkin.
func NewTracerProvider(cfg TracerConfig) (*sdktrace.TracerProvider, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("environment", cfg.Environment),
			attribute.Int64("ID", cfg.ID),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build trace resource: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
	}

	if cfg.Export {
		endpoint := cfg.ZipkinEndpoint
		if endpoint == "" {
			endpoint = DefaultZipkinEndpoint
		}
		exporter, err := zipkin.New(endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to create zipkin exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	return sdktrace.NewTracerProvider(opts...), nil
}
