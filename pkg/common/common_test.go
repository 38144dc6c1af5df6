// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package common

import (
	"context"
	"errors"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInterceptorLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	l := InterceptorLogger(logger)
	l.Log(context.Background(), logging.LevelWarn, "slow call", "grpc.method", "OnMessage", "grpc.time_ms", 12)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "slow call", entry.Message)
	assert.Equal(t, "OnMessage", entry.Data["grpc.method"])
	assert.Equal(t, 12, entry.Data["grpc.time_ms"])
}

func TestConfigureLogging(t *testing.T) {
	prevLevel, prevFormatter := logrus.GetLevel(), logrus.StandardLogger().Formatter
	t.Cleanup(func() {
		logrus.SetLevel(prevLevel)
		logrus.SetFormatter(prevFormatter)
	})

	require.NoError(t, ConfigureLogging("debug", "text"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)

	require.NoError(t, ConfigureLogging("warn", "json"))
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	assert.Error(t, ConfigureLogging("loud", "json"))
	assert.Error(t, ConfigureLogging("info", "xml"))
}

func TestScope(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	scope := ChildScopeFromRemoteScope(context.Background(), "parent")
	assert.NotEmpty(t, scope.TraceID)
	assert.Equal(t, scope.TraceID, scope.Log.Data[traceIdLogField])

	child := scope.NewChildScope("child")
	child.TraceTag("rule_id", "welcome")
	child.TraceError(errors.New("boom"))
	child.Finish()
	scope.Finish()

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "child", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, spans[1].SpanContext().TraceID(), spans[0].SpanContext().TraceID())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
}

func TestNewTracerProvider(t *testing.T) {
	tp, err := NewTracerProvider(TracerConfig{ServiceName: "conditional-actions", Environment: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	exporting, err := NewTracerProvider(TracerConfig{ServiceName: "conditional-actions", Export: true})
	require.NoError(t, err)
	assert.NoError(t, exporting.Shutdown(context.Background()))
}
