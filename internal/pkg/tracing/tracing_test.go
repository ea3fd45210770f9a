package tracing_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"freight/internal/pkg/tracing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInit_Disabled(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	shutdown, err := tracing.Init(context.Background(), tracing.Config{Disabled: true}, logger)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), `"tracing_enabled":false`)
	assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
}

func TestInit_UnsupportedProtocolDegrades(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	shutdown, err := tracing.Init(context.Background(), tracing.Config{Protocol: "carrier-pigeon"}, logger)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), "unsupported OTLP protocol: carrier-pigeon")
}

func TestSampler(t *testing.T) {
	testCases := []struct {
		name, arg string
		contains  string
	}{
		{"always_on", "", "AlwaysOnSampler"},
		{"always_off", "", "AlwaysOffSampler"},
		{"traceidratio", "0.25", "TraceIDRatioBased{0.25}"},
		{"parentbased_traceidratio", "0.5", "ParentBased{root:TraceIDRatioBased{0.5}"},
		{"traceidratio", "bogus", "AlwaysOnSampler"},
		{"", "", "ParentBased{root:AlwaysOnSampler"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, tracing.Sampler(tc.name, tc.arg).Description(), tc.contains)
		})
	}
}
