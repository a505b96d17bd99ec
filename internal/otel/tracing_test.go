package otel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"
)

func TestInit_Disabled(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")

	shutdown, err := Init(context.Background(), time.UTC)

	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestBuildSampler(t *testing.T) {
	cases := []struct {
		name string
		arg  string
		want trace.Sampler
	}{
		{"always_on", "", trace.AlwaysSample()},
		{"always_off", "", trace.NeverSample()},
		{"traceidratio", "0.25", trace.TraceIDRatioBased(0.25)},
		{"traceidratio", "not-a-number", trace.TraceIDRatioBased(1.0)},
		{"parentbased_always_off", "", trace.ParentBased(trace.NeverSample())},
		{"parentbased_traceidratio", "0.5", trace.ParentBased(trace.TraceIDRatioBased(0.5))},
		{"unknown", "", trace.ParentBased(trace.AlwaysSample())},
	}

	for _, tc := range cases {
		got := buildSampler(tc.name, tc.arg)
		assert.Equal(t, tc.want.Description(), got.Description(), "sampler %q arg %q", tc.name, tc.arg)
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("SOME_KEY", "set")
	assert.Equal(t, "set", envOr("SOME_KEY", "fallback"))
	assert.Equal(t, "fallback", envOr("SOME_OTHER_KEY", "fallback"))
}
