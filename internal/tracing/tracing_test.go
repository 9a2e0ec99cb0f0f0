package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/Aidin1998/trivia/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetupDisabled(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Setup(context.Background(), config.TracingConfig{ServiceName: "trivia-api"}, &buf)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Empty(t, buf.String())
}

func TestSetupExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.Background()
	shutdown, err := Setup(ctx, config.TracingConfig{Enabled: true, ServiceName: "trivia-test"}, &buf)
	require.NoError(t, err)

	_, span := otel.Tracer("tracing_test").Start(ctx, "draw-question")
	span.End()

	require.NoError(t, shutdown(ctx))
	assert.Contains(t, buf.String(), "draw-question")
	assert.Contains(t, buf.String(), "trivia-test")

	// a second shutdown is a no-op
	assert.NoError(t, shutdown(ctx))
}
