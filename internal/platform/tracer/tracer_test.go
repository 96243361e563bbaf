package tracer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/go-while/go-newsfeed/internal/config"
)

func TestInitDisabled(t *testing.T) {
	var buf bytes.Buffer
	p, err := Init(context.Background(), config.TracingConfig{}, &buf, nil)
	require.NoError(t, err)
	assert.Nil(t, p.TracerProvider)
	assert.NoError(t, p.Shutdown(context.Background()))

	var nilProvider *Provider
	assert.NoError(t, nilProvider.Shutdown(context.Background()))
}

func TestInitExportsSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var buf bytes.Buffer
	cfg := config.TracingConfig{Enabled: true, ServiceName: "newsfeed-test", Environment: "test"}
	p, err := Init(context.Background(), cfg, &buf, nil)
	require.NoError(t, err)
	require.NotNil(t, p.TracerProvider)

	_, span := otel.Tracer("test").Start(context.Background(), "store.ListArticles")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))

	assert.Contains(t, buf.String(), "store.ListArticles")
	assert.Contains(t, buf.String(), "newsfeed-test")
}
