package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestConfigFromAppOptions(t *testing.T) {
	require.Equal(t, Config{SampleRate: 1, ChainID: "paw-1"}, ConfigFromAppOptions(nil, "paw-1"))

	v := viper.New()
	require.Equal(t, Config{SampleRate: 1, ChainID: "paw-1"}, ConfigFromAppOptions(v, "paw-1"))

	v.Set(FlagEnabled, "true")
	v.Set(FlagEndpoint, "http://localhost:4318")
	v.Set(FlagSampleRate, "0.25")
	v.Set(FlagEnvironment, "testnet")
	v.Set(FlagPrometheusEnabled, true)

	cfg := ConfigFromAppOptions(v, "paw-1")
	require.Equal(t, Config{
		Enabled:           true,
		Endpoint:          "http://localhost:4318",
		SampleRate:        0.25,
		Environment:       "testnet",
		ChainID:           "paw-1",
		PrometheusEnabled: true,
	}, cfg)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Endpoint: "localhost:4318", SampleRate: 0.5}, false},
		{"missing endpoint", Config{SampleRate: 1}, true},
		{"negative sample rate", Config{Endpoint: "localhost:4318", SampleRate: -0.1}, true},
		{"sample rate above one", Config{Endpoint: "localhost:4318", SampleRate: 1.5}, true},
		{"unparseable endpoint", Config{Endpoint: "http://[::1", SampleRate: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(Config{})
	require.NoError(t, err)
	require.NoError(t, p.HealthCheck())
	require.NotNil(t, p.Tracer())
	require.NotNil(t, p.Meter())
	require.NoError(t, p.Shutdown(context.Background()))

	_, err = NewProvider(Config{Enabled: true, SampleRate: 1})
	require.Error(t, err)
}

func TestNewProvider_Enabled(t *testing.T) {
	p, err := NewProvider(Config{
		Enabled:           true,
		Endpoint:          "http://127.0.0.1:4318",
		SampleRate:        1,
		Environment:       "test",
		ChainID:           "paw-test",
		PrometheusEnabled: true,
	})
	require.NoError(t, err)
	require.NoError(t, p.HealthCheck())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(ctx))
}

func TestStartModuleSpan_UsesProviderTracer(t *testing.T) {
	p, err := NewProvider(Config{
		Enabled:    true,
		Endpoint:   "http://127.0.0.1:4318",
		SampleRate: 0,
		ChainID:    "paw-test",
	})
	require.NoError(t, err)

	_, span := p.StartModuleSpan(context.Background(), "aggregator", "resolve")
	require.True(t, span.SpanContext().IsValid())
	require.False(t, span.SpanContext().IsSampled())
	span.End()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(ctx))
}

func TestSpanHelpers(t *testing.T) {
	p, err := NewProvider(Config{})
	require.NoError(t, err)

	ctx, span := p.StartModuleSpan(context.Background(), "aggregator", "resolve")
	require.NotNil(t, ctx)

	AddSpanAttributes(span, attribute.String("asset", "symbol:BTC"))
	RecordError(span, errors.New("oracle unreachable"))
	SetSpanStatus(span, true, "resolved")
	span.End()

	// nil spans are ignored
	AddSpanAttributes(nil)
	RecordError(nil, errors.New("ignored"))
	SetSpanStatus(nil, false, "ignored")
}
