package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")
	t.Setenv("KAFKA_GROUP_ID", "")

	cfg, err := LoadConfig("order-service")
	require.NoError(t, err)

	assert.Equal(t, "order-service", cfg.ServiceName)
	assert.Equal(t, "order-service-group", cfg.KafkaGroupID)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 10*time.Second, cfg.HTTPClientTimeout)
	assert.False(t, cfg.OtelEnabled())
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("SERVICE_NAME", "payment-service")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("CUSTOMER_CACHE_TTL", "30s")
	t.Setenv("OTEL_ENDPOINT", "otlp.example.com")
	t.Setenv("OTEL_AUTH_HEADER", "Basic abc")

	cfg, err := LoadConfig("ignored")
	require.NoError(t, err)

	assert.Equal(t, "payment-service", cfg.ServiceName)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Second, cfg.CustomerCacheTTL)
	assert.True(t, cfg.OtelEnabled())
}

func TestLoadConfig_OtelEndpointRequiresAuthHeader(t *testing.T) {
	t.Setenv("OTEL_ENDPOINT", "otlp.example.com")
	t.Setenv("OTEL_AUTH_HEADER", "")

	_, err := LoadConfig("product-service")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OTEL_AUTH_HEADER")
}
