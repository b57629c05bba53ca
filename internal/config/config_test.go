package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("EVENT_BROKER", "")
	t.Setenv("EVENT_SINK", "")

	cfg := Load("flight-inventory-service")

	assert.Equal(t, "flight-inventory-service", cfg.ServiceName)
	assert.Equal(t, BrokerRabbitMQ, cfg.Broker)
	assert.Equal(t, SinkInline, cfg.EventSink)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "renamed")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("EVENT_BROKER", BrokerKafka)
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("EVENT_SINK", SinkOutbox)
	t.Setenv("DB_NAME", "pss_test")

	cfg := Load("flight-inventory-service")

	assert.Equal(t, "renamed", cfg.ServiceName)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, BrokerKafka, cfg.Broker)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, SinkOutbox, cfg.EventSink)
	assert.Equal(t, "pss_test", cfg.Database.DBName)
}
