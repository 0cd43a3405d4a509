package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "debit", cfg.MongoDatabase)
	assert.Equal(t, "http://localhost:8081", cfg.CustomerServiceURL)
	assert.Equal(t, "http://localhost:8082", cfg.AccountServiceURL)
	assert.Equal(t, "http://localhost:8083", cfg.TransactionServiceURL)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.Equal(t, 2*time.Second, cfg.CallTimeout)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MONGO_DATABASE", "cards")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092 ,")
	t.Setenv("GATEWAY_CALL_TIMEOUT", "500ms")

	cfg := FromEnv()

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "cards", cfg.MongoDatabase)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 500*time.Millisecond, cfg.CallTimeout)
}

func TestFromEnv_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("GATEWAY_CALL_TIMEOUT", "not-a-duration")

	cfg := FromEnv()

	assert.Equal(t, 2*time.Second, cfg.CallTimeout)
}
