// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strings"
	"time"
)

// Config collects everything cmd/server needs to wire the process.
type Config struct {
	ListenAddr string
	LogLevel   string

	MongoURI      string
	MongoDatabase string

	CustomerServiceURL    string
	AccountServiceURL     string
	TransactionServiceURL string

	// KafkaBrokers empty disables event publishing.
	KafkaBrokers []string
	KafkaTopic   string

	CallTimeout time.Duration
}

// FromEnv builds a Config from environment variables with local-friendly
// defaults.
func FromEnv() Config {
	return Config{
		ListenAddr:            getenv("LISTEN_ADDR", ":8080"),
		LogLevel:              getenv("LOG_LEVEL", "info"),
		MongoURI:              getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:         getenv("MONGO_DATABASE", "debit"),
		CustomerServiceURL:    getenv("CUSTOMER_SERVICE_URL", "http://localhost:8081"),
		AccountServiceURL:     getenv("ACCOUNT_SERVICE_URL", "http://localhost:8082"),
		TransactionServiceURL: getenv("TRANSACTION_SERVICE_URL", "http://localhost:8083"),
		KafkaBrokers:          splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:            getenv("KAFKA_TOPIC", ""),
		CallTimeout:           getenvDuration("GATEWAY_CALL_TIMEOUT", 2*time.Second),
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}

	return parsed
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
