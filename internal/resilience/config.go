package resilience

import "time"

// Config holds the resilience policy applied to every call made through a
// Caller.
type Config struct {
	// CallTimeout bounds a single attempt. Exceeding it is an
	// infrastructure failure, never a domain outcome.
	CallTimeout time.Duration
	// MaxRetries is the number of re-attempts after the first failed call.
	MaxRetries int
	// RetryBackoff is the base delay of the exponential backoff between
	// attempts. Full jitter is applied on top.
	RetryBackoff time.Duration
	// ConsecutiveFailures is the failure streak that opens the circuit.
	ConsecutiveFailures uint32
	// OpenCooldown is how long the circuit stays open before allowing the
	// single half-open trial call.
	OpenCooldown time.Duration
}

// DefaultConfig provides balanced settings for most downstream services.
func DefaultConfig() Config {
	return Config{
		CallTimeout:         2 * time.Second,
		MaxRetries:          2,
		RetryBackoff:        100 * time.Millisecond,
		ConsecutiveFailures: 5,
		OpenCooldown:        30 * time.Second,
	}
}

// AggressiveConfig for services requiring fast failure detection.
func AggressiveConfig() Config {
	return Config{
		CallTimeout:         1 * time.Second,
		MaxRetries:          1,
		RetryBackoff:        50 * time.Millisecond,
		ConsecutiveFailures: 3,
		OpenCooldown:        10 * time.Second,
	}
}

func (cfg Config) withDefaults() Config {
	def := DefaultConfig()

	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = def.CallTimeout
	}

	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = def.RetryBackoff
	}

	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = def.ConsecutiveFailures
	}

	if cfg.OpenCooldown <= 0 {
		cfg.OpenCooldown = def.OpenCooldown
	}

	return cfg
}
