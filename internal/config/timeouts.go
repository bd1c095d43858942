package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds configurable timeout values, customized via environment
// variables.
type Timeouts struct {
	Drain             time.Duration // Budget for one drain/stop negotiation
	Delete            time.Duration // Per-call deadline for cloud delete operations
	RetryMaxAttempts  int           // Attempts for locked cloud resources
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables. An
// unset or invalid variable falls back to its default.
//
// Environment Variables:
//   - SCUTTLE_TIMEOUT_DRAIN (default: 5m)
//   - SCUTTLE_TIMEOUT_DELETE (default: 5m)
//   - SCUTTLE_RETRY_MAX_ATTEMPTS (default: 5)
//   - SCUTTLE_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Drain:             parseDuration("SCUTTLE_TIMEOUT_DRAIN", 5*time.Minute),
		Delete:            parseDuration("SCUTTLE_TIMEOUT_DELETE", 5*time.Minute),
		RetryMaxAttempts:  parseInt("SCUTTLE_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("SCUTTLE_RETRY_INITIAL_DELAY", time.Second),
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
