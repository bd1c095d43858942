package hcloud

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRealClientTimeouts(t *testing.T) {
	// A zero value falls back to the defaults.
	c := NewRealClient("token", Timeouts{})
	assert.Equal(t, DefaultTimeouts(), c.timeouts)

	custom := Timeouts{
		Delete:            time.Minute,
		RetryMaxAttempts:  2,
		RetryInitialDelay: 100 * time.Millisecond,
	}
	assert.Equal(t, custom, NewRealClient("token", custom).timeouts)
}
