package hcloud

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "not found code",
			err:  hcloud.Error{Code: hcloud.ErrorCodeNotFound},
			want: true,
		},
		{
			name: "wrapped not found",
			err:  fmt.Errorf("failed to delete volume: %w", hcloud.Error{Code: hcloud.ErrorCodeNotFound}),
			want: true,
		},
		{
			name: "other api error",
			err:  hcloud.Error{Code: hcloud.ErrorCodeRateLimitExceeded},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFound(tt.err))
		})
	}
}

func TestIsResourceLocked(t *testing.T) {
	assert.True(t, isResourceLocked(hcloud.Error{Code: hcloud.ErrorCodeLocked}))
	assert.True(t, isResourceLocked(hcloud.Error{Code: hcloud.ErrorCodeConflict}))
	assert.False(t, isResourceLocked(hcloud.Error{Code: hcloud.ErrorCodeNotFound}))
	assert.False(t, isResourceLocked(errors.New("timeout")))
}

func TestNotFoundErrorClassifies(t *testing.T) {
	assert.True(t, IsNotFound(NotFoundError()))
}

func TestParseCID(t *testing.T) {
	id, err := parseCID("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parseCID("srv-42")
	assert.Error(t, err)
}
