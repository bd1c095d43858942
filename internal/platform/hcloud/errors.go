package hcloud

import (
	"errors"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// IsNotFound reports whether err is a cloud not-found error. Teardown treats
// this as an idempotency signal for inactive disks only; for everything else
// it is a real failure.
func IsNotFound(err error) bool {
	return isErrorCode(err, hcloud.ErrorCodeNotFound)
}

// isResourceLocked reports whether err indicates the resource is locked by a
// running action. These errors are retryable.
func isResourceLocked(err error) bool {
	return isErrorCode(err,
		hcloud.ErrorCodeLocked,
		hcloud.ErrorCodeConflict,
		hcloud.ErrorCodeResourceLocked,
		hcloud.ErrorCodeResourceUnavailable,
	)
}

// isErrorCode checks if the error is an hcloud API error with one of the
// given codes.
func isErrorCode(err error, codes ...hcloud.ErrorCode) bool {
	if err == nil {
		return false
	}

	var apiErr hcloud.Error
	if errors.As(err, &apiErr) {
		for _, code := range codes {
			if apiErr.Code == code {
				return true
			}
		}
	}
	return false
}
