// Package hcloud wraps the Hetzner Cloud API for resource teardown.
//
// Deployment resources map onto Hetzner resources as follows: a VM is a
// server, a persistent disk is a volume, a disk snapshot is an image of
// type snapshot. Resource IDs ("cids") are the opaque decimal form of the
// Hetzner numeric IDs.
package hcloud

import (
	"context"
	"time"
)

// Timeouts configures per-call deadlines and retry behavior for delete
// operations.
type Timeouts struct {
	Delete            time.Duration
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
}

// DefaultTimeouts returns the tuning used when the config file does not
// override it.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Delete:            5 * time.Minute,
		RetryMaxAttempts:  5,
		RetryInitialDelay: time.Second,
	}
}

// Client is the cloud operation surface consumed by teardown. Each call may
// fail with a generic cloud error or a not-found error; use IsNotFound to
// tell them apart.
type Client interface {
	// DeleteVM deletes the server with the given cid.
	DeleteVM(ctx context.Context, cid string) error
	// DeleteDisk deletes the volume with the given cid.
	DeleteDisk(ctx context.Context, cid string) error
	// DeleteSnapshot deletes the snapshot image with the given cid.
	DeleteSnapshot(ctx context.Context, cid string) error
}
