package hcloud

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/mfeldt/scuttle/internal/util/retry"
)

// RealClient implements Client against the Hetzner Cloud API.
type RealClient struct {
	client   *hcloud.Client
	timeouts Timeouts
}

var _ Client = (*RealClient)(nil)

// NewRealClient creates a client authenticated with the given API token.
// A zero Timeouts value falls back to DefaultTimeouts.
func NewRealClient(token string, timeouts Timeouts) *RealClient {
	if timeouts == (Timeouts{}) {
		timeouts = DefaultTimeouts()
	}
	return &RealClient{
		client:   hcloud.NewClient(hcloud.WithToken(token)),
		timeouts: timeouts,
	}
}

// DeleteVM deletes the server with the given cid and waits for the delete
// action to finish.
func (c *RealClient) DeleteVM(ctx context.Context, cid string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
	defer cancel()

	return c.withLockRetry(ctx, func() error {
		id, err := parseCID(cid)
		if err != nil {
			return err
		}
		result, _, err := c.client.Server.DeleteWithResult(ctx, &hcloud.Server{ID: id})
		if err != nil {
			return err
		}
		if err := c.client.Action.WaitFor(ctx, result.Action); err != nil {
			return fmt.Errorf("waiting for server %s deletion: %w", cid, err)
		}
		return nil
	})
}

// DeleteDisk deletes the volume with the given cid. The volume must already
// be detached; a volume still attached to a live server reports locked and
// is retried until the attachment goes away or the budget runs out.
func (c *RealClient) DeleteDisk(ctx context.Context, cid string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
	defer cancel()

	return c.withLockRetry(ctx, func() error {
		id, err := parseCID(cid)
		if err != nil {
			return err
		}
		_, err = c.client.Volume.Delete(ctx, &hcloud.Volume{ID: id})
		return err
	})
}

// DeleteSnapshot deletes the snapshot image with the given cid.
func (c *RealClient) DeleteSnapshot(ctx context.Context, cid string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
	defer cancel()

	return c.withLockRetry(ctx, func() error {
		id, err := parseCID(cid)
		if err != nil {
			return err
		}
		_, err = c.client.Image.Delete(ctx, &hcloud.Image{ID: id})
		return err
	})
}

// withLockRetry runs op with backoff on locked-resource errors. Any other
// error, not-found included, is returned without further attempts so the
// caller can classify it.
func (c *RealClient) withLockRetry(ctx context.Context, op func() error) error {
	return retry.Do(ctx, func() error {
		err := op()
		if err == nil {
			return nil
		}
		if isResourceLocked(err) {
			return err
		}
		return retry.Fatal(err)
	},
		retry.WithMaxAttempts(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay),
	)
}

func parseCID(cid string) (int64, error) {
	id, err := strconv.ParseInt(cid, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid resource id %q", cid)
	}
	return id, nil
}
