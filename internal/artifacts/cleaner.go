// Package artifacts removes rendered configuration artifacts from the
// blobstore when their owning instance goes away.
package artifacts

import (
	"context"
	"fmt"

	"github.com/mfeldt/scuttle/internal/store"
)

// Blobstore is the object-storage surface the cleaner needs. Implemented by
// platform/s3.Client.
type Blobstore interface {
	DeleteAll(ctx context.Context, prefix string) error
}

// Cleaner removes every rendered artifact belonging to one instance.
type Cleaner struct {
	blobs Blobstore
	inst  *store.Instance
}

// NewCleaner creates a cleaner for the given instance backed by blobs.
func NewCleaner(blobs Blobstore, inst *store.Instance) *Cleaner {
	return &Cleaner{blobs: blobs, inst: inst}
}

// CleanAll deletes the instance's artifact prefix from the blobstore.
func (c *Cleaner) CleanAll(ctx context.Context) error {
	return c.blobs.DeleteAll(ctx, Prefix(c.inst))
}

// Prefix returns the blobstore prefix under which an instance's rendered
// artifacts live.
func Prefix(inst *store.Instance) string {
	return fmt.Sprintf("rendered/%s/%s/", inst.Job, inst.UUID)
}
