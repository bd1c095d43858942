package deletion

import (
	"context"
	"fmt"

	"github.com/mfeldt/scuttle/internal/metrics"
	"github.com/mfeldt/scuttle/internal/platform/hcloud"
	"github.com/mfeldt/scuttle/internal/store"
)

// deleteDisk deletes one disk's cloud volume, then its record, deriving
// the not-found policy from the disk's active flag.
//
// A cloud not-found is swallowed only for inactive disks: those are stale
// leftovers and an absent volume just means someone got there first. For an
// active disk every error raises, and the record stays so the state keeps
// pointing at whatever is wrong.
func (d *Deleter) deleteDisk(ctx context.Context, disk *store.PersistentDisk) error {
	return d.deleteDiskWithPolicy(ctx, disk, notFoundPolicyFor(disk))
}

// deleteDiskWithPolicy is deleteDisk with the not-found policy fixed by the
// caller. The orphan sweep uses it to ignore not-found regardless of the
// active flag: an orphan's instance is already gone, so an absent volume is
// success, and honoring a stale active flag would strand the record forever.
func (d *Deleter) deleteDiskWithPolicy(ctx context.Context, disk *store.PersistentDisk, policy NotFoundPolicy) error {
	d.observer.Event(Event{Type: EventResourceDeleting, Resource: "disk " + disk.CID})

	if err := d.cloud.DeleteDisk(ctx, disk.CID); err != nil {
		if hcloud.IsNotFound(err) && policy == IgnoreNotFound {
			d.observer.Printf("[Delete] Disk %s already gone, removing record", disk.CID)
		} else {
			return fmt.Errorf("failed to delete disk %s: %w", disk.CID, err)
		}
	}

	if err := d.store.DeleteDisk(ctx, disk.CID); err != nil {
		return fmt.Errorf("failed to remove disk record %s: %w", disk.CID, err)
	}

	metrics.DisksDeleted.Inc()
	d.observer.Event(Event{Type: EventResourceDeleted, Resource: "disk " + disk.CID})
	return nil
}

// deleteDisks tears down disks in retrieval order, stopping at the first
// failure. Whether teardown continues past a failed disk is the caller's
// force policy, not a decision made here.
func (d *Deleter) deleteDisks(ctx context.Context, disks []*store.PersistentDisk) error {
	for _, disk := range disks {
		if err := d.deleteDisk(ctx, disk); err != nil {
			return err
		}
	}
	return nil
}
