package deletion

import (
	"context"
	"fmt"

	"github.com/mfeldt/scuttle/internal/metrics"
	"github.com/mfeldt/scuttle/internal/store"
)

// deleteSnapshots removes every snapshot record belonging to every disk the
// instance owns. With DeleteCloudSnapshots the cloud resource goes first;
// with KeepCloudSnapshots it is left intact and only the record is removed.
func (d *Deleter) deleteSnapshots(ctx context.Context, inst *store.Instance, policy SnapshotPolicy) error {
	disks, err := d.store.DisksForInstance(ctx, inst.UUID)
	if err != nil {
		return fmt.Errorf("failed to look up disks for %s: %w", inst.Name(), err)
	}

	for _, disk := range disks {
		snaps, err := d.store.SnapshotsForDisk(ctx, disk.CID)
		if err != nil {
			return fmt.Errorf("failed to look up snapshots for disk %s: %w", disk.CID, err)
		}
		for _, snap := range snaps {
			if policy == DeleteCloudSnapshots {
				if err := d.cloud.DeleteSnapshot(ctx, snap.CID); err != nil {
					return fmt.Errorf("failed to delete snapshot %s: %w", snap.CID, err)
				}
			}
			if err := d.store.DeleteSnapshot(ctx, snap.CID); err != nil {
				return fmt.Errorf("failed to remove snapshot record %s: %w", snap.CID, err)
			}
			metrics.SnapshotsDeleted.Inc()
			d.observer.Event(Event{Type: EventResourceDeleted, Instance: inst.Name(), Resource: "snapshot " + snap.CID})
		}
	}
	return nil
}
