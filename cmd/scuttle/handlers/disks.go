package handlers

import (
	"context"
	"fmt"
	"log"
)

// DisksOptions are the flag values of the disks command.
type DisksOptions struct {
	Force bool
}

// Disks handles the disks command.
//
// It sweeps persistent disks whose owning instance record no longer
// exists, deleting the cloud volume and the disk record for each. Orphaned
// disks are by definition inactive, so a volume already gone from the
// cloud is treated as deleted.
func Disks(ctx context.Context, configPath string, opts DisksOptions) error {
	e, err := buildSweepEnv(configPath, policyOverrides{Force: opts.Force})
	if err != nil {
		return err
	}
	defer e.close()

	orphans, err := e.store.OrphanedDisks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list orphaned disks: %w", err)
	}
	if len(orphans) == 0 {
		log.Printf("[Disks] No orphaned disks in deployment %s", e.cfg.Deployment)
		return nil
	}

	log.Printf("[Disks] Sweeping %d orphaned disk(s)", len(orphans))
	if err := e.deleter.DeletePersistentDisks(ctx, orphans); err != nil {
		return fmt.Errorf("orphaned disk sweep failed: %w", err)
	}

	log.Printf("[Disks] %d orphaned disk(s) deleted", len(orphans))
	return nil
}
