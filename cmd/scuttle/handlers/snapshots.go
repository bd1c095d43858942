package handlers

import (
	"context"
	"fmt"
	"log"
)

// SnapshotsOptions are the flag values of the snapshots command.
type SnapshotsOptions struct {
	// Instance selects the instance whose snapshots are removed, by name
	// (job/index) or UUID.
	Instance string
	// Keep removes snapshot records without deleting cloud snapshot data.
	Keep bool
}

// Snapshots handles the snapshots command.
//
// It removes the snapshot records of one instance's persistent disks,
// deleting the cloud snapshots too unless the keep policy applies.
func Snapshots(ctx context.Context, configPath string, opts SnapshotsOptions) error {
	if opts.Instance == "" {
		return fmt.Errorf("an instance must be selected")
	}

	e, err := buildSweepEnv(configPath, policyOverrides{KeepSnapshots: opts.Keep})
	if err != nil {
		return err
	}
	defer e.close()

	instances, err := selectInstances(ctx, e.store, []string{opts.Instance})
	if err != nil {
		return err
	}
	inst := instances[0]

	log.Printf("[Snapshots] Removing snapshots of instance %s", inst.Name())
	if err := e.deleter.DeleteSnapshots(ctx, inst); err != nil {
		return fmt.Errorf("snapshot deletion failed: %w", err)
	}

	log.Printf("[Snapshots] Instance %s: snapshots removed", inst.Name())
	return nil
}
