package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mfeldt/scuttle/internal/deletion"
	"github.com/mfeldt/scuttle/internal/store"
)

// DeleteOptions are the flag values of the delete command.
type DeleteOptions struct {
	// Selectors filters the instances to delete by name (job/index) or
	// UUID. Empty means every instance of the deployment.
	Selectors []string
	// MaxWorkers overrides the configured pool size when positive.
	MaxWorkers int

	Force         bool
	HardStop      bool
	KeepSnapshots bool
}

// Delete handles the delete command.
//
// It selects the instances to tear down, then runs the full teardown
// pipeline for each under a bounded worker pool: drain, VM, snapshots,
// disks, DNS, network reservations, rendered artifacts, and finally the
// instance record itself.
func Delete(ctx context.Context, configPath string, opts DeleteOptions) error {
	e, err := buildEnv(ctx, configPath, policyOverrides{
		Force:         opts.Force,
		HardStop:      opts.HardStop,
		KeepSnapshots: opts.KeepSnapshots,
	})
	if err != nil {
		return err
	}
	defer e.close()

	instances, err := selectInstances(ctx, e.store, opts.Selectors)
	if err != nil {
		return err
	}
	if len(instances) == 0 {
		log.Printf("[Delete] No matching instances in deployment %s", e.cfg.Deployment)
		return nil
	}

	log.Printf("[Delete] Deleting %d instance(s) from deployment %s", len(instances), e.cfg.Deployment)

	tracker := deletion.NewConsoleTracker(len(instances))
	if err := e.deleter.DeleteInstances(ctx, instances, tracker, deletion.Options{MaxWorkers: opts.MaxWorkers}); err != nil {
		return fmt.Errorf("instance deletion failed: %w", err)
	}

	log.Printf("[Delete] Deployment %s: %d instance(s) deleted", e.cfg.Deployment, len(instances))
	return nil
}

// selectInstances resolves selectors against the instances on record. Each
// selector matches either an instance name (job/index) or a UUID; a
// selector that matches nothing is an error.
func selectInstances(ctx context.Context, st store.Store, selectors []string) ([]*store.Instance, error) {
	all, err := st.ListInstances(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	if len(selectors) == 0 {
		return all, nil
	}

	byKey := make(map[string]*store.Instance, len(all)*2)
	for _, inst := range all {
		byKey[inst.Name()] = inst
		byKey[inst.UUID] = inst
	}

	seen := make(map[string]bool, len(selectors))
	var picked []*store.Instance
	var missing []string
	for _, sel := range selectors {
		inst, ok := byKey[sel]
		if !ok {
			missing = append(missing, sel)
			continue
		}
		if seen[inst.UUID] {
			continue
		}
		seen[inst.UUID] = true
		picked = append(picked, inst)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("no instance on record matching: %s", strings.Join(missing, ", "))
	}
	return picked, nil
}
