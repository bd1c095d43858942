package deletion

import (
	"context"
	"fmt"

	"github.com/mfeldt/scuttle/internal/artifacts"
	"github.com/mfeldt/scuttle/internal/metrics"
	"github.com/mfeldt/scuttle/internal/store"
)

// step is one stage of the teardown pipeline.
type step struct {
	name string
	run  func(ctx context.Context) error
}

// deleteInstance tears down one instance completely. Step order matters:
// the VM goes before its disks so volumes are detached, and DNS records are
// removed before reservations are released so no record ever points at a
// reassignable IP. The instance record itself falls last, once nothing it
// owns is left.
//
// Non-force: the first failing step aborts the remaining steps and its
// error surfaces to the pool. Force: each failure is logged and counted,
// and the pipeline keeps going so one unreachable collaborator cannot block
// release of everything else the instance holds.
func (d *Deleter) deleteInstance(ctx context.Context, inst *store.Instance) error {
	steps := []step{
		{"drain", func(ctx context.Context) error {
			return d.drainInstance(ctx, inst)
		}},
		{"delete vm", func(ctx context.Context) error {
			return d.deleteVM(ctx, inst)
		}},
		{"delete snapshots", func(ctx context.Context) error {
			return d.deleteSnapshots(ctx, inst, d.snapshotPolicy)
		}},
		{"delete disks", func(ctx context.Context) error {
			disks, err := d.store.DisksForInstance(ctx, inst.UUID)
			if err != nil {
				return fmt.Errorf("failed to look up disks for %s: %w", inst.Name(), err)
			}
			return d.deleteDisks(ctx, disks)
		}},
		{"remove dns records", func(ctx context.Context) error {
			return d.dns.DeleteRecords(ctx, inst)
		}},
		{"release reservations", func(ctx context.Context) error {
			return d.releaseReservations(inst)
		}},
		{"clean artifacts", func(ctx context.Context) error {
			return artifacts.NewCleaner(d.blobs, inst).CleanAll(ctx)
		}},
		{"remove instance record", func(ctx context.Context) error {
			return d.store.DeleteInstance(ctx, inst.UUID)
		}},
	}

	for _, s := range steps {
		err := s.run(ctx)
		if err == nil {
			continue
		}
		if !d.force {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		d.observer.Event(Event{Type: EventResourceFailed, Instance: inst.Name(), Resource: s.name, Err: err})
		metrics.StepFailuresTolerated.WithLabelValues(s.name).Inc()
	}

	metrics.InstancesDeleted.Inc()
	return nil
}

// drainInstance negotiates a stop with the instance's agent unless the
// skip policy says otherwise.
func (d *Deleter) drainInstance(ctx context.Context, inst *store.Instance) error {
	if d.decider.ShouldSkipDrain(inst) {
		d.observer.Event(Event{Type: EventStepSkipped, Instance: inst.Name(), Resource: "drain"})
		return nil
	}
	return d.stoppers.NewStopper(inst, d.hardStop).Stop(ctx)
}

// deleteVM deletes the instance's cloud VM, then its record. The record
// must never outlive a successful cloud deletion, and must never be removed
// before one: a VM not-found is as fatal as any other cloud error here.
func (d *Deleter) deleteVM(ctx context.Context, inst *store.Instance) error {
	if inst.VMCID == "" {
		return nil
	}
	d.observer.Event(Event{Type: EventResourceDeleting, Instance: inst.Name(), Resource: "vm " + inst.VMCID})

	if err := d.cloud.DeleteVM(ctx, inst.VMCID); err != nil {
		return fmt.Errorf("failed to delete vm %s: %w", inst.VMCID, err)
	}
	if err := d.store.DeleteVM(ctx, inst.VMCID); err != nil {
		return fmt.Errorf("failed to remove vm record %s: %w", inst.VMCID, err)
	}

	d.observer.Event(Event{Type: EventResourceDeleted, Instance: inst.Name(), Resource: "vm " + inst.VMCID})
	return nil
}

// releaseReservations returns every reservation the instance holds to the
// pool. Each one is released exactly once; the allocator rejects a repeat.
func (d *Deleter) releaseReservations(inst *store.Instance) error {
	for _, res := range inst.Reservations {
		if err := d.ips.Release(res); err != nil {
			return fmt.Errorf("failed to release %s on %s: %w", res.IP, res.Network, err)
		}
		metrics.ReservationsReleased.Inc()
	}
	return nil
}
