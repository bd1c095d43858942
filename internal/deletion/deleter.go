// Package deletion orchestrates instance teardown.
//
// For every instance slated for removal the pipeline drains the workload,
// deletes the VM, tears down snapshots and persistent disks, removes DNS
// records, releases network reservations, and cleans rendered artifacts, in
// that order. Many instances run concurrently under a bounded worker pool.
//
// Two policies shape failure behavior: force mode swallows per-step errors
// so reclamation never stalls on one unreachable collaborator, and the
// keep-snapshots policy leaves cloud snapshot data in place while still
// dropping the bookkeeping records.
package deletion

import (
	"context"
	"errors"
	"fmt"

	"github.com/mfeldt/scuttle/internal/artifacts"
	"github.com/mfeldt/scuttle/internal/drain"
	"github.com/mfeldt/scuttle/internal/platform/hcloud"
	"github.com/mfeldt/scuttle/internal/store"
	"github.com/mfeldt/scuttle/internal/util/async"
)

// DNS removes the DNS records belonging to an instance. Implemented by
// dns.Repo.
type DNS interface {
	DeleteRecords(ctx context.Context, inst *store.Instance) error
}

// IPAllocator releases network reservations back to the pool. Implemented
// by netpool.Allocator. Must be safe for concurrent use.
type IPAllocator interface {
	Release(res store.Reservation) error
}

// DrainDecider decides whether draining is skipped for an instance.
// Implemented by drain.Decider.
type DrainDecider interface {
	ShouldSkipDrain(inst *store.Instance) bool
}

// StopperFactory builds a per-instance drain/stop negotiator. Implemented
// by drain.NATSStopperFactory.
type StopperFactory interface {
	NewStopper(inst *store.Instance, hard bool) drain.Stopper
}

// Collaborators are the external systems teardown drives. DeleteInstances
// uses all of them; DeletePersistentDisks and DeleteSnapshots touch only
// Cloud and Store.
type Collaborators struct {
	Cloud    hcloud.Client
	Store    store.Store
	DNS      DNS
	IPs      IPAllocator
	Decider  DrainDecider
	Stoppers StopperFactory
	Blobs    artifacts.Blobstore
	Observer Observer
}

// Config fixes the deleter's policies for its lifetime.
type Config struct {
	// Force swallows per-step failures and keeps going, guaranteeing
	// best-effort reclamation even when a collaborator is unreachable.
	Force bool
	// HardStop tells agents to kill workloads instead of draining them
	// gracefully.
	HardStop bool
	// KeepSnapshotsInCloud removes snapshot records without deleting the
	// cloud snapshot data.
	KeepSnapshotsInCloud bool
	// MaxWorkers is the worker-pool size used when a call does not
	// override it.
	MaxWorkers int
}

// Deleter is the instance-teardown entry point.
type Deleter struct {
	cloud    hcloud.Client
	store    store.Store
	dns      DNS
	ips      IPAllocator
	decider  DrainDecider
	stoppers StopperFactory
	blobs    artifacts.Blobstore
	observer Observer

	force          bool
	hardStop       bool
	snapshotPolicy SnapshotPolicy
	maxWorkers     int
}

// NewDeleter creates a deleter. A nil Observer falls back to console
// logging.
func NewDeleter(c Collaborators, cfg Config) *Deleter {
	obs := c.Observer
	if obs == nil {
		obs = ConsoleObserver{}
	}
	policy := DeleteCloudSnapshots
	if cfg.KeepSnapshotsInCloud {
		policy = KeepCloudSnapshots
	}
	return &Deleter{
		cloud:          c.Cloud,
		store:          c.Store,
		dns:            c.DNS,
		ips:            c.IPs,
		decider:        c.Decider,
		stoppers:       c.Stoppers,
		blobs:          c.Blobs,
		observer:       obs,
		force:          cfg.Force,
		hardStop:       cfg.HardStop,
		snapshotPolicy: policy,
		maxWorkers:     cfg.MaxWorkers,
	}
}

// Options adjusts a single DeleteInstances call.
type Options struct {
	// MaxWorkers overrides the configured pool size when positive.
	MaxWorkers int
}

// DeleteInstances tears down every instance concurrently under the resolved
// worker budget, advancing tracker once per instance after its pipeline
// finishes. In non-force mode the first instance failure is returned;
// already-running pipelines finish, queued ones do not start. The instance
// set must not contain duplicates or instances sharing resources.
func (d *Deleter) DeleteInstances(ctx context.Context, instances []*store.Instance, tracker ProgressTracker, opts Options) error {
	workers := opts.MaxWorkers
	if workers == 0 {
		workers = d.maxWorkers
	}
	if workers <= 0 {
		return fmt.Errorf("max workers must be positive, got %d", workers)
	}

	tasks := make([]async.Task, len(instances))
	for i, inst := range instances {
		tasks[i] = async.Task{
			Name: inst.Name(),
			Func: func(ctx context.Context) error {
				return tracker.AdvanceAndTrack(inst.Name(), func() error {
					return d.deleteInstance(ctx, inst)
				})
			},
		}
	}

	pool := &async.Pool{Workers: workers}
	return pool.Run(ctx, tasks)
}

// DeletePersistentDisks sweeps disks whose owning instance no longer
// exists. Every disk is attempted; failures are joined. Orphans are
// treated as inactive no matter what their record says: a forced teardown
// can remove the instance record while the disk step failed, leaving an
// active-flagged orphan behind, and a volume already gone from the cloud
// must still count as swept.
func (d *Deleter) DeletePersistentDisks(ctx context.Context, disks []*store.PersistentDisk) error {
	var errs []error
	for _, disk := range disks {
		if err := d.deleteDiskWithPolicy(ctx, disk, IgnoreNotFound); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DeleteSnapshots removes the instance's snapshot records, honoring the
// configured keep-snapshots policy.
func (d *Deleter) DeleteSnapshots(ctx context.Context, inst *store.Instance) error {
	return d.deleteSnapshots(ctx, inst, d.snapshotPolicy)
}
