// Package metrics exposes teardown counters on the default Prometheus
// registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InstancesDeleted counts instances whose teardown pipeline completed.
	InstancesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scuttle_instances_deleted_total",
		Help: "Instances whose teardown pipeline ran to completion.",
	})

	// StepFailuresTolerated counts pipeline step failures swallowed in
	// force mode, labelled by step.
	StepFailuresTolerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scuttle_step_failures_tolerated_total",
		Help: "Pipeline step failures swallowed by force mode.",
	}, []string{"step"})

	// DisksDeleted counts persistent disk records removed.
	DisksDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scuttle_disks_deleted_total",
		Help: "Persistent disk records removed.",
	})

	// SnapshotsDeleted counts snapshot records removed.
	SnapshotsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scuttle_snapshots_deleted_total",
		Help: "Snapshot records removed.",
	})

	// ReservationsReleased counts IP reservations returned to the pool.
	ReservationsReleased = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scuttle_reservations_released_total",
		Help: "IP reservations released back to the network pool.",
	})
)
