// Package store persists deployment records in an embedded Badger database.
//
// Records are JSON-encoded under <kind>:<id> keys. Deleting a record removes
// it from the database; there is no soft-delete or tombstone state.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Instance is one running workload unit of a job within a deployment.
type Instance struct {
	UUID  string `json:"uuid"`
	Job   string `json:"job"`
	Index int    `json:"index"`
	State string `json:"state"`
	VMCID string `json:"vm_cid,omitempty"`

	// Reservations holds the IPs this instance has claimed from the
	// network pool. They are released, never destroyed, on teardown.
	Reservations []Reservation `json:"reservations,omitempty"`
}

// Name returns the human identifier used in logs and progress reporting.
func (i *Instance) Name() string {
	return fmt.Sprintf("%s/%d", i.Job, i.Index)
}

// Reservation binds an instance to an IP on a named network.
type Reservation struct {
	Network string `json:"network"`
	IP      string `json:"ip"`
}

// VM is a cloud compute resource bound 1:1 to an instance while alive.
type VM struct {
	CID          string `json:"cid"`
	InstanceUUID string `json:"instance_uuid"`
}

// PersistentDisk is a cloud volume owned by an instance. An instance may own
// several at once during a disk migration; Active marks the one currently
// relied upon, everything else is a stale leftover.
type PersistentDisk struct {
	CID          string `json:"cid"`
	InstanceUUID string `json:"instance_uuid"`
	Active       bool   `json:"active"`
	SizeGB       int    `json:"size_gb,omitempty"`
}

// Snapshot is a point-in-time cloud backup of a persistent disk. The record
// may outlive the instance when the operator keeps the cloud snapshot.
type Snapshot struct {
	CID     string `json:"cid"`
	DiskCID string `json:"disk_cid"`
}

// DNSRecord is a deployment-manager-owned DNS entry for an instance.
type DNSRecord struct {
	Name         string `json:"name"`
	IP           string `json:"ip"`
	InstanceUUID string `json:"instance_uuid"`
}

// Store is the persistence boundary for deployment records.
type Store interface {
	SaveInstance(ctx context.Context, inst *Instance) error
	FindInstance(ctx context.Context, uuid string) (*Instance, error)
	DeleteInstance(ctx context.Context, uuid string) error
	ListInstances(ctx context.Context) ([]*Instance, error)

	SaveVM(ctx context.Context, vm *VM) error
	FindVM(ctx context.Context, cid string) (*VM, error)
	DeleteVM(ctx context.Context, cid string) error

	SaveDisk(ctx context.Context, disk *PersistentDisk) error
	DisksForInstance(ctx context.Context, instanceUUID string) ([]*PersistentDisk, error)
	DeleteDisk(ctx context.Context, cid string) error
	// OrphanedDisks returns disks whose owning instance record no longer
	// exists. Used by the standalone disk sweep.
	OrphanedDisks(ctx context.Context) ([]*PersistentDisk, error)

	SaveSnapshot(ctx context.Context, snap *Snapshot) error
	SnapshotsForDisk(ctx context.Context, diskCID string) ([]*Snapshot, error)
	DeleteSnapshot(ctx context.Context, cid string) error

	SaveDNSRecord(ctx context.Context, rec *DNSRecord) error
	DNSRecordsForInstance(ctx context.Context, instanceUUID string) ([]*DNSRecord, error)
	DeleteDNSRecord(ctx context.Context, name string) error

	Close() error
}
