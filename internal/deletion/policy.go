package deletion

import "github.com/mfeldt/scuttle/internal/store"

// NotFoundPolicy says how disk teardown treats a cloud not-found error.
type NotFoundPolicy int

const (
	// FailOnNotFound raises not-found like any other error. Used for
	// active disks: the disk is supposed to exist, so its absence is a
	// real problem, not cleanup noise.
	FailOnNotFound NotFoundPolicy = iota
	// IgnoreNotFound treats not-found as already-deleted and proceeds to
	// remove the record. Used for inactive leftover disks.
	IgnoreNotFound
)

// notFoundPolicyFor derives the teardown policy from the disk's active flag.
func notFoundPolicyFor(disk *store.PersistentDisk) NotFoundPolicy {
	if disk.Active {
		return FailOnNotFound
	}
	return IgnoreNotFound
}

// SnapshotPolicy says whether snapshot teardown touches the cloud resource.
type SnapshotPolicy int

const (
	// DeleteCloudSnapshots deletes the cloud snapshot before removing the
	// record.
	DeleteCloudSnapshots SnapshotPolicy = iota
	// KeepCloudSnapshots removes only the record; the cloud snapshot
	// stays for the operator.
	KeepCloudSnapshots
)
