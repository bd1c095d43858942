package hcloud

import (
	"context"
	"sync"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// MockClient implements Client for tests. Each method delegates to its Func
// field when set and succeeds otherwise. Calls are recorded per cid and
// safe to make from concurrent workers.
type MockClient struct {
	DeleteVMFunc       func(ctx context.Context, cid string) error
	DeleteDiskFunc     func(ctx context.Context, cid string) error
	DeleteSnapshotFunc func(ctx context.Context, cid string) error

	mu               sync.Mutex
	DeletedVMs       []string
	DeletedDisks     []string
	DeletedSnapshots []string
}

var _ Client = (*MockClient)(nil)

// DeleteVM records the call and delegates to DeleteVMFunc if set.
func (m *MockClient) DeleteVM(ctx context.Context, cid string) error {
	m.mu.Lock()
	m.DeletedVMs = append(m.DeletedVMs, cid)
	m.mu.Unlock()
	if m.DeleteVMFunc != nil {
		return m.DeleteVMFunc(ctx, cid)
	}
	return nil
}

// DeleteDisk records the call and delegates to DeleteDiskFunc if set.
func (m *MockClient) DeleteDisk(ctx context.Context, cid string) error {
	m.mu.Lock()
	m.DeletedDisks = append(m.DeletedDisks, cid)
	m.mu.Unlock()
	if m.DeleteDiskFunc != nil {
		return m.DeleteDiskFunc(ctx, cid)
	}
	return nil
}

// DeleteSnapshot records the call and delegates to DeleteSnapshotFunc if set.
func (m *MockClient) DeleteSnapshot(ctx context.Context, cid string) error {
	m.mu.Lock()
	m.DeletedSnapshots = append(m.DeletedSnapshots, cid)
	m.mu.Unlock()
	if m.DeleteSnapshotFunc != nil {
		return m.DeleteSnapshotFunc(ctx, cid)
	}
	return nil
}

// NotFoundError returns an error that IsNotFound classifies as a cloud
// not-found, for use in tests.
func NotFoundError() error {
	return hcloud.Error{Code: hcloud.ErrorCodeNotFound, Message: "resource not found"}
}
