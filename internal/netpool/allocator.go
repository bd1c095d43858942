// Package netpool manages IP reservations for deployment networks.
//
// The allocator owns the pool; instances only borrow from it. Releasing a
// reservation returns the IP for reuse, it never destroys anything.
package netpool

import (
	"fmt"
	"sync"

	"github.com/mfeldt/scuttle/internal/store"
)

// Allocator hands out and reclaims IP reservations. It is safe for
// concurrent use; all state is guarded by a single mutex.
type Allocator struct {
	mu       sync.Mutex
	reserved map[string]bool
}

// NewAllocator creates an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{reserved: make(map[string]bool)}
}

func key(res store.Reservation) string {
	return res.Network + "/" + res.IP
}

// Reserve claims an IP on a network. Claiming an already-reserved IP is an
// error: two instances must never hold the same address.
func (a *Allocator) Reserve(res store.Reservation) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	k := key(res)
	if a.reserved[k] {
		return fmt.Errorf("ip %s already reserved on network %s", res.IP, res.Network)
	}
	a.reserved[k] = true
	return nil
}

// Release returns a reservation to the pool. Releasing a reservation that is
// not held is an error; a reservation is released exactly once.
func (a *Allocator) Release(res store.Reservation) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	k := key(res)
	if !a.reserved[k] {
		return fmt.Errorf("ip %s not reserved on network %s", res.IP, res.Network)
	}
	delete(a.reserved, k)
	return nil
}

// Reserved reports whether the reservation is currently held.
func (a *Allocator) Reserved(res store.Reservation) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reserved[key(res)]
}
