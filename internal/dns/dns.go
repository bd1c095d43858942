// Package dns manages the deployment manager's own DNS records for
// instances.
package dns

import (
	"context"
	"fmt"
	"log"

	"github.com/mfeldt/scuttle/internal/store"
)

// Repo removes DNS records from the record store.
type Repo struct {
	store store.Store
}

// NewRepo creates a repo over the given record store.
func NewRepo(s store.Store) *Repo {
	return &Repo{store: s}
}

// DeleteRecords removes every DNS record pointing at the instance.
func (r *Repo) DeleteRecords(ctx context.Context, inst *store.Instance) error {
	records, err := r.store.DNSRecordsForInstance(ctx, inst.UUID)
	if err != nil {
		return fmt.Errorf("failed to look up dns records for %s: %w", inst.Name(), err)
	}

	for _, rec := range records {
		log.Printf("[DNS] Removing record %s -> %s", rec.Name, rec.IP)
		if err := r.store.DeleteDNSRecord(ctx, rec.Name); err != nil {
			return fmt.Errorf("failed to delete dns record %s: %w", rec.Name, err)
		}
	}
	return nil
}
