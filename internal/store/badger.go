package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"
)

// Key prefixes. Record keys are <prefix><id>.
const (
	prefixInstance = "instance:"
	prefixVM       = "vm:"
	prefixDisk     = "disk:"
	prefixSnapshot = "snapshot:"
	prefixDNS      = "dns:"
)

// BadgerStore implements Store on an embedded Badger database.
type BadgerStore struct {
	db *badger.DB
}

// Open opens (or creates) the database at path.
func Open(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(filepath.Clean(path))
	opts.Logger = nil // badger's own logging is too chatty for CLI use
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open store at %s: %w", path, err)
	}
	return &BadgerStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) put(key string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (s *BadgerStore) get(key string, record any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return item.Value(func(v []byte) error {
			return json.Unmarshal(v, record)
		})
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	return err
}

func (s *BadgerStore) delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// scan visits the value of every key under prefix.
func (s *BadgerStore) scan(prefix string, visit func(val []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := it.Item().Value(visit); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveInstance stores an instance record.
func (s *BadgerStore) SaveInstance(_ context.Context, inst *Instance) error {
	return s.put(prefixInstance+inst.UUID, inst)
}

// FindInstance returns the instance with the given UUID, or ErrNotFound.
func (s *BadgerStore) FindInstance(_ context.Context, uuid string) (*Instance, error) {
	var inst Instance
	if err := s.get(prefixInstance+uuid, &inst); err != nil {
		return nil, err
	}
	return &inst, nil
}

// DeleteInstance removes the instance record.
func (s *BadgerStore) DeleteInstance(_ context.Context, uuid string) error {
	return s.delete(prefixInstance + uuid)
}

// ListInstances returns every instance record.
func (s *BadgerStore) ListInstances(_ context.Context) ([]*Instance, error) {
	var out []*Instance
	err := s.scan(prefixInstance, func(val []byte) error {
		var inst Instance
		if err := json.Unmarshal(val, &inst); err != nil {
			return err
		}
		out = append(out, &inst)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	return out, nil
}

// SaveVM stores a VM record.
func (s *BadgerStore) SaveVM(_ context.Context, vm *VM) error {
	return s.put(prefixVM+vm.CID, vm)
}

// FindVM returns the VM with the given cloud ID, or ErrNotFound.
func (s *BadgerStore) FindVM(_ context.Context, cid string) (*VM, error) {
	var vm VM
	if err := s.get(prefixVM+cid, &vm); err != nil {
		return nil, err
	}
	return &vm, nil
}

// DeleteVM removes the VM record.
func (s *BadgerStore) DeleteVM(_ context.Context, cid string) error {
	return s.delete(prefixVM + cid)
}

// SaveDisk stores a persistent disk record.
func (s *BadgerStore) SaveDisk(_ context.Context, disk *PersistentDisk) error {
	return s.put(prefixDisk+disk.CID, disk)
}

// DisksForInstance returns all disks owned by the given instance.
func (s *BadgerStore) DisksForInstance(_ context.Context, instanceUUID string) ([]*PersistentDisk, error) {
	disks, err := s.allDisks()
	if err != nil {
		return nil, err
	}
	var out []*PersistentDisk
	for _, d := range disks {
		if d.InstanceUUID == instanceUUID {
			out = append(out, d)
		}
	}
	return out, nil
}

// DeleteDisk removes the disk record.
func (s *BadgerStore) DeleteDisk(_ context.Context, cid string) error {
	return s.delete(prefixDisk + cid)
}

// OrphanedDisks returns disks whose owning instance record is gone.
func (s *BadgerStore) OrphanedDisks(ctx context.Context) ([]*PersistentDisk, error) {
	disks, err := s.allDisks()
	if err != nil {
		return nil, err
	}
	var out []*PersistentDisk
	for _, d := range disks {
		_, err := s.FindInstance(ctx, d.InstanceUUID)
		if errors.Is(err, ErrNotFound) {
			out = append(out, d)
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *BadgerStore) allDisks() ([]*PersistentDisk, error) {
	var out []*PersistentDisk
	err := s.scan(prefixDisk, func(val []byte) error {
		var d PersistentDisk
		if err := json.Unmarshal(val, &d); err != nil {
			return err
		}
		out = append(out, &d)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list disks: %w", err)
	}
	return out, nil
}

// SaveSnapshot stores a snapshot record.
func (s *BadgerStore) SaveSnapshot(_ context.Context, snap *Snapshot) error {
	return s.put(prefixSnapshot+snap.CID, snap)
}

// SnapshotsForDisk returns all snapshot records referencing the given disk.
func (s *BadgerStore) SnapshotsForDisk(_ context.Context, diskCID string) ([]*Snapshot, error) {
	var out []*Snapshot
	err := s.scan(prefixSnapshot, func(val []byte) error {
		var snap Snapshot
		if err := json.Unmarshal(val, &snap); err != nil {
			return err
		}
		if snap.DiskCID == diskCID {
			out = append(out, &snap)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return out, nil
}

// DeleteSnapshot removes the snapshot record.
func (s *BadgerStore) DeleteSnapshot(_ context.Context, cid string) error {
	return s.delete(prefixSnapshot + cid)
}

// SaveDNSRecord stores a DNS record.
func (s *BadgerStore) SaveDNSRecord(_ context.Context, rec *DNSRecord) error {
	return s.put(prefixDNS+rec.Name, rec)
}

// DNSRecordsForInstance returns all DNS records pointing at the instance.
func (s *BadgerStore) DNSRecordsForInstance(_ context.Context, instanceUUID string) ([]*DNSRecord, error) {
	var out []*DNSRecord
	err := s.scan(prefixDNS, func(val []byte) error {
		var rec DNSRecord
		if err := json.Unmarshal(val, &rec); err != nil {
			return err
		}
		if rec.InstanceUUID == instanceUUID {
			out = append(out, &rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list dns records: %w", err)
	}
	return out, nil
}

// DeleteDNSRecord removes the DNS record with the given name.
func (s *BadgerStore) DeleteDNSRecord(_ context.Context, name string) error {
	return s.delete(prefixDNS + name)
}
