// Package handlers implements command execution logic.
//
// Handlers load configuration, assemble the teardown collaborators, and
// drive the deletion package. Construction goes through factory function
// variables so tests can substitute mocks without touching real cloud or
// message-bus endpoints.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/nats-io/nats.go"

	"github.com/mfeldt/scuttle/internal/artifacts"
	"github.com/mfeldt/scuttle/internal/config"
	"github.com/mfeldt/scuttle/internal/deletion"
	"github.com/mfeldt/scuttle/internal/dns"
	"github.com/mfeldt/scuttle/internal/drain"
	"github.com/mfeldt/scuttle/internal/netpool"
	"github.com/mfeldt/scuttle/internal/platform/hcloud"
	"github.com/mfeldt/scuttle/internal/platform/s3"
	"github.com/mfeldt/scuttle/internal/store"
)

// Factory function variables - can be replaced in tests.
var (
	// loadConfigFile loads and validates the deployment configuration.
	loadConfigFile = config.LoadFile

	// loadTimeouts reads timeout tuning from the environment.
	loadTimeouts = config.LoadTimeouts

	// openStore opens the embedded record database.
	openStore = func(path string) (store.Store, error) {
		return store.Open(path)
	}

	// newCloudClient creates the cloud API client from HCLOUD_TOKEN.
	newCloudClient = func(timeouts *config.Timeouts) (hcloud.Client, error) {
		token := os.Getenv("HCLOUD_TOKEN")
		if token == "" {
			return nil, errors.New("HCLOUD_TOKEN environment variable must be set")
		}
		return hcloud.NewRealClient(token, hcloud.Timeouts{
			Delete:            timeouts.Delete,
			RetryMaxAttempts:  timeouts.RetryMaxAttempts,
			RetryInitialDelay: timeouts.RetryInitialDelay,
		}), nil
	}

	// newStopperFactory connects to the message bus for drain negotiation.
	// The returned func closes the connection.
	newStopperFactory = func(cfg *config.Config, timeouts *config.Timeouts) (deletion.StopperFactory, func(), error) {
		nc, err := nats.Connect(cfg.NATS.URL, nats.Name("scuttle"))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.NATS.URL, err)
		}
		return drain.NewNATSStopperFactory(nc, timeouts.Drain), nc.Close, nil
	}

	// newBlobstore creates the artifact blobstore client. Credentials come
	// from SCUTTLE_BLOBSTORE_ACCESS_KEY / SCUTTLE_BLOBSTORE_SECRET_KEY.
	newBlobstore = func(cfg *config.Config) (artifacts.Blobstore, error) {
		return s3.NewClient(
			cfg.Blobstore.Endpoint,
			cfg.Blobstore.Region,
			os.Getenv("SCUTTLE_BLOBSTORE_ACCESS_KEY"),
			os.Getenv("SCUTTLE_BLOBSTORE_SECRET_KEY"),
			cfg.Blobstore.Bucket,
		)
	}
)

// env bundles the collaborators a handler drives. close releases every
// connection the env opened, in reverse order.
type env struct {
	cfg     *config.Config
	store   store.Store
	deleter *deletion.Deleter
	close   func()
}

// policyOverrides carries flag-level overrides applied on top of the
// configured deletion policies.
type policyOverrides struct {
	Force         bool
	HardStop      bool
	KeepSnapshots bool
}

// buildEnv assembles the full teardown environment: record store, cloud
// client, message bus, blobstore, DNS repository, and IP allocator seeded
// from the reservations still on record.
func buildEnv(ctx context.Context, configPath string, overrides policyOverrides) (*env, error) {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, err
	}
	timeouts := loadTimeouts()

	st, err := openStore(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	cloud, err := newCloudClient(timeouts)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	stoppers, closeBus, err := newStopperFactory(cfg, timeouts)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	blobs, err := newBlobstore(cfg)
	if err != nil {
		closeBus()
		_ = st.Close()
		return nil, err
	}

	ips, err := seedAllocator(ctx, st)
	if err != nil {
		closeBus()
		_ = st.Close()
		return nil, err
	}

	deleter := deletion.NewDeleter(deletion.Collaborators{
		Cloud:    cloud,
		Store:    st,
		DNS:      dns.NewRepo(st),
		IPs:      ips,
		Decider:  drain.NewDecider(drain.SkipPolicy(cfg.Deletion.SkipDrain)),
		Stoppers: stoppers,
		Blobs:    blobs,
	}, deletion.Config{
		Force:                cfg.Deletion.Force || overrides.Force,
		HardStop:             cfg.Deletion.HardStop || overrides.HardStop,
		KeepSnapshotsInCloud: cfg.Deletion.KeepSnapshotsInCloud || overrides.KeepSnapshots,
		MaxWorkers:           cfg.Workers.Max,
	})

	return &env{
		cfg:     cfg,
		store:   st,
		deleter: deleter,
		close: func() {
			closeBus()
			_ = st.Close()
		},
	}, nil
}

// buildSweepEnv assembles the reduced environment used by the disk and
// snapshot commands, which never drain agents or touch the blobstore.
func buildSweepEnv(configPath string, overrides policyOverrides) (*env, error) {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, err
	}
	timeouts := loadTimeouts()

	st, err := openStore(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	cloud, err := newCloudClient(timeouts)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	deleter := deletion.NewDeleter(deletion.Collaborators{
		Cloud: cloud,
		Store: st,
	}, deletion.Config{
		Force:                cfg.Deletion.Force || overrides.Force,
		KeepSnapshotsInCloud: cfg.Deletion.KeepSnapshotsInCloud || overrides.KeepSnapshots,
		MaxWorkers:           cfg.Workers.Max,
	})

	return &env{
		cfg:     cfg,
		store:   st,
		deleter: deleter,
		close:   func() { _ = st.Close() },
	}, nil
}

// seedAllocator rebuilds the in-process IP pool from the reservations held
// by instances still on record.
func seedAllocator(ctx context.Context, st store.Store) (*netpool.Allocator, error) {
	alloc := netpool.NewAllocator()
	instances, err := st.ListInstances(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	for _, inst := range instances {
		for _, res := range inst.Reservations {
			if err := alloc.Reserve(res); err != nil {
				return nil, fmt.Errorf("conflicting reservation on record for %s: %w", inst.Name(), err)
			}
		}
	}
	return alloc, nil
}
