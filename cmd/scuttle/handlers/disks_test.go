package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfeldt/scuttle/internal/platform/hcloud"
	"github.com/mfeldt/scuttle/internal/store"
)

func TestDisksSweepsOrphans(t *testing.T) {
	cloud := &hcloud.MockClient{}
	swapFactories(t, cloud, &blobstoreMock{}, func(ctx context.Context, st store.Store) {
		inst := seedInstance(ctx, t, st, "41", "web", 0)
		require.NoError(t, st.SaveDisk(ctx, &store.PersistentDisk{CID: "100", InstanceUUID: inst.UUID, SizeGB: 10}))
		// Disk whose instance record is gone.
		require.NoError(t, st.SaveDisk(ctx, &store.PersistentDisk{CID: "200", InstanceUUID: "gone", SizeGB: 10}))
	})

	err := Disks(t.Context(), "scuttle.yaml", DisksOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"200"}, cloud.DeletedDisks)

	st, err := store.Open(storePath(t))
	require.NoError(t, err)
	defer st.Close()
	attached, err := st.DisksForInstance(t.Context(), "41")
	require.NoError(t, err)
	assert.Len(t, attached, 1, "attached disk must survive the sweep")
}

func TestDisksNothingToSweep(t *testing.T) {
	cloud := &hcloud.MockClient{}
	swapFactories(t, cloud, &blobstoreMock{}, func(ctx context.Context, st store.Store) {
		inst := seedInstance(ctx, t, st, "51", "web", 0)
		require.NoError(t, st.SaveDisk(ctx, &store.PersistentDisk{CID: "300", InstanceUUID: inst.UUID, SizeGB: 10}))
	})

	err := Disks(t.Context(), "scuttle.yaml", DisksOptions{})
	require.NoError(t, err)
	assert.Empty(t, cloud.DeletedDisks)
}
