package dns

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfeldt/scuttle/internal/store"
)

func TestDeleteRecords(t *testing.T) {
	s, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	inst := &store.Instance{UUID: "uuid-1", Job: "web", Index: 0}
	require.NoError(t, s.SaveDNSRecord(ctx, &store.DNSRecord{Name: "0.web.default.prod.internal", IP: "10.0.1.5", InstanceUUID: "uuid-1"}))
	require.NoError(t, s.SaveDNSRecord(ctx, &store.DNSRecord{Name: "1.web.default.prod.internal", IP: "10.0.1.6", InstanceUUID: "uuid-2"}))

	require.NoError(t, NewRepo(s).DeleteRecords(ctx, inst))

	// Only the target instance's records go away.
	recs, err := s.DNSRecordsForInstance(ctx, "uuid-1")
	require.NoError(t, err)
	assert.Empty(t, recs)

	recs, err = s.DNSRecordsForInstance(ctx, "uuid-2")
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestDeleteRecordsNoRecords(t *testing.T) {
	s, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	inst := &store.Instance{UUID: "uuid-1", Job: "web"}
	assert.NoError(t, NewRepo(s).DeleteRecords(context.Background(), inst))
}
