package s3

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "fsn1", "key", "secret", "artifacts")
	require.NoError(t, err)
	return client
}

func listResponse(keys ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">`)
	b.WriteString(`<Name>artifacts</Name><IsTruncated>false</IsTruncated>`)
	fmt.Fprintf(&b, `<KeyCount>%d</KeyCount>`, len(keys))
	for _, k := range keys {
		fmt.Fprintf(&b, `<Contents><Key>%s</Key></Contents>`, k)
	}
	b.WriteString(`</ListBucketResult>`)
	return b.String()
}

func TestDeleteAll_RemovesEveryObject(t *testing.T) {
	var mu sync.Mutex
	var deleted []string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/xml")
			fmt.Fprint(w, listResponse("rendered/web/uuid-1/a.yml", "rendered/web/uuid-1/b.yml"))
		case http.MethodDelete:
			mu.Lock()
			deleted = append(deleted, r.URL.Path)
			mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	client := testClient(t, handler)
	err := client.DeleteAll(t.Context(), "rendered/web/uuid-1/")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"/artifacts/rendered/web/uuid-1/a.yml",
		"/artifacts/rendered/web/uuid-1/b.yml",
	}, deleted)
}

func TestDeleteAll_EmptyPrefix(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, listResponse())
	})

	client := testClient(t, handler)
	assert.NoError(t, client.DeleteAll(t.Context(), "rendered/web/uuid-1/"))
}

func TestDeleteAll_ListFails(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `<?xml version="1.0"?><Error><Code>InvalidArgument</Code><Message>bad request</Message></Error>`)
	})

	client := testClient(t, handler)
	err := client.DeleteAll(t.Context(), "rendered/web/uuid-1/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list objects")
}

func TestDeleteAll_ReportsFailedDeletes(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/xml")
			fmt.Fprint(w, listResponse("rendered/web/uuid-1/a.yml", "rendered/web/uuid-1/b.yml"))
		case http.MethodDelete:
			if strings.HasSuffix(r.URL.Path, "a.yml") {
				w.Header().Set("Content-Type", "application/xml")
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `<?xml version="1.0"?><Error><Code>NoSuchKey</Code><Message>gone</Message></Error>`)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		}
	})

	client := testClient(t, handler)
	err := client.DeleteAll(t.Context(), "rendered/web/uuid-1/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 objects")
}
