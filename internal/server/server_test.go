package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storedesk/internal/record"
)

func newTestServer(t *testing.T) (*httptest.Server, *record.MemoryStore) {
	t.Helper()
	store := record.NewMemoryStore()
	log := logrus.New()
	log.SetOutput(io.Discard)

	srv := httptest.NewServer(New(store, log).Router())
	t.Cleanup(srv.Close)
	return srv, store
}

// The HTTP store driver and the server speak the same wire protocol; this
// exercises both ends of it.
func TestServer_RoundTripWithHTTPStore(t *testing.T) {
	srv, _ := newTestServer(t)
	client := record.NewHTTPStore(srv.URL, "")
	ctx := context.Background()

	r := record.New("Task", "id-1")
	r.Set("title", "Count stock")
	r.Set("stores", []string{"S1"})
	r.Clear("dueDate")

	saved, err := client.Save(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, "id-1", saved.ID)

	recs, err := client.Query(ctx, "Task", record.Contains("stores", "S1"))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	title, _ := recs[0].String("title")
	assert.Equal(t, "Count stock", title)

	// The explicit null survives both directions.
	v, present := recs[0].Fields["dueDate"]
	assert.True(t, present)
	assert.Nil(t, v)

	require.NoError(t, client.Delete(ctx, "Task", "id-1"))
	err = client.Delete(ctx, "Task", "id-1")
	assert.ErrorIs(t, err, record.ErrNotFound)
}

func TestServer_KindComesFromURL(t *testing.T) {
	srv, store := newTestServer(t)
	client := record.NewHTTPStore(srv.URL, "")
	ctx := context.Background()

	r := record.New("Ticket", "id-1")
	r.Set("title", "Broken till")
	_, err := client.Save(ctx, r)
	require.NoError(t, err)

	assert.Equal(t, 1, store.Len("Ticket"))
	assert.Equal(t, 0, store.Len("Task"))
}

func TestServer_RejectsInvalidBodies(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/records/Task/query", "application/json",
		nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/records/Task", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_SaveWithoutIDIsRejected(t *testing.T) {
	srv, _ := newTestServer(t)
	client := record.NewHTTPStore(srv.URL, "")

	// The driver refuses before the wire; hit the endpoint directly.
	resp, err := http.Post(srv.URL+"/records/Task", "application/json",
		httpBody(`{"fields":{"title":"no id"}}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, err = client.Save(context.Background(), record.Record{Kind: "Task"})
	assert.ErrorIs(t, err, record.ErrRejected)
}

func httpBody(s string) io.Reader {
	return strings.NewReader(s)
}
