package record

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStore_Query(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody queryRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		resp := queryResponse{Records: []Record{
			{ID: "id-1", Fields: map[string]any{"title": "Count stock"}},
		}}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL, "secret")
	recs, err := store.Query(context.Background(), "Task", Contains("stores", "S1"))
	require.NoError(t, err)

	assert.Equal(t, "/records/Task/query", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "stores", gotBody.Predicate.Field)
	assert.Equal(t, OpContains, gotBody.Predicate.Op)

	require.Len(t, recs, 1)
	assert.Equal(t, "Task", recs[0].Kind, "kind comes from the query context")
	title, _ := recs[0].String("title")
	assert.Equal(t, "Count stock", title)
}

func TestHTTPStore_QueryEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"records":null}`))
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL, "")
	recs, err := store.Query(context.Background(), "Task", Equals("storeCode", "S1"))
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestHTTPStore_Save(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/records/Ticket", r.URL.Path)

		var rec Record
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rec))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rec)
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL, "")
	r := New("Ticket", "id-1")
	r.Set("title", "Broken till")
	r.Clear("assignedTo")

	saved, err := store.Save(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "id-1", saved.ID)

	// The explicit null survives the wire round trip as a present nil key.
	v, present := saved.Fields["assignedTo"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestHTTPStore_Delete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/records/Task/id-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL, "")
	assert.NoError(t, store.Delete(context.Background(), "Task", "id-1"))
}

func TestHTTPStore_ErrorMapping(t *testing.T) {
	status := http.StatusNotFound
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", status)
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL, "")
	ctx := context.Background()

	err := store.Delete(ctx, "Task", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	status = http.StatusBadRequest
	_, err = store.Save(ctx, New("Task", "id-1"))
	assert.ErrorIs(t, err, ErrRejected)

	status = http.StatusInternalServerError
	_, err = store.Query(ctx, "Task", Equals("storeCode", "S1"))
	assert.ErrorIs(t, err, ErrRejected)
}

func TestHTTPStore_Unreachable(t *testing.T) {
	// A closed server refuses connections immediately.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	store := NewHTTPStore(srv.URL, "")
	_, err := store.Query(context.Background(), "Task", Equals("storeCode", "S1"))
	assert.ErrorIs(t, err, ErrUnavailable)
}
