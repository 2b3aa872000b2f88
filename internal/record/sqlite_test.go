package record

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storedesk/internal/db"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewSQLiteStore(database)
}

func TestSQLiteStore_EqualsPushdown(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	r1 := New("Ticket", "a-1")
	r1.Set("storeCode", "S1")
	r2 := New("Ticket", "b-2")
	r2.Set("storeCode", "S2")

	for _, r := range []Record{r1, r2} {
		_, err := store.Save(ctx, r)
		require.NoError(t, err)
	}

	recs, err := store.Query(ctx, "Ticket", Equals("storeCode", "S1"))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "a-1", recs[0].ID)
	assert.Equal(t, "Ticket", recs[0].Kind)
}

func TestSQLiteStore_ContainsPushdown(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	r1 := New("Task", "a-1")
	r1.Set("stores", []string{"S1", "S3"})
	r2 := New("Task", "b-2")
	r2.Set("stores", []string{"S2"})
	r3 := New("Task", "c-3")
	r3.Clear("stores")

	for _, r := range []Record{r1, r2, r3} {
		_, err := store.Save(ctx, r)
		require.NoError(t, err)
	}

	recs, err := store.Query(ctx, "Task", Contains("stores", "S3"))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "a-1", recs[0].ID)
}

func TestSQLiteStore_BetweenPushdown(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	day := func(d string) time.Time {
		parsed, err := time.Parse("2006-01-02", d)
		require.NoError(t, err)
		return parsed.UTC()
	}

	for id, d := range map[string]string{
		"a-1": "2026-03-01",
		"b-2": "2026-03-15",
		"c-3": "2026-04-01",
	} {
		r := New("StoreReport", id)
		r.SetTime("date", day(d))
		_, err := store.Save(ctx, r)
		require.NoError(t, err)
	}

	recs, err := store.Query(ctx, "StoreReport", Between("date", day("2026-03-01"), day("2026-03-31")))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "a-1", recs[0].ID)
	assert.Equal(t, "b-2", recs[1].ID)
}

func TestSQLiteStore_KindsAreIsolated(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	// The same identity may exist under different kinds.
	task := New("Task", "id-1")
	task.Set("title", "task")
	ticket := New("Ticket", "id-1")
	ticket.Set("title", "ticket")

	for _, r := range []Record{task, ticket} {
		_, err := store.Save(ctx, r)
		require.NoError(t, err)
	}

	recs, err := store.Query(ctx, "Task", Equals("title", "task"))
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	require.NoError(t, store.Delete(ctx, "Task", "id-1"))

	recs, err = store.Query(ctx, "Ticket", Equals("title", "ticket"))
	require.NoError(t, err)
	assert.Len(t, recs, 1, "deleting one kind leaves the other")
}

func TestSQLiteStore_SaveUpsertsAndDeleteChecks(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	r := New("Client", "id-1")
	r.Set("guestName", "before")
	_, err := store.Save(ctx, r)
	require.NoError(t, err)

	r.Set("guestName", "after")
	_, err = store.Save(ctx, r)
	require.NoError(t, err)

	recs, err := store.Query(ctx, "Client", Equals("guestName", "after"))
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	err = store.Delete(ctx, "Client", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_NullFieldsSurvive(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	r := New("Ticket", "id-1")
	r.Set("title", "Broken till")
	r.Set("storeCode", "S1")
	r.Clear("assignedTo")
	_, err := store.Save(ctx, r)
	require.NoError(t, err)

	recs, err := store.Query(ctx, "Ticket", Equals("storeCode", "S1"))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	v, present := recs[0].Fields["assignedTo"]
	assert.True(t, present)
	assert.Nil(t, v)
}
