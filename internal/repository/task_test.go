package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storedesk/internal/domain"
	"storedesk/internal/record"
	"storedesk/internal/testutil"
)

func TestTaskCodec_RoundTrip(t *testing.T) {
	due := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	task := testutil.NewTestTask("Count stock",
		testutil.WithTaskStores("S1", "S2"),
		testutil.WithTaskAssignees("user-1", "user-2"),
		testutil.WithTaskDueDate(due),
		testutil.WithTaskStatus(domain.StatusInProgress),
	)
	task.Detail = "Full count before quarter close"
	task.IsGroupTask = true
	task.RequiresAck = true
	task.Departments = []string{"floor"}
	task.CompletedBy = []string{"user-1"}
	task.AcknowledgedBy = []string{"user-1", "user-2"}

	decoded, ok := decodeTask(encodeTask(task))
	require.True(t, ok)
	assert.Equal(t, task, decoded)
}

func TestTaskCodec_RoundTripMinimal(t *testing.T) {
	task := testutil.NewTestTask("Bare task")
	task.Stores = nil

	decoded, ok := decodeTask(encodeTask(task))
	require.True(t, ok)
	assert.Equal(t, task, decoded, "absent optionals come back as zero values")
	assert.Nil(t, decoded.DueDate)
	assert.Nil(t, decoded.AssignedTo)
}

func TestTaskCodec_EncodeWritesExplicitNulls(t *testing.T) {
	task := testutil.NewTestTask("Bare task")
	task.Stores = nil

	r := encodeTask(task)

	// Every schema key is present; absent optionals carry the null marker.
	for _, key := range []string{"detail", "dueDate", "assignedTo", "completedBy",
		"acknowledgedBy", "stores", "departments"} {
		v, present := r.Fields[key]
		assert.True(t, present, "key %s must be written", key)
		assert.Nil(t, v, "key %s must be the null marker", key)
	}
}

func TestTaskCodec_DecodeRejectsBrokenRecords(t *testing.T) {
	base := func() record.Record {
		return encodeTask(testutil.NewTestTask("Valid task"))
	}

	cases := map[string]func(record.Record){
		"missing title":     func(r record.Record) { delete(r.Fields, "title") },
		"empty title":       func(r record.Record) { r.Set("title", "") },
		"null title":        func(r record.Record) { r.Clear("title") },
		"unknown status":    func(r record.Record) { r.Set("status", "Paused") },
		"missing status":    func(r record.Record) { delete(r.Fields, "status") },
		"empty createdBy":   func(r record.Record) { r.Set("createdBy", "") },
		"bad createdAt":     func(r record.Record) { r.Set("createdAt", "yesterday") },
		"numeric title":     func(r record.Record) { r.Set("title", 42) },
		"missing createdAt": func(r record.Record) { delete(r.Fields, "createdAt") },
	}

	for name, corrupt := range cases {
		t.Run(name, func(t *testing.T) {
			r := base()
			corrupt(r)
			_, ok := decodeTask(r)
			assert.False(t, ok)
		})
	}
}

func TestTaskRepo_FetchScopes(t *testing.T) {
	store := record.NewMemoryStore()
	repo := NewRecordTaskRepo(store)
	ctx := context.Background()

	mine := testutil.NewTestTask("Mine",
		testutil.WithTaskStores("S1"),
		testutil.WithTaskAssignees("user-1"))
	other := testutil.NewTestTask("Other store",
		testutil.WithTaskStores("S2"),
		testutil.WithTaskAssignees("user-2"))
	shared := testutil.NewTestTask("Shared",
		testutil.WithTaskStores("S1", "S2"))

	for _, task := range []*domain.Task{mine, other, shared} {
		require.NoError(t, repo.Save(ctx, task))
	}

	byStore, err := repo.FetchByStore(ctx, "S1")
	require.NoError(t, err)
	assert.Len(t, byStore, 2, "list membership matches any listed store")

	byAssignee, err := repo.FetchByAssignee(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, byAssignee, 1)
	assert.Equal(t, "Mine", byAssignee[0].Title)
}

func TestTaskRepo_PartialDecode(t *testing.T) {
	store := record.NewMemoryStore()
	repo := NewRecordTaskRepo(store)
	ctx := context.Background()

	good := testutil.NewTestTask("Good task")
	require.NoError(t, repo.Save(ctx, good))

	// Inject a malformed record into the same scope.
	bad := record.New(KindTask, "bad-id")
	bad.Set("title", "No status")
	bad.Set("stores", []string{"S1"})
	bad.Set("createdBy", "user-1")
	bad.SetTime("createdAt", time.Now())
	_, err := store.Save(ctx, bad)
	require.NoError(t, err)

	tasks, err := repo.FetchByStore(ctx, "S1")
	require.NoError(t, err, "a malformed record never aborts the fetch")
	require.Len(t, tasks, 1)
	assert.Equal(t, "Good task", tasks[0].Title)
}

func TestTaskRepo_ErrorWrapping(t *testing.T) {
	flaky := testutil.NewFlakyStore(record.NewMemoryStore())
	repo := NewRecordTaskRepo(flaky)
	ctx := context.Background()

	flaky.QueryErr = record.ErrUnavailable
	_, err := repo.FetchByStore(ctx, "S1")
	assert.ErrorIs(t, err, ErrRemoteQuery)
	assert.ErrorIs(t, err, record.ErrUnavailable, "the driver cause stays inspectable")

	flaky.SaveErr = record.ErrRejected
	err = repo.Save(ctx, testutil.NewTestTask("Doomed"))
	assert.ErrorIs(t, err, ErrRemoteWrite)

	flaky.DeleteAllErr = record.ErrUnavailable
	err = repo.Delete(ctx, "some-id")
	assert.ErrorIs(t, err, ErrRemoteWrite)
	assert.False(t, errors.Is(err, ErrRemoteQuery))
}

func TestTaskRepo_SaveAssignsIdentity(t *testing.T) {
	store := record.NewMemoryStore()
	repo := NewRecordTaskRepo(store)
	ctx := context.Background()

	task := testutil.NewTestTask("Fresh")
	task.ID = ""
	require.NoError(t, repo.Save(ctx, task))
	assert.NotEmpty(t, task.ID, "save generates the identity for new tasks")

	tasks, err := repo.FetchByStore(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
}
