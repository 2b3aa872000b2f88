package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storedesk/internal/record"
	"storedesk/internal/testutil"
)

func TestTicketCodec_RoundTrip(t *testing.T) {
	ticket := testutil.NewTestTicket("Broken till",
		testutil.WithTicketStore("S2"),
		testutil.WithTicketAssignee("user-9"))
	ticket.Description = "Till 3 rejects card payments"
	ticket.Department = "front"
	ticket.Confidentiality = []string{"managers"}

	decoded, ok := decodeTicket(encodeTicket(ticket))
	require.True(t, ok)
	assert.Equal(t, ticket, decoded)
}

func TestTicketCodec_DecodeRejectsBrokenRecords(t *testing.T) {
	base := func() record.Record {
		return encodeTicket(testutil.NewTestTicket("Valid ticket"))
	}

	cases := map[string]func(record.Record){
		"missing storeCode": func(r record.Record) { delete(r.Fields, "storeCode") },
		"empty storeCode":   func(r record.Record) { r.Set("storeCode", "") },
		"unknown status":    func(r record.Record) { r.Set("status", "Escalated") },
		"empty title":       func(r record.Record) { r.Set("title", "") },
		"null createdBy":    func(r record.Record) { r.Clear("createdBy") },
	}

	for name, corrupt := range cases {
		t.Run(name, func(t *testing.T) {
			r := base()
			corrupt(r)
			_, ok := decodeTicket(r)
			assert.False(t, ok)
		})
	}
}

func TestTicketRepo_UnassignClearsRemoteField(t *testing.T) {
	store := record.NewMemoryStore()
	repo := NewRecordTicketRepo(store)
	ctx := context.Background()

	ticket := testutil.NewTestTicket("Assigned ticket",
		testutil.WithTicketAssignee("user-9"))
	require.NoError(t, repo.Save(ctx, ticket))

	ticket.AssignedTo = ""
	require.NoError(t, repo.Save(ctx, ticket))

	recs, err := store.Query(ctx, KindTicket, record.Equals("storeCode", "S1"))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	v, present := recs[0].Fields["assignedTo"]
	assert.True(t, present, "the key is written so the remote value is cleared")
	assert.Nil(t, v)

	tickets, err := repo.FetchByStore(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Empty(t, tickets[0].AssignedTo)
}

func TestTicketRepo_FetchByCreator(t *testing.T) {
	store := record.NewMemoryStore()
	repo := NewRecordTicketRepo(store)
	ctx := context.Background()

	mine := testutil.NewTestTicket("Mine")
	theirs := testutil.NewTestTicket("Theirs")
	theirs.CreatedBy = "user-2"

	require.NoError(t, repo.Save(ctx, mine))
	require.NoError(t, repo.Save(ctx, theirs))

	tickets, err := repo.FetchByCreator(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "Mine", tickets[0].Title)
}
