package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storedesk/internal/record"
	"storedesk/internal/testutil"
)

func TestClientCodec_RoundTrip(t *testing.T) {
	last := time.Date(2026, 8, 1, 14, 30, 0, 0, time.UTC)
	followUp := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	client := testutil.NewTestClient("Ada Brook")
	client.PartnerName = "Sam Brook"
	client.LastInteraction = &last
	client.FollowUp = &followUp

	decoded, ok := decodeClient(encodeClient(client))
	require.True(t, ok)
	assert.Equal(t, client, decoded)
}

func TestClientCodec_DecodeRejectsBrokenRecords(t *testing.T) {
	base := func() record.Record {
		return encodeClient(testutil.NewTestClient("Valid Guest"))
	}

	cases := map[string]func(record.Record){
		"missing guestName":    func(r record.Record) { delete(r.Fields, "guestName") },
		"empty accountNumber":  func(r record.Record) { r.Set("accountNumber", "") },
		"null preferredStore":  func(r record.Record) { r.Clear("preferredStore") },
		"numeric guestName":    func(r record.Record) { r.Set("guestName", 7) },
	}

	for name, corrupt := range cases {
		t.Run(name, func(t *testing.T) {
			r := base()
			corrupt(r)
			_, ok := decodeClient(r)
			assert.False(t, ok)
		})
	}
}

func TestClientRepo_FetchByStore(t *testing.T) {
	store := record.NewMemoryStore()
	repo := NewRecordClientRepo(store)
	ctx := context.Background()

	here := testutil.NewTestClient("Here Guest")
	elsewhere := testutil.NewTestClient("Elsewhere Guest")
	elsewhere.PreferredStore = "S2"

	require.NoError(t, repo.Save(ctx, here))
	require.NoError(t, repo.Save(ctx, elsewhere))

	clients, err := repo.FetchByStore(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Here Guest", clients[0].GuestName)

	require.NoError(t, repo.Delete(ctx, here.ID))
	clients, err = repo.FetchByStore(ctx, "S1")
	require.NoError(t, err)
	assert.Empty(t, clients)
}
