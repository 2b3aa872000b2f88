package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"storedesk/internal/domain"
	"storedesk/internal/record"
)

// KindClient is the remote record kind holding client-book entries.
const KindClient = "Client"

func decodeClient(r record.Record) (*domain.Client, bool) {
	guestName, ok := r.String("guestName")
	if !ok || guestName == "" {
		return nil, false
	}
	accountNumber, ok := r.String("accountNumber")
	if !ok || accountNumber == "" {
		return nil, false
	}
	preferredStore, ok := r.String("preferredStore")
	if !ok || preferredStore == "" {
		return nil, false
	}

	return &domain.Client{
		ID:              r.ID,
		GuestName:       guestName,
		PartnerName:     optionalString(r, "partnerName"),
		AccountNumber:   accountNumber,
		PreferredStore:  preferredStore,
		LastInteraction: optionalTime(r, "lastInteraction"),
		FollowUp:        optionalTime(r, "followUp"),
	}, true
}

func encodeClient(c *domain.Client) record.Record {
	r := record.New(KindClient, c.ID)
	r.Set("guestName", c.GuestName)
	setOptionalString(r, "partnerName", c.PartnerName)
	r.Set("accountNumber", c.AccountNumber)
	r.Set("preferredStore", c.PreferredStore)
	setOptionalTime(r, "lastInteraction", c.LastInteraction)
	setOptionalTime(r, "followUp", c.FollowUp)
	return r
}

// RecordClientRepo implements ClientRepo over a record store.
type RecordClientRepo struct {
	store record.Store
}

// NewRecordClientRepo creates a new RecordClientRepo.
func NewRecordClientRepo(store record.Store) *RecordClientRepo {
	return &RecordClientRepo{store: store}
}

func (r *RecordClientRepo) FetchByStore(ctx context.Context, storeCode string) ([]*domain.Client, error) {
	recs, err := r.store.Query(ctx, KindClient, record.Equals("preferredStore", storeCode))
	if err != nil {
		return nil, fmt.Errorf("%w: fetching clients: %w", ErrRemoteQuery, err)
	}
	out := make([]*domain.Client, 0, len(recs))
	for _, rec := range recs {
		if c, ok := decodeClient(rec); ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *RecordClientRepo) Save(ctx context.Context, c *domain.Client) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if _, err := r.store.Save(ctx, encodeClient(c)); err != nil {
		return fmt.Errorf("%w: saving client %s: %w", ErrRemoteWrite, c.ID, err)
	}
	return nil
}

func (r *RecordClientRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, KindClient, id); err != nil {
		return fmt.Errorf("%w: deleting client %s: %w", ErrRemoteWrite, id, err)
	}
	return nil
}
