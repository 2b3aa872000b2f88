package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"storedesk/internal/domain"
	"storedesk/internal/record"
)

// KindTicket is the remote record kind holding tickets.
const KindTicket = "Ticket"

func decodeTicket(r record.Record) (*domain.Ticket, bool) {
	title, ok := r.String("title")
	if !ok || title == "" {
		return nil, false
	}
	rawStatus, ok := r.String("status")
	if !ok {
		return nil, false
	}
	status, ok := domain.ParseStatus(rawStatus)
	if !ok {
		return nil, false
	}
	storeCode, ok := r.String("storeCode")
	if !ok || storeCode == "" {
		return nil, false
	}
	createdBy, ok := r.String("createdBy")
	if !ok || createdBy == "" {
		return nil, false
	}
	createdAt, ok := r.Time("createdAt")
	if !ok {
		return nil, false
	}

	return &domain.Ticket{
		ID:              r.ID,
		Title:           title,
		Description:     optionalString(r, "description"),
		Status:          status,
		StoreCode:       storeCode,
		Department:      optionalString(r, "department"),
		CreatedBy:       createdBy,
		AssignedTo:      optionalString(r, "assignedTo"),
		Confidentiality: optionalStringList(r, "confidentiality"),
		CreatedAt:       createdAt,
	}, true
}

func encodeTicket(t *domain.Ticket) record.Record {
	r := record.New(KindTicket, t.ID)
	r.Set("title", t.Title)
	setOptionalString(r, "description", t.Description)
	r.Set("status", string(t.Status))
	r.Set("storeCode", t.StoreCode)
	setOptionalString(r, "department", t.Department)
	r.Set("createdBy", t.CreatedBy)
	// Unassigning writes an explicit null so the remote field is cleared.
	setOptionalString(r, "assignedTo", t.AssignedTo)
	setStringList(r, "confidentiality", t.Confidentiality)
	r.SetTime("createdAt", t.CreatedAt)
	return r
}

// RecordTicketRepo implements TicketRepo over a record store.
type RecordTicketRepo struct {
	store record.Store
}

// NewRecordTicketRepo creates a new RecordTicketRepo.
func NewRecordTicketRepo(store record.Store) *RecordTicketRepo {
	return &RecordTicketRepo{store: store}
}

func (r *RecordTicketRepo) FetchByStore(ctx context.Context, storeCode string) ([]*domain.Ticket, error) {
	return r.fetch(ctx, record.Equals("storeCode", storeCode))
}

func (r *RecordTicketRepo) FetchByCreator(ctx context.Context, userRef string) ([]*domain.Ticket, error) {
	return r.fetch(ctx, record.Equals("createdBy", userRef))
}

func (r *RecordTicketRepo) fetch(ctx context.Context, p record.Predicate) ([]*domain.Ticket, error) {
	recs, err := r.store.Query(ctx, KindTicket, p)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching tickets: %w", ErrRemoteQuery, err)
	}
	out := make([]*domain.Ticket, 0, len(recs))
	for _, rec := range recs {
		if t, ok := decodeTicket(rec); ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *RecordTicketRepo) Save(ctx context.Context, t *domain.Ticket) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if _, err := r.store.Save(ctx, encodeTicket(t)); err != nil {
		return fmt.Errorf("%w: saving ticket %s: %w", ErrRemoteWrite, t.ID, err)
	}
	return nil
}

func (r *RecordTicketRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, KindTicket, id); err != nil {
		return fmt.Errorf("%w: deleting ticket %s: %w", ErrRemoteWrite, id, err)
	}
	return nil
}
