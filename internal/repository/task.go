package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"storedesk/internal/domain"
	"storedesk/internal/record"
)

// KindTask is the remote record kind holding tasks.
const KindTask = "Task"

// decodeTask maps a remote record onto a Task. It fails soft (nil, false)
// when a required field is missing, empty, or the wrong shape; optional
// fields fall back to their zero values.
func decodeTask(r record.Record) (*domain.Task, bool) {
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
	createdBy, ok := r.String("createdBy")
	if !ok || createdBy == "" {
		return nil, false
	}
	createdAt, ok := r.Time("createdAt")
	if !ok {
		return nil, false
	}

	return &domain.Task{
		ID:             r.ID,
		Title:          title,
		Detail:         optionalString(r, "detail"),
		Status:         status,
		DueDate:        optionalTime(r, "dueDate"),
		IsGroupTask:    optionalBool(r, "isGroupTask"),
		AssignedTo:     optionalStringList(r, "assignedTo"),
		CompletedBy:    optionalStringList(r, "completedBy"),
		AcknowledgedBy: optionalStringList(r, "acknowledgedBy"),
		Stores:         optionalStringList(r, "stores"),
		Departments:    optionalStringList(r, "departments"),
		CreatedBy:      createdBy,
		CreatedAt:      createdAt,
		RequiresAck:    optionalBool(r, "requiresAck"),
	}, true
}

// encodeTask maps a Task onto its remote record form. Total: every schema
// key is always written, with absent optionals as explicit nulls.
func encodeTask(t *domain.Task) record.Record {
	r := record.New(KindTask, t.ID)
	r.Set("title", t.Title)
	setOptionalString(r, "detail", t.Detail)
	r.Set("status", string(t.Status))
	setOptionalTime(r, "dueDate", t.DueDate)
	r.Set("isGroupTask", t.IsGroupTask)
	setStringList(r, "assignedTo", t.AssignedTo)
	setStringList(r, "completedBy", t.CompletedBy)
	setStringList(r, "acknowledgedBy", t.AcknowledgedBy)
	setStringList(r, "stores", t.Stores)
	setStringList(r, "departments", t.Departments)
	r.Set("createdBy", t.CreatedBy)
	r.SetTime("createdAt", t.CreatedAt)
	r.Set("requiresAck", t.RequiresAck)
	return r
}

// RecordTaskRepo implements TaskRepo over a record store.
type RecordTaskRepo struct {
	store record.Store
}

// NewRecordTaskRepo creates a new RecordTaskRepo.
func NewRecordTaskRepo(store record.Store) *RecordTaskRepo {
	return &RecordTaskRepo{store: store}
}

func (r *RecordTaskRepo) FetchByStore(ctx context.Context, storeCode string) ([]*domain.Task, error) {
	return r.fetch(ctx, record.Contains("stores", storeCode))
}

func (r *RecordTaskRepo) FetchByAssignee(ctx context.Context, userRef string) ([]*domain.Task, error) {
	return r.fetch(ctx, record.Contains("assignedTo", userRef))
}

func (r *RecordTaskRepo) fetch(ctx context.Context, p record.Predicate) ([]*domain.Task, error) {
	recs, err := r.store.Query(ctx, KindTask, p)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching tasks: %w", ErrRemoteQuery, err)
	}
	out := make([]*domain.Task, 0, len(recs))
	for _, rec := range recs {
		// Malformed records are dropped; one bad record never aborts the fetch.
		if t, ok := decodeTask(rec); ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *RecordTaskRepo) Save(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if _, err := r.store.Save(ctx, encodeTask(t)); err != nil {
		return fmt.Errorf("%w: saving task %s: %w", ErrRemoteWrite, t.ID, err)
	}
	return nil
}

func (r *RecordTaskRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, KindTask, id); err != nil {
		return fmt.Errorf("%w: deleting task %s: %w", ErrRemoteWrite, id, err)
	}
	return nil
}
