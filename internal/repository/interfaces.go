package repository

import (
	"context"
	"time"

	"storedesk/internal/domain"
)

// Repositories are the only components that construct remote queries and
// records. Every fetch is a fresh round trip: no repository caches results
// between calls, because callers rely on re-fetch-after-mutation to observe
// persisted state.

type TaskRepo interface {
	FetchByStore(ctx context.Context, storeCode string) ([]*domain.Task, error)
	FetchByAssignee(ctx context.Context, userRef string) ([]*domain.Task, error)
	Save(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type TicketRepo interface {
	FetchByStore(ctx context.Context, storeCode string) ([]*domain.Ticket, error)
	FetchByCreator(ctx context.Context, userRef string) ([]*domain.Ticket, error)
	Save(ctx context.Context, t *domain.Ticket) error
	Delete(ctx context.Context, id string) error
}

type ClientRepo interface {
	FetchByStore(ctx context.Context, storeCode string) ([]*domain.Client, error)
	Save(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}

type KPIRepo interface {
	FetchByStore(ctx context.Context, storeCode string) ([]*domain.KPISnapshot, error)
	FetchByDateRange(ctx context.Context, from, to time.Time) ([]*domain.KPISnapshot, error)
	Save(ctx context.Context, k *domain.KPISnapshot) error
	Delete(ctx context.Context, id string) error
}

type ReportRepo interface {
	FetchByStore(ctx context.Context, storeCode string) ([]*domain.StoreReport, error)
	FetchByDateRange(ctx context.Context, from, to time.Time) ([]*domain.StoreReport, error)
	Save(ctx context.Context, r *domain.StoreReport) error
	Delete(ctx context.Context, id string) error
}
