package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"storedesk/internal/domain"
	"storedesk/internal/record"
)

// KindKPI is the remote record kind holding daily KPI snapshots.
const KindKPI = "KPISnapshot"

func decodeKPI(r record.Record) (*domain.KPISnapshot, bool) {
	storeCode, ok := r.String("storeCode")
	if !ok || storeCode == "" {
		return nil, false
	}
	date, ok := r.Time("date")
	if !ok {
		return nil, false
	}
	// Metrics are optional, but a present-and-malformed mapping (wrong
	// shapes, non-finite values) disqualifies the record.
	var metrics map[string]float64
	if r.Has("metrics") {
		metrics, ok = r.FloatMap("metrics")
		if !ok {
			return nil, false
		}
	}

	return &domain.KPISnapshot{
		ID:        r.ID,
		StoreCode: storeCode,
		Date:      date,
		Metrics:   metrics,
	}, true
}

func encodeKPI(k *domain.KPISnapshot) record.Record {
	r := record.New(KindKPI, k.ID)
	r.Set("storeCode", k.StoreCode)
	r.SetTime("date", k.Date)
	setFloatMap(r, "metrics", k.Metrics)
	return r
}

// RecordKPIRepo implements KPIRepo over a record store.
type RecordKPIRepo struct {
	store record.Store
}

// NewRecordKPIRepo creates a new RecordKPIRepo.
func NewRecordKPIRepo(store record.Store) *RecordKPIRepo {
	return &RecordKPIRepo{store: store}
}

func (r *RecordKPIRepo) FetchByStore(ctx context.Context, storeCode string) ([]*domain.KPISnapshot, error) {
	return r.fetch(ctx, record.Equals("storeCode", storeCode))
}

func (r *RecordKPIRepo) FetchByDateRange(ctx context.Context, from, to time.Time) ([]*domain.KPISnapshot, error) {
	return r.fetch(ctx, record.Between("date", from, to))
}

func (r *RecordKPIRepo) fetch(ctx context.Context, p record.Predicate) ([]*domain.KPISnapshot, error) {
	recs, err := r.store.Query(ctx, KindKPI, p)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching kpi snapshots: %w", ErrRemoteQuery, err)
	}
	out := make([]*domain.KPISnapshot, 0, len(recs))
	for _, rec := range recs {
		if k, ok := decodeKPI(rec); ok {
			out = append(out, k)
		}
	}
	return out, nil
}

func (r *RecordKPIRepo) Save(ctx context.Context, k *domain.KPISnapshot) error {
	if k.ID == "" {
		k.ID = uuid.New().String()
	}
	if _, err := r.store.Save(ctx, encodeKPI(k)); err != nil {
		return fmt.Errorf("%w: saving kpi snapshot %s: %w", ErrRemoteWrite, k.ID, err)
	}
	return nil
}

func (r *RecordKPIRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, KindKPI, id); err != nil {
		return fmt.Errorf("%w: deleting kpi snapshot %s: %w", ErrRemoteWrite, id, err)
	}
	return nil
}
