package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"storedesk/internal/domain"
	"storedesk/internal/record"
)

// KindReport is the remote record kind holding store reports.
const KindReport = "StoreReport"

func decodeReport(r record.Record) (*domain.StoreReport, bool) {
	storeCode, ok := r.String("storeCode")
	if !ok || storeCode == "" {
		return nil, false
	}
	date, ok := r.Time("date")
	if !ok {
		return nil, false
	}
	totalSales, ok := r.Float("totalSales")
	if !ok {
		return nil, false
	}
	var metrics map[string]float64
	if r.Has("metrics") {
		metrics, ok = r.FloatMap("metrics")
		if !ok {
			return nil, false
		}
	}

	return &domain.StoreReport{
		ID:         r.ID,
		StoreCode:  storeCode,
		Date:       date,
		TotalSales: totalSales,
		Metrics:    metrics,
	}, true
}

func encodeReport(s *domain.StoreReport) record.Record {
	r := record.New(KindReport, s.ID)
	r.Set("storeCode", s.StoreCode)
	r.SetTime("date", s.Date)
	r.Set("totalSales", s.TotalSales)
	setFloatMap(r, "metrics", s.Metrics)
	return r
}

// RecordReportRepo implements ReportRepo over a record store.
type RecordReportRepo struct {
	store record.Store
}

// NewRecordReportRepo creates a new RecordReportRepo.
func NewRecordReportRepo(store record.Store) *RecordReportRepo {
	return &RecordReportRepo{store: store}
}

func (r *RecordReportRepo) FetchByStore(ctx context.Context, storeCode string) ([]*domain.StoreReport, error) {
	return r.fetch(ctx, record.Equals("storeCode", storeCode))
}

func (r *RecordReportRepo) FetchByDateRange(ctx context.Context, from, to time.Time) ([]*domain.StoreReport, error) {
	return r.fetch(ctx, record.Between("date", from, to))
}

func (r *RecordReportRepo) fetch(ctx context.Context, p record.Predicate) ([]*domain.StoreReport, error) {
	recs, err := r.store.Query(ctx, KindReport, p)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching store reports: %w", ErrRemoteQuery, err)
	}
	out := make([]*domain.StoreReport, 0, len(recs))
	for _, rec := range recs {
		if s, ok := decodeReport(rec); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *RecordReportRepo) Save(ctx context.Context, s *domain.StoreReport) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if _, err := r.store.Save(ctx, encodeReport(s)); err != nil {
		return fmt.Errorf("%w: saving store report %s: %w", ErrRemoteWrite, s.ID, err)
	}
	return nil
}

func (r *RecordReportRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, KindReport, id); err != nil {
		return fmt.Errorf("%w: deleting store report %s: %w", ErrRemoteWrite, id, err)
	}
	return nil
}
