package repository

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storedesk/internal/record"
	"storedesk/internal/testutil"
)

func day(t *testing.T, d string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", d)
	require.NoError(t, err)
	return parsed.UTC()
}

func TestKPICodec_RoundTrip(t *testing.T) {
	kpi := testutil.NewTestKPI("S1", time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		map[string]float64{"conversion": 0.31, "visits": 412})

	decoded, ok := decodeKPI(encodeKPI(kpi))
	require.True(t, ok)
	assert.Equal(t, kpi, decoded)
}

func TestKPICodec_RejectsMalformedMetrics(t *testing.T) {
	kpi := testutil.NewTestKPI("S1", time.Now(), nil)
	r := encodeKPI(kpi)

	// Absent metrics are fine.
	_, ok := decodeKPI(r)
	require.True(t, ok)

	// Present but malformed metrics disqualify the record.
	r.Set("metrics", map[string]any{"sales": "lots"})
	_, ok = decodeKPI(r)
	assert.False(t, ok)

	r.Set("metrics", map[string]float64{"sales": math.NaN()})
	_, ok = decodeKPI(r)
	assert.False(t, ok)
}

func TestReportCodec_RoundTrip(t *testing.T) {
	report := testutil.NewTestReport("S1", time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), 15230.40)
	report.Metrics = map[string]float64{"transactions": 188}

	decoded, ok := decodeReport(encodeReport(report))
	require.True(t, ok)
	assert.Equal(t, report, decoded)
}

func TestReportCodec_RequiresTotalSales(t *testing.T) {
	report := testutil.NewTestReport("S1", time.Now(), 100)
	r := encodeReport(report)

	delete(r.Fields, "totalSales")
	_, ok := decodeReport(r)
	assert.False(t, ok)

	r.Set("totalSales", "a lot")
	_, ok = decodeReport(r)
	assert.False(t, ok)

	// Zero sales is a value, not an absence.
	r.Set("totalSales", 0.0)
	decoded, ok := decodeReport(r)
	require.True(t, ok)
	assert.Zero(t, decoded.TotalSales)
}

func TestKPIRepo_FetchByDateRange(t *testing.T) {
	store := record.NewMemoryStore()
	repo := NewRecordKPIRepo(store)
	ctx := context.Background()

	for _, d := range []string{"2026-03-01", "2026-03-15", "2026-04-02"} {
		kpi := testutil.NewTestKPI("S1", day(t, d), map[string]float64{"visits": 10})
		require.NoError(t, repo.Save(ctx, kpi))
	}

	kpis, err := repo.FetchByDateRange(ctx, day(t, "2026-03-01"), day(t, "2026-03-31"))
	require.NoError(t, err)
	assert.Len(t, kpis, 2)
}

func TestReportRepo_FetchByStoreAndRange(t *testing.T) {
	store := record.NewMemoryStore()
	repo := NewRecordReportRepo(store)
	ctx := context.Background()

	s1 := testutil.NewTestReport("S1", day(t, "2026-03-10"), 1000)
	s2 := testutil.NewTestReport("S2", day(t, "2026-03-12"), 2000)
	require.NoError(t, repo.Save(ctx, s1))
	require.NoError(t, repo.Save(ctx, s2))

	byStore, err := repo.FetchByStore(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, byStore, 1)
	assert.Equal(t, 1000.0, byStore[0].TotalSales)

	// The date range crosses stores: narrowing to one store happens
	// client-side.
	byRange, err := repo.FetchByDateRange(ctx, day(t, "2026-03-01"), day(t, "2026-03-31"))
	require.NoError(t, err)
	assert.Len(t, byRange, 2)
}
