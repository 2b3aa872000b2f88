package seed

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storedesk/internal/domain"
	"storedesk/internal/record"
	"storedesk/internal/repository"
)

const sampleSeed = `
tasks:
  - title: Count stock
    detail: Full count before quarter close
    status: In Progress
    due_date: 2026-09-30
    stores: [S1, S2]
    departments: [floor]
    group: true
    requires_ack: true
tickets:
  - title: Broken till
    store: S1
    department: front
    assigned_to: user-9
clients:
  - guest_name: Ada Brook
    partner_name: Sam Brook
    account_number: ACCT-1001
    preferred_store: S1
    follow_up: 2026-09-01
kpis:
  - store: S1
    date: 2026-08-20
    metrics:
      visits: 412
      conversion: 0.31
reports:
  - store: S1
    date: 2026-08-20
    total_sales: 15230.40
`

func testRepos(store record.Store) Repos {
	return Repos{
		Tasks:   repository.NewRecordTaskRepo(store),
		Tickets: repository.NewRecordTicketRepo(store),
		Clients: repository.NewRecordClientRepo(store),
		KPIs:    repository.NewRecordKPIRepo(store),
		Reports: repository.NewRecordReportRepo(store),
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sampleSeed))
	require.NoError(t, err)

	require.Len(t, doc.Tasks, 1)
	assert.Equal(t, "Count stock", doc.Tasks[0].Title)
	assert.Equal(t, []string{"S1", "S2"}, doc.Tasks[0].Stores)
	assert.True(t, doc.Tasks[0].RequiresAck)

	require.Len(t, doc.KPIs, 1)
	assert.Equal(t, 412.0, doc.KPIs[0].Metrics["visits"])

	require.Len(t, doc.Reports, 1)
	assert.Equal(t, 15230.40, doc.Reports[0].TotalSales)
}

func TestParse_RejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("tasks: [unclosed"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	doc, err := Parse([]byte(sampleSeed))
	require.NoError(t, err)

	store := record.NewMemoryStore()
	repos := testRepos(store)
	require.NoError(t, Apply(context.Background(), doc, repos, quietLogger()))

	ctx := context.Background()

	tasks, err := repos.Tasks.FetchByStore(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.StatusInProgress, tasks[0].Status)
	assert.Equal(t, "seed", tasks[0].CreatedBy, "missing creators default to seed")
	require.NotNil(t, tasks[0].DueDate)
	assert.Equal(t, "2026-09-30", tasks[0].DueDate.Format("2006-01-02"))

	tickets, err := repos.Tickets.FetchByStore(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, domain.StatusOpen, tickets[0].Status, "missing status defaults to Open")
	assert.Equal(t, "user-9", tickets[0].AssignedTo)

	clients, err := repos.Clients.FetchByStore(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, clients, 1)
	require.NotNil(t, clients[0].FollowUp)

	kpis, err := repos.KPIs.FetchByStore(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, kpis, 1)
	assert.Equal(t, 0.31, kpis[0].Metrics["conversion"])

	reports, err := repos.Reports.FetchByStore(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 15230.40, reports[0].TotalSales)
}

func TestApply_StopsAtFirstFailure(t *testing.T) {
	doc, err := Parse([]byte(`
tasks:
  - title: Bad status
    status: Paused
    stores: [S1]
`))
	require.NoError(t, err)

	store := record.NewMemoryStore()
	err = Apply(context.Background(), doc, testRepos(store), quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad status")
	assert.Equal(t, 0, store.Len(repository.KindTask))
}

func TestApply_RejectsKPIWithoutDate(t *testing.T) {
	doc, err := Parse([]byte(`
kpis:
  - store: S1
    metrics:
      visits: 10
`))
	require.NoError(t, err)

	err = Apply(context.Background(), doc, testRepos(record.NewMemoryStore()), quietLogger())
	assert.Error(t, err)
}
