package testutil

import (
	"time"

	"github.com/google/uuid"

	"storedesk/internal/domain"
)

// Fixture times are truncated to seconds because the record wire format
// carries RFC3339 without fractional seconds.
func fixtureNow() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskStatus(s domain.Status) TaskOption {
	return func(t *domain.Task) { t.Status = s }
}

func WithTaskStores(codes ...string) TaskOption {
	return func(t *domain.Task) { t.Stores = codes }
}

func WithTaskAssignees(refs ...string) TaskOption {
	return func(t *domain.Task) { t.AssignedTo = refs }
}

func WithTaskDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		d = d.UTC().Truncate(time.Second)
		t.DueDate = &d
	}
}

func NewTestTask(title string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    domain.StatusOpen,
		Stores:    []string{"S1"},
		CreatedBy: "user-1",
		CreatedAt: fixtureNow(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Ticket options
type TicketOption func(*domain.Ticket)

func WithTicketStatus(s domain.Status) TicketOption {
	return func(t *domain.Ticket) { t.Status = s }
}

func WithTicketStore(code string) TicketOption {
	return func(t *domain.Ticket) { t.StoreCode = code }
}

func WithTicketAssignee(ref string) TicketOption {
	return func(t *domain.Ticket) { t.AssignedTo = ref }
}

func NewTestTicket(title string, opts ...TicketOption) *domain.Ticket {
	t := &domain.Ticket{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    domain.StatusOpen,
		StoreCode: "S1",
		CreatedBy: "user-1",
		CreatedAt: fixtureNow(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestClient(guestName string) *domain.Client {
	return &domain.Client{
		ID:             uuid.New().String(),
		GuestName:      guestName,
		AccountNumber:  "ACCT-" + uuid.New().String()[:8],
		PreferredStore: "S1",
	}
}

func NewTestKPI(storeCode string, date time.Time, metrics map[string]float64) *domain.KPISnapshot {
	return &domain.KPISnapshot{
		ID:        uuid.New().String(),
		StoreCode: storeCode,
		Date:      date.UTC().Truncate(time.Second),
		Metrics:   metrics,
	}
}

func NewTestReport(storeCode string, date time.Time, totalSales float64) *domain.StoreReport {
	return &domain.StoreReport{
		ID:         uuid.New().String(),
		StoreCode:  storeCode,
		Date:       date.UTC().Truncate(time.Second),
		TotalSales: totalSales,
	}
}
