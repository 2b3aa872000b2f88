// Package seed bootstraps a record store from a YAML document. An external
// authority normally pre-populates the remote store; this is the local
// stand-in for that process.
package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"storedesk/internal/domain"
	"storedesk/internal/repository"
)

const seedDateLayout = "2006-01-02"

// Doc is the parsed form of a seed file.
type Doc struct {
	Tasks   []TaskSeed   `yaml:"tasks"`
	Tickets []TicketSeed `yaml:"tickets"`
	Clients []ClientSeed `yaml:"clients"`
	KPIs    []KPISeed    `yaml:"kpis"`
	Reports []ReportSeed `yaml:"reports"`
}

type TaskSeed struct {
	Title       string   `yaml:"title"`
	Detail      string   `yaml:"detail"`
	Status      string   `yaml:"status"`
	DueDate     string   `yaml:"due_date"`
	Group       bool     `yaml:"group"`
	AssignedTo  []string `yaml:"assigned_to"`
	Stores      []string `yaml:"stores"`
	Departments []string `yaml:"departments"`
	CreatedBy   string   `yaml:"created_by"`
	RequiresAck bool     `yaml:"requires_ack"`
}

type TicketSeed struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Status       string   `yaml:"status"`
	Store        string   `yaml:"store"`
	Department   string   `yaml:"department"`
	CreatedBy    string   `yaml:"created_by"`
	AssignedTo   string   `yaml:"assigned_to"`
	Confidential []string `yaml:"confidential"`
}

type ClientSeed struct {
	GuestName       string `yaml:"guest_name"`
	PartnerName     string `yaml:"partner_name"`
	AccountNumber   string `yaml:"account_number"`
	PreferredStore  string `yaml:"preferred_store"`
	LastInteraction string `yaml:"last_interaction"`
	FollowUp        string `yaml:"follow_up"`
}

type KPISeed struct {
	Store   string             `yaml:"store"`
	Date    string             `yaml:"date"`
	Metrics map[string]float64 `yaml:"metrics"`
}

type ReportSeed struct {
	Store      string             `yaml:"store"`
	Date       string             `yaml:"date"`
	TotalSales float64            `yaml:"total_sales"`
	Metrics    map[string]float64 `yaml:"metrics"`
}

// Load reads and parses a seed file.
func Load(path string) (*Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return Parse(data)
}

// Parse parses seed YAML.
func Parse(data []byte) (*Doc, error) {
	var doc Doc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &doc, nil
}

// Repos bundles the repositories Apply writes through.
type Repos struct {
	Tasks   repository.TaskRepo
	Tickets repository.TicketRepo
	Clients repository.ClientRepo
	KPIs    repository.KPIRepo
	Reports repository.ReportRepo
}

// Apply writes every seed entry through the repositories. It stops at the
// first failure so a partially applied seed is visible in the logs.
func Apply(ctx context.Context, doc *Doc, repos Repos, log *logrus.Logger) error {
	for i, s := range doc.Tasks {
		t, err := s.toDomain()
		if err != nil {
			return fmt.Errorf("task %d (%q): %w", i, s.Title, err)
		}
		if err := repos.Tasks.Save(ctx, t); err != nil {
			return fmt.Errorf("task %d (%q): %w", i, s.Title, err)
		}
	}
	for i, s := range doc.Tickets {
		t, err := s.toDomain()
		if err != nil {
			return fmt.Errorf("ticket %d (%q): %w", i, s.Title, err)
		}
		if err := repos.Tickets.Save(ctx, t); err != nil {
			return fmt.Errorf("ticket %d (%q): %w", i, s.Title, err)
		}
	}
	for i, s := range doc.Clients {
		c, err := s.toDomain()
		if err != nil {
			return fmt.Errorf("client %d (%q): %w", i, s.GuestName, err)
		}
		if err := repos.Clients.Save(ctx, c); err != nil {
			return fmt.Errorf("client %d (%q): %w", i, s.GuestName, err)
		}
	}
	for i, s := range doc.KPIs {
		k, err := s.toDomain()
		if err != nil {
			return fmt.Errorf("kpi %d: %w", i, err)
		}
		if err := repos.KPIs.Save(ctx, k); err != nil {
			return fmt.Errorf("kpi %d: %w", i, err)
		}
	}
	for i, s := range doc.Reports {
		r, err := s.toDomain()
		if err != nil {
			return fmt.Errorf("report %d: %w", i, err)
		}
		if err := repos.Reports.Save(ctx, r); err != nil {
			return fmt.Errorf("report %d: %w", i, err)
		}
	}

	log.WithFields(logrus.Fields{
		"tasks":   len(doc.Tasks),
		"tickets": len(doc.Tickets),
		"clients": len(doc.Clients),
		"kpis":    len(doc.KPIs),
		"reports": len(doc.Reports),
	}).Info("seed applied")
	return nil
}

func parseStatus(s string) (domain.Status, error) {
	if s == "" {
		return domain.StatusOpen, nil
	}
	status, ok := domain.ParseStatus(s)
	if !ok {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return status, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(seedDateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", s, err)
	}
	t = t.UTC()
	return &t, nil
}

func (s TaskSeed) toDomain() (*domain.Task, error) {
	status, err := parseStatus(s.Status)
	if err != nil {
		return nil, err
	}
	due, err := parseDate(s.DueDate)
	if err != nil {
		return nil, err
	}
	createdBy := s.CreatedBy
	if createdBy == "" {
		createdBy = "seed"
	}
	return &domain.Task{
		Title:       s.Title,
		Detail:      s.Detail,
		Status:      status,
		DueDate:     due,
		IsGroupTask: s.Group,
		AssignedTo:  s.AssignedTo,
		Stores:      s.Stores,
		Departments: s.Departments,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
		RequiresAck: s.RequiresAck,
	}, nil
}

func (s TicketSeed) toDomain() (*domain.Ticket, error) {
	status, err := parseStatus(s.Status)
	if err != nil {
		return nil, err
	}
	createdBy := s.CreatedBy
	if createdBy == "" {
		createdBy = "seed"
	}
	return &domain.Ticket{
		Title:           s.Title,
		Description:     s.Description,
		Status:          status,
		StoreCode:       s.Store,
		Department:      s.Department,
		CreatedBy:       createdBy,
		AssignedTo:      s.AssignedTo,
		Confidentiality: s.Confidential,
		CreatedAt:       time.Now().UTC().Truncate(time.Second),
	}, nil
}

func (s ClientSeed) toDomain() (*domain.Client, error) {
	last, err := parseDate(s.LastInteraction)
	if err != nil {
		return nil, err
	}
	followUp, err := parseDate(s.FollowUp)
	if err != nil {
		return nil, err
	}
	return &domain.Client{
		GuestName:       s.GuestName,
		PartnerName:     s.PartnerName,
		AccountNumber:   s.AccountNumber,
		PreferredStore:  s.PreferredStore,
		LastInteraction: last,
		FollowUp:        followUp,
	}, nil
}

func (s KPISeed) toDomain() (*domain.KPISnapshot, error) {
	date, err := parseDate(s.Date)
	if err != nil {
		return nil, err
	}
	if date == nil {
		return nil, fmt.Errorf("date is required")
	}
	return &domain.KPISnapshot{
		StoreCode: s.Store,
		Date:      *date,
		Metrics:   s.Metrics,
	}, nil
}

func (s ReportSeed) toDomain() (*domain.StoreReport, error) {
	date, err := parseDate(s.Date)
	if err != nil {
		return nil, err
	}
	if date == nil {
		return nil, fmt.Errorf("date is required")
	}
	return &domain.StoreReport{
		StoreCode:  s.Store,
		Date:       *date,
		TotalSales: s.TotalSales,
		Metrics:    s.Metrics,
	}, nil
}
