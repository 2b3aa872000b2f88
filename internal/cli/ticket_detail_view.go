package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"storedesk/internal/domain"
)

type ticketSavedMsg struct {
	err error
}

// ticketDetailView shows one ticket and offers status and assignment
// mutations.
type ticketDetailView struct {
	state  *SharedState
	ticket *domain.Ticket
	err    error
}

func newTicketDetailView(state *SharedState, ticket *domain.Ticket) *ticketDetailView {
	return &ticketDetailView{state: state, ticket: ticket}
}

func (v *ticketDetailView) ID() ViewID    { return ViewTicketDetail }
func (v *ticketDetailView) Title() string { return v.ticket.Title }

func (v *ticketDetailView) ShortHelp() []key.Binding {
	return []key.Binding{
		keyBinding("s", "cycle status"),
		keyBinding("m", "assign to me"),
		keyBinding("u", "unassign"),
		keyBinding("esc", "back"),
	}
}

func (v *ticketDetailView) Init() tea.Cmd { return nil }

func (v *ticketDetailView) save(t *domain.Ticket) tea.Cmd {
	repo := v.state.App.Tickets
	return func() tea.Msg {
		return ticketSavedMsg{err: repo.Save(context.Background(), t)}
	}
}

func (v *ticketDetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ticketSavedMsg:
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		return v, tea.Batch(popView(), refreshViews())

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return v, tea.Quit
		case "esc":
			return v, popView()
		case "s":
			next := *v.ticket
			next.Status = v.ticket.Status.Next()
			return v, v.save(&next)
		case "m":
			next := *v.ticket
			next.AssignedTo = v.state.UserRef
			return v, v.save(&next)
		case "u":
			// Saving with an empty assignee clears the field remotely.
			next := *v.ticket
			next.AssignedTo = ""
			return v, v.save(&next)
		}
	}
	return v, nil
}

func (v *ticketDetailView) View() string {
	t := v.ticket
	var b strings.Builder

	b.WriteString(styleBold.Render(t.Title) + "\n")
	b.WriteString(statusStyle(t.Status).Render(string(t.Status)) + "\n\n")

	if t.Description != "" {
		b.WriteString(styleFg.Render(t.Description) + "\n\n")
	}

	row := func(label, value string) {
		if value != "" {
			b.WriteString(styleDim.Render(fmt.Sprintf("%-14s", label)) + styleFg.Render(value) + "\n")
		}
	}
	row("Store", t.StoreCode)
	row("Department", t.Department)
	row("Created by", t.CreatedBy)
	row("Created", t.CreatedAt.Format("2006-01-02 15:04"))
	if t.AssignedTo != "" {
		row("Assignee", t.AssignedTo)
	} else {
		row("Assignee", "unassigned")
	}
	if len(t.Confidentiality) > 0 {
		row("Confidential", strings.Join(t.Confidentiality, ", "))
	}

	if v.err != nil {
		b.WriteString("\n" + styleRed.Render("Error: "+v.err.Error()))
	}
	return b.String()
}
