package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/huh"

	"storedesk/internal/domain"
)

// newTaskFormView builds the "new task" form. The task is scoped to the
// active store unless the user widens the store list.
func newTaskFormView(state *SharedState) View {
	var (
		title       string
		detail      string
		stores      = state.StoreCode
		departments string
		assignees   string
		dueDate     string
		groupTask   bool
		requiresAck bool
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Task title").
				Value(&title).
				Validate(validateRequired("title")),
			huh.NewInput().
				Title("Detail (optional)").
				Value(&detail),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Stores (comma separated)").
				Placeholder(state.StoreCode).
				Value(&stores),
			huh.NewInput().
				Title("Departments (optional, comma separated)").
				Value(&departments),
			huh.NewInput().
				Title("Assignees (optional, comma separated)").
				Value(&assignees),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Due Date (YYYY-MM-DD, blank for none)").
				Placeholder("2026-09-30").
				Value(&dueDate).
				Validate(validateOptionalDate),
			huh.NewConfirm().
				Title("Group task? (everyone completes individually)").
				Affirmative("Yes").
				Negative("No").
				Value(&groupTask),
			huh.NewConfirm().
				Title("Requires acknowledgment?").
				Affirmative("Yes").
				Negative("No").
				Value(&requiresAck),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)

	repo := state.App.Tasks
	userRef := state.UserRef
	submit := func() error {
		t := &domain.Task{
			Title:       title,
			Detail:      detail,
			Status:      domain.StatusOpen,
			DueDate:     parseOptionalDate(dueDate),
			IsGroupTask: groupTask,
			RequiresAck: requiresAck,
			Stores:      splitList(stores),
			Departments: splitList(departments),
			AssignedTo:  splitList(assignees),
			CreatedBy:   userRef,
			CreatedAt:   time.Now().UTC().Truncate(time.Second),
		}
		return repo.Save(context.Background(), t)
	}

	return newFormView(state, "New Task", form, submit)
}

// newTicketFormView builds the "new ticket" form for the active store.
func newTicketFormView(state *SharedState) View {
	var (
		title       string
		description string
		department  string
		assignee    string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Ticket title").
				Value(&title).
				Validate(validateRequired("title")),
			huh.NewInput().
				Title("Description (optional)").
				Value(&description),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Department (optional)").
				Value(&department),
			huh.NewInput().
				Title("Assignee (optional)").
				Value(&assignee),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)

	repo := state.App.Tickets
	storeCode := state.StoreCode
	userRef := state.UserRef
	submit := func() error {
		t := &domain.Ticket{
			Title:       title,
			Description: description,
			Status:      domain.StatusOpen,
			StoreCode:   storeCode,
			Department:  department,
			AssignedTo:  assignee,
			CreatedBy:   userRef,
			CreatedAt:   time.Now().UTC().Truncate(time.Second),
		}
		return repo.Save(context.Background(), t)
	}

	return newFormView(state, "New Ticket", form, submit)
}

// newClientFormView builds the "new client" form. The client is filed under
// the active store.
func newClientFormView(state *SharedState) View {
	var (
		guestName     string
		partnerName   string
		accountNumber string
		followUp      string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Guest Name").
				Value(&guestName).
				Validate(validateRequired("guest name")),
			huh.NewInput().
				Title("Partner Name (optional)").
				Value(&partnerName),
			huh.NewInput().
				Title("Account Number").
				Value(&accountNumber).
				Validate(validateRequired("account number")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Follow Up (YYYY-MM-DD, blank for none)").
				Value(&followUp).
				Validate(validateOptionalDate),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)

	repo := state.App.Clients
	storeCode := state.StoreCode
	submit := func() error {
		c := &domain.Client{
			GuestName:      guestName,
			PartnerName:    partnerName,
			AccountNumber:  accountNumber,
			PreferredStore: storeCode,
			FollowUp:       parseOptionalDate(followUp),
		}
		return repo.Save(context.Background(), c)
	}

	return newFormView(state, "New Client", form, submit)
}
