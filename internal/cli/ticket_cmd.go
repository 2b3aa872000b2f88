package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"storedesk/internal/domain"
)

func newTicketCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Manage tickets",
	}

	cmd.AddCommand(
		newTicketListCmd(app),
		newTicketAddCmd(app),
		newTicketAssignCmd(app),
		newTicketStatusCmd(app),
		newTicketRemoveCmd(app),
	)

	return cmd
}

// fetchTicketsByScope fetches either the store's tickets or the current
// user's own tickets.
func fetchTicketsByScope(ctx context.Context, app *App, store string, mine bool) ([]*domain.Ticket, error) {
	if mine {
		return app.Tickets.FetchByCreator(ctx, app.Config.UserRef)
	}
	return app.Tickets.FetchByStore(ctx, store)
}

// resolveTicket resolves an exact or prefix ID within the store scope.
func resolveTicket(ctx context.Context, app *App, store, input string) (*domain.Ticket, error) {
	tickets, err := app.Tickets.FetchByStore(ctx, store)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(tickets))
	byID := make(map[string]*domain.Ticket, len(tickets))
	for _, t := range tickets {
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}
	id, err := resolveID(ids, input)
	if err != nil {
		return nil, err
	}
	return byID[id], nil
}

func newTicketListCmd(app *App) *cobra.Command {
	var store string
	var mine bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets for a store",
		RunE: func(cmd *cobra.Command, args []string) error {
			tickets, err := fetchTicketsByScope(context.Background(), app, store, mine)
			if err != nil {
				return err
			}

			if len(tickets) == 0 {
				fmt.Println("No tickets found.")
				return nil
			}

			rows := make([][]string, 0, len(tickets))
			for _, t := range tickets {
				assignee := t.AssignedTo
				if assignee == "" {
					assignee = "-"
				}
				rows = append(rows, []string{
					shortID(t.ID),
					statusStyle(t.Status).Render(string(t.Status)),
					t.Title,
					assignee,
					t.CreatedAt.Format("2006-01-02"),
				})
			}
			fmt.Println(renderTable([]string{"ID", "STATUS", "TITLE", "ASSIGNEE", "CREATED"}, rows))
			return nil
		},
	}

	addStoreFlag(cmd.Flags(), &store, app.Config.StoreCode)
	cmd.Flags().BoolVar(&mine, "mine", false, "Only tickets created by the configured user")

	return cmd
}

func newTicketAddCmd(app *App) *cobra.Command {
	var title, description, department, assignee, store string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new ticket",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.Ticket{
				Title:       title,
				Description: description,
				Status:      domain.StatusOpen,
				StoreCode:   store,
				Department:  department,
				AssignedTo:  assignee,
				CreatedBy:   app.Config.UserRef,
				CreatedAt:   time.Now().UTC().Truncate(time.Second),
			}

			if err := app.Tickets.Save(context.Background(), t); err != nil {
				return err
			}

			fmt.Printf("Created ticket %s [%s]\n", t.Title, shortID(t.ID))
			return nil
		},
	}

	addStoreFlag(cmd.Flags(), &store, app.Config.StoreCode)
	cmd.Flags().StringVar(&title, "title", "", "Ticket title")
	cmd.Flags().StringVar(&description, "description", "", "Ticket description")
	cmd.Flags().StringVar(&department, "department", "", "Department")
	cmd.Flags().StringVar(&assignee, "assign", "", "Assignee reference")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTicketAssignCmd(app *App) *cobra.Command {
	var store, assignee string
	var clear bool

	cmd := &cobra.Command{
		Use:   "assign ID",
		Short: "Assign or unassign a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := resolveTicket(ctx, app, store, args[0])
			if err != nil {
				return err
			}

			next := *t
			switch {
			case clear:
				next.AssignedTo = ""
			case assignee != "":
				next.AssignedTo = assignee
			default:
				next.AssignedTo = app.Config.UserRef
			}
			if err := app.Tickets.Save(ctx, &next); err != nil {
				return err
			}

			if next.AssignedTo == "" {
				fmt.Printf("Unassigned %s\n", next.Title)
			} else {
				fmt.Printf("Assigned %s to %s\n", next.Title, next.AssignedTo)
			}
			return nil
		},
	}

	addStoreFlag(cmd.Flags(), &store, app.Config.StoreCode)
	cmd.Flags().StringVar(&assignee, "to", "", "Assignee (default: configured user)")
	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the current assignee")

	return cmd
}

func newTicketStatusCmd(app *App) *cobra.Command {
	var store string

	cmd := &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Set a ticket's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			status, ok := domain.ParseStatus(args[1])
			if !ok {
				return fmt.Errorf("invalid status %q (want Open, In Progress, or Closed)", args[1])
			}

			t, err := resolveTicket(ctx, app, store, args[0])
			if err != nil {
				return err
			}

			next := *t
			next.Status = status
			if err := app.Tickets.Save(ctx, &next); err != nil {
				return err
			}

			fmt.Printf("Set %s to %s\n", next.Title, status)
			return nil
		},
	}

	addStoreFlag(cmd.Flags(), &store, app.Config.StoreCode)

	return cmd
}

func newTicketRemoveCmd(app *App) *cobra.Command {
	var store string

	cmd := &cobra.Command{
		Use:   "remove ID...",
		Short: "Remove one or more tickets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var firstErr error
			removed := 0
			for _, arg := range args {
				t, err := resolveTicket(ctx, app, store, arg)
				if err == nil {
					err = app.Tickets.Delete(ctx, t.ID)
				}
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				removed++
			}

			fmt.Printf("Removed %d of %d tickets\n", removed, len(args))
			return firstErr
		},
	}

	addStoreFlag(cmd.Flags(), &store, app.Config.StoreCode)

	return cmd
}
