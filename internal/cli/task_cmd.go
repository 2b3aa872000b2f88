package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"storedesk/internal/domain"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskListCmd(app),
		newTaskAddCmd(app),
		newTaskStatusCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

// resolveTaskID resolves an exact or prefix ID against the store's tasks.
func resolveTaskID(ctx context.Context, app *App, store, input string) (string, error) {
	tasks, err := app.Tasks.FetchByStore(ctx, store)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return resolveID(ids, input)
}

func newTaskListCmd(app *App) *cobra.Command {
	var store, assignee string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks for a store or assignee",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var (
				tasks []*domain.Task
				err   error
			)
			if assignee != "" {
				tasks, err = app.Tasks.FetchByAssignee(ctx, assignee)
			} else {
				tasks, err = app.Tasks.FetchByStore(ctx, store)
			}
			if err != nil {
				return err
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			rows := make([][]string, 0, len(tasks))
			for _, t := range tasks {
				due := "-"
				if t.DueDate != nil {
					due = t.DueDate.Format("2006-01-02")
				}
				rows = append(rows, []string{
					shortID(t.ID),
					statusStyle(t.Status).Render(string(t.Status)),
					t.Title,
					due,
					strings.Join(t.AssignedTo, ","),
				})
			}
			fmt.Println(renderTable([]string{"ID", "STATUS", "TITLE", "DUE", "ASSIGNED"}, rows))
			return nil
		},
	}

	addStoreFlag(cmd.Flags(), &store, app.Config.StoreCode)
	cmd.Flags().StringVar(&assignee, "assignee", "", "List tasks assigned to this user instead")

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		title, detail, due          string
		stores, departments, assign []string
		group, ack                  bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.Task{
				Title:       title,
				Detail:      detail,
				Status:      domain.StatusOpen,
				IsGroupTask: group,
				RequiresAck: ack,
				Stores:      stores,
				Departments: departments,
				AssignedTo:  assign,
				CreatedBy:   app.Config.UserRef,
				CreatedAt:   time.Now().UTC().Truncate(time.Second),
			}
			if due != "" {
				d, err := time.ParseInLocation("2006-01-02", due, time.UTC)
				if err != nil {
					return fmt.Errorf("invalid due date %q: %w", due, err)
				}
				t.DueDate = &d
			}
			if len(t.Stores) == 0 {
				t.Stores = []string{app.Config.StoreCode}
			}

			if err := app.Tasks.Save(context.Background(), t); err != nil {
				return err
			}

			fmt.Printf("Created task %s [%s]\n", t.Title, shortID(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&detail, "detail", "", "Task detail")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&stores, "stores", nil, "Store codes (default: configured store)")
	cmd.Flags().StringSliceVar(&departments, "departments", nil, "Departments")
	cmd.Flags().StringSliceVar(&assign, "assign", nil, "Assignee references")
	cmd.Flags().BoolVar(&group, "group", false, "Group task (everyone completes individually)")
	cmd.Flags().BoolVar(&ack, "ack", false, "Requires acknowledgment")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskStatusCmd(app *App) *cobra.Command {
	var store string

	cmd := &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Set a task's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			status, ok := domain.ParseStatus(args[1])
			if !ok {
				return fmt.Errorf("invalid status %q (want Open, In Progress, or Closed)", args[1])
			}

			tasks, err := app.Tasks.FetchByStore(ctx, store)
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(tasks))
			byID := make(map[string]*domain.Task, len(tasks))
			for _, t := range tasks {
				ids = append(ids, t.ID)
				byID[t.ID] = t
			}
			id, err := resolveID(ids, args[0])
			if err != nil {
				return err
			}

			t := *byID[id]
			t.Status = status
			if err := app.Tasks.Save(ctx, &t); err != nil {
				return err
			}

			fmt.Printf("Set %s to %s\n", t.Title, status)
			return nil
		},
	}

	addStoreFlag(cmd.Flags(), &store, app.Config.StoreCode)

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var store string

	cmd := &cobra.Command{
		Use:   "remove ID...",
		Short: "Remove one or more tasks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// Best effort: keep deleting past failures and report the first.
			var firstErr error
			removed := 0
			for _, arg := range args {
				id, err := resolveTaskID(ctx, app, store, arg)
				if err == nil {
					err = app.Tasks.Delete(ctx, id)
				}
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				removed++
			}

			fmt.Printf("Removed %d of %d tasks\n", removed, len(args))
			return firstErr
		},
	}

	addStoreFlag(cmd.Flags(), &store, app.Config.StoreCode)

	return cmd
}
