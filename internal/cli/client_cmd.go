package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"storedesk/internal/domain"
)

func newClientCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage client contacts",
	}

	cmd.AddCommand(
		newClientListCmd(app),
		newClientAddCmd(app),
		newClientRemoveCmd(app),
	)

	return cmd
}

func newClientListCmd(app *App) *cobra.Command {
	var store string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients for a store",
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := app.Clients.FetchByStore(context.Background(), store)
			if err != nil {
				return err
			}

			if len(clients) == 0 {
				fmt.Println("No clients found.")
				return nil
			}

			rows := make([][]string, 0, len(clients))
			for _, c := range clients {
				followUp := "-"
				if c.FollowUp != nil {
					followUp = c.FollowUp.Format("2006-01-02")
				}
				partner := c.PartnerName
				if partner == "" {
					partner = "-"
				}
				rows = append(rows, []string{
					shortID(c.ID),
					c.GuestName,
					partner,
					c.AccountNumber,
					followUp,
				})
			}
			fmt.Println(renderTable([]string{"ID", "GUEST", "PARTNER", "ACCOUNT", "FOLLOW UP"}, rows))
			return nil
		},
	}

	addStoreFlag(cmd.Flags(), &store, app.Config.StoreCode)

	return cmd
}

func newClientAddCmd(app *App) *cobra.Command {
	var guest, partner, account, followUp, store string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new client contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Client{
				GuestName:      guest,
				PartnerName:    partner,
				AccountNumber:  account,
				PreferredStore: store,
			}
			if followUp != "" {
				d, err := time.ParseInLocation("2006-01-02", followUp, time.UTC)
				if err != nil {
					return fmt.Errorf("invalid follow-up date %q: %w", followUp, err)
				}
				c.FollowUp = &d
			}

			if err := app.Clients.Save(context.Background(), c); err != nil {
				return err
			}

			fmt.Printf("Created client %s [%s]\n", c.GuestName, shortID(c.ID))
			return nil
		},
	}

	addStoreFlag(cmd.Flags(), &store, app.Config.StoreCode)
	cmd.Flags().StringVar(&guest, "guest", "", "Guest name")
	cmd.Flags().StringVar(&partner, "partner", "", "Partner name")
	cmd.Flags().StringVar(&account, "account", "", "Account number")
	cmd.Flags().StringVar(&followUp, "follow-up", "", "Follow-up date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("guest")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func newClientRemoveCmd(app *App) *cobra.Command {
	var store string

	cmd := &cobra.Command{
		Use:   "remove ID...",
		Short: "Remove one or more client contacts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			clients, err := app.Clients.FetchByStore(ctx, store)
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(clients))
			for _, c := range clients {
				ids = append(ids, c.ID)
			}

			var firstErr error
			removed := 0
			for _, arg := range args {
				id, err := resolveID(ids, arg)
				if err == nil {
					err = app.Clients.Delete(ctx, id)
				}
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				removed++
			}

			fmt.Printf("Removed %d of %d clients\n", removed, len(args))
			return firstErr
		},
	}

	addStoreFlag(cmd.Flags(), &store, app.Config.StoreCode)

	return cmd
}
