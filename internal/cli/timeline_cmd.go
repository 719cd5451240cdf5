package cli

import (
	"context"
	"fmt"

	"github.com/dkoval/hirepath/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Check and repair timeline invariants",
	}

	cmd.AddCommand(
		newTimelineCheckCmd(app),
		newTimelineFixCmd(app),
	)

	return cmd
}

func newTimelineCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check APP_ID",
		Short: "Validate an application's timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			appID, err := resolveApplicationID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if err := app.Pipeline.ValidateTimeline(ctx, appID); err != nil {
				return fmt.Errorf("timeline is invalid:\n%w", err)
			}

			fmt.Printf("%s\n", formatter.StyleGreen.Render("✔ Timeline is valid."))
			return nil
		},
	}
}

func newTimelineFixCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "fix APP_ID",
		Short: "Renumber stages into a dense 0..n-1 order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			appID, err := resolveApplicationID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if err := app.Pipeline.NormalizeOrder(ctx, appID); err != nil {
				return err
			}

			fmt.Printf("Renumbered stages of application %s\n", appID[:8])
			return nil
		},
	}
}
