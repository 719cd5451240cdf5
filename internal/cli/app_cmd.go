package cli

import (
	"context"
	"fmt"

	"github.com/dkoval/hirepath/internal/cli/formatter"
	"github.com/dkoval/hirepath/internal/domain"
	"github.com/spf13/cobra"
)

func newAppCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: "Manage applications",
	}

	cmd.AddCommand(
		newAppCreateCmd(app),
		newAppListCmd(app),
		newAppShowCmd(app),
	)

	return cmd
}

func newAppCreateCmd(app *App) *cobra.Command {
	var candidate, job string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an application with its submission stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := &domain.Application{
				CandidateID: candidate,
				JobTitle:    job,
			}
			if err := app.Applications.Create(context.Background(), a, candidate); err != nil {
				return err
			}

			fmt.Printf("Created application %s for %s (%s)\n", a.ID[:8], candidate, job)
			return nil
		},
	}

	cmd.Flags().StringVar(&candidate, "candidate", "", "Candidate identifier")
	cmd.Flags().StringVar(&job, "job", "", "Job title applied for")
	_ = cmd.MarkFlagRequired("candidate")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}

func newAppListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			apps, err := app.Applications.List(context.Background())
			if err != nil {
				return err
			}

			if len(apps) == 0 {
				fmt.Println("No applications found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatApplicationList(apps))
			return nil
		},
	}
}

func newAppShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show an application and its timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			appID, err := resolveApplicationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			a, err := app.Applications.GetByID(ctx, appID)
			if err != nil {
				return err
			}
			stages, err := app.Pipeline.GetVisibleStages(ctx, appID, domain.RoleRecruiter)
			if err != nil {
				return err
			}

			fmt.Printf("%s %s\n", formatter.Bold(a.JobTitle), formatter.Dim("("+a.CandidateID+")"))
			fmt.Printf("%s\n", formatter.FormatStageList(stages))
			return nil
		},
	}
}
