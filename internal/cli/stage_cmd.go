package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dkoval/hirepath/internal/cli/formatter"
	"github.com/dkoval/hirepath/internal/domain"
	"github.com/dkoval/hirepath/internal/service"
	"github.com/spf13/cobra"
)

func newStageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Manage pipeline stages",
	}

	cmd.AddCommand(
		newStageAddCmd(app),
		newStageListCmd(app),
		newStageShowCmd(app),
		newStageStatusCmd(app),
		newStageDataCmd(app),
		newStageMetaCmd(app),
		newStageRemoveCmd(app),
		newStageActiveCmd(app),
		newStageStatsCmd(app),
	)

	return cmd
}

func newStageAddCmd(app *App) *cobra.Command {
	var typeStr, title, dataStr, actor string
	var hidden bool

	cmd := &cobra.Command{
		Use:   "add APP_ID",
		Short: "Append a stage to an application's timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			appID, err := resolveApplicationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			stageType, err := domain.ParseStageType(typeStr)
			if err != nil {
				return err
			}

			draft := service.StageDraft{
				Type:                stageType,
				Title:               title,
				HiddenFromCandidate: hidden,
			}
			if dataStr != "" {
				if !json.Valid([]byte(dataStr)) {
					return fmt.Errorf("payload is not valid JSON: %q", dataStr)
				}
				draft.Data = json.RawMessage(dataStr)
			}

			stage, err := app.Pipeline.CreateStage(ctx, appID, draft, actor)
			if err != nil {
				return err
			}

			fmt.Printf("Added %s stage %s at position %d\n", stage.Type, stage.ID[:8], stage.Order)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeStr, "type", "", "Stage type (ai_interview, under_review, assignment, live_interview, offer, offer_accepted, disqualified)")
	cmd.Flags().StringVar(&title, "title", "", "Custom stage title")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "Hide the stage from the candidate")
	cmd.Flags().StringVar(&dataStr, "data", "", "Initial payload (JSON object)")
	cmd.Flags().StringVar(&actor, "by", "recruiter", "Acting user")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newStageListCmd(app *App) *cobra.Command {
	var roleStr string

	cmd := &cobra.Command{
		Use:   "list APP_ID",
		Short: "List an application's stages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			appID, err := resolveApplicationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			role, err := domain.ParseRole(roleStr)
			if err != nil {
				return err
			}

			stages, err := app.Pipeline.GetVisibleStages(ctx, appID, role)
			if err != nil {
				return err
			}
			if len(stages) == 0 {
				fmt.Println("No stages found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatStageList(stages))
			return nil
		},
	}

	cmd.Flags().StringVar(&roleStr, "role", "recruiter", "Viewing role (recruiter|candidate)")

	return cmd
}

func newStageShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show APP_ID STAGE",
		Short: "Show one stage with its payload",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			appID, err := resolveApplicationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			stage, err := resolveStage(ctx, app, appID, args[1])
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatStageDetail(stage))
			return nil
		},
	}
}

func newStageStatusCmd(app *App) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "status APP_ID STAGE NEW_STATUS",
		Short: "Change a stage's status",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			appID, err := resolveApplicationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			stage, err := resolveStage(ctx, app, appID, args[1])
			if err != nil {
				return err
			}
			status, err := domain.ParseStageStatus(args[2])
			if err != nil {
				return err
			}

			if err := app.Pipeline.UpdateStageStatus(ctx, stage.ID, status, actor); err != nil {
				return err
			}

			fmt.Printf("Stage %s is now %s\n", stage.ID[:8], status)
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "by", "recruiter", "Acting user")

	return cmd
}

func newStageDataCmd(app *App) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "data APP_ID STAGE JSON",
		Short: "Merge payload fields into a stage",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			appID, err := resolveApplicationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			stage, err := resolveStage(ctx, app, appID, args[1])
			if err != nil {
				return err
			}
			if !json.Valid([]byte(args[2])) {
				return fmt.Errorf("payload is not valid JSON: %q", args[2])
			}

			if err := app.Pipeline.AddStageData(ctx, stage.ID, json.RawMessage(args[2]), actor); err != nil {
				return err
			}

			fmt.Printf("Updated data on stage %s\n", stage.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "by", "recruiter", "Acting user")

	return cmd
}

func newStageMetaCmd(app *App) *cobra.Command {
	var title, actor string
	var hidden bool

	cmd := &cobra.Command{
		Use:   "meta APP_ID STAGE",
		Short: "Edit a stage's title or candidate visibility",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			appID, err := resolveApplicationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			stage, err := resolveStage(ctx, app, appID, args[1])
			if err != nil {
				return err
			}

			var titlePtr *string
			if cmd.Flags().Changed("title") {
				titlePtr = &title
			}
			var visiblePtr *bool
			if cmd.Flags().Changed("hidden") {
				visible := !hidden
				visiblePtr = &visible
			}
			if titlePtr == nil && visiblePtr == nil {
				return fmt.Errorf("nothing to change: pass --title or --hidden")
			}

			if err := app.Pipeline.UpdateStageMeta(ctx, stage.ID, titlePtr, visiblePtr, actor); err != nil {
				return err
			}

			fmt.Printf("Updated stage %s\n", stage.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Custom stage title")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "Hide the stage from the candidate")
	cmd.Flags().StringVar(&actor, "by", "recruiter", "Acting user")

	return cmd
}

func newStageRemoveCmd(app *App) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "rm APP_ID STAGE",
		Short: "Remove a stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			appID, err := resolveApplicationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			stage, err := resolveStage(ctx, app, appID, args[1])
			if err != nil {
				return err
			}

			if err := app.Pipeline.DeleteStage(ctx, stage.ID, actor); err != nil {
				return err
			}

			fmt.Printf("Removed stage %s\n", stage.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "by", "recruiter", "Acting user")

	return cmd
}

func newStageActiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "active APP_ID",
		Short: "Show the stage currently being worked on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			appID, err := resolveApplicationID(ctx, app, args[0])
			if err != nil {
				return err
			}

			stage, err := app.Pipeline.GetActiveStage(ctx, appID)
			if err != nil {
				return err
			}
			if stage == nil {
				fmt.Println("No active stage.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatStageDetail(stage))
			return nil
		},
	}
}

func newStageStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats APP_ID",
		Short: "Show aggregate stage counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			appID, err := resolveApplicationID(ctx, app, args[0])
			if err != nil {
				return err
			}

			stats, err := app.Pipeline.GetStageStats(ctx, appID)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatStageStats(formatter.StageStatsData{
				Total:     stats.Total,
				Completed: stats.Completed,
				ByStatus:  stats.ByStatus,
				ByType:    stats.ByType,
			}))
			return nil
		},
	}
}
