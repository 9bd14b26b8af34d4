package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mission-tracker/internal/client"
	"mission-tracker/internal/config"
)

func main() {
	cfg := config.LoadCLI()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "missionctl",
		Short:        "Mission 10K progress tracker CLI",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiBase, "api", apiBase, "base URL of the tracker API")

	root.AddCommand(
		newBootstrapCmd(&apiBase),
		newRegisterCmd(&apiBase),
		newMilestonesCmd(&apiBase),
		newCompleteCmd(&apiBase),
		newStatusCmd(&apiBase),
		newHealthCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *client.Client {
	return client.NewClient(&config.CLIConfig{
		APIBaseURL: strings.TrimRight(strings.TrimSpace(*apiBase), "/"),
	})
}

func newBootstrapCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Seed the milestone catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).Bootstrap(ctx)
			if err != nil {
				return err
			}
			if out.MilestonesCreated == 0 {
				printInfo("Catalog already seeded; nothing to create.")
				return nil
			}
			printSuccess(fmt.Sprintf("Catalog seeded: %d milestones created.", out.MilestonesCreated))
			return nil
		},
	}
}

func newRegisterCmd(apiBase *string) *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a player (idempotent by email)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || email == "" {
				return fmt.Errorf("--name and --email are required")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).RegisterPlayer(ctx, name, email)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Player ready: %s", out.PlayerID))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "player display name")
	cmd.Flags().StringVar(&email, "email", "", "player email")
	return cmd
}

func newMilestonesCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "milestones",
		Short: "List the milestone catalog in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).Milestones(ctx)
			if err != nil {
				return err
			}
			return renderMilestones(out)
		},
	}
}

func newCompleteCmd(apiBase *string) *cobra.Command {
	var email, milestone, speed string
	var revenue float64
	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Record a milestone completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || milestone == "" {
				return fmt.Errorf("--email and --milestone are required")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).Complete(ctx, email, milestone, speed, revenue)
			if err != nil {
				return err
			}
			return renderCompletion(out)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "player email")
	cmd.Flags().StringVar(&milestone, "milestone", "", "milestone id (e.g. m3)")
	cmd.Flags().StringVar(&speed, "speed", "", "completion speed: fast, normal or slow")
	cmd.Flags().Float64Var(&revenue, "revenue", 0, "revenue increase in USD")
	return cmd
}

func newStatusCmd(apiBase *string) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a player's progress against the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			apiClient := newClient(apiBase)

			var summary *client.PlayerSummary
			var milestones []client.Milestone

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				summary, err = apiClient.Summary(gctx, email)
				return err
			})
			g.Go(func() error {
				var err error
				milestones, err = apiClient.Milestones(gctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			return renderStatus(summary, milestones)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "player email")
	return cmd
}

func newHealthCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check API and storage connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).Health(ctx)
			if err != nil {
				return err
			}
			return renderHealth(out)
		},
	}
}
