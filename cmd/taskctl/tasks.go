package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskorganizer/internal/adapter/http/mapper"
)

func importGitCmd(c *cli) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "import-git",
		Short: "Create tasks from recent commits of GIT_REPO_PATH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := c.app.TaskService.ImportCommits(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), mapper.ToTaskItems(tasks, c.now(), c.app.Location))
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum commits to read")
	return cmd
}

func briefingCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "briefing",
		Short: "Print today's briefing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			briefing, err := c.app.TaskService.Briefing(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), mapper.ToBriefingItem(briefing, c.now(), c.app.Location))
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), briefing.Render())
			return err
		},
	}
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")
	return cmd
}

func migrateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema on the configured stores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Opening the app already migrated every reachable store.
			store := "local"
			if c.app.Remote != nil {
				store = c.app.Remote.DriverName()
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s store)\n", store)
			return err
		},
	}
}
