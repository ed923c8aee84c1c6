package main

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"taskorganizer/internal/bootstrap"
	"taskorganizer/internal/config"
)

var Version = "dev"

// cli carries the application shared by subcommands. It is opened lazily in
// PersistentPreRunE so that --help works without a database.
type cli struct {
	app    *bootstrap.App
	logger *zap.Logger
}

func main() {
	c := &cli{}
	err := newRootCmd(c).Execute()
	if closeErr := c.close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (c *cli) now() time.Time {
	return time.Now()
}

func (c *cli) close() error {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
	if c.app == nil {
		return nil
	}
	return c.app.Close()
}

func newRootCmd(c *cli) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "taskctl",
		Short:         "Operate the task organizer: reviews, git import, migrations",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.NewNop()
			if verbose {
				var err error
				if logger, err = zap.NewDevelopment(); err != nil {
					return err
				}
			}
			zap.ReplaceGlobals(logger)
			c.logger = logger

			app, err := bootstrap.New(cmd.Context(), config.LoadConfig(), logger)
			if err != nil {
				return err
			}
			c.app = app
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr")

	rootCmd.AddCommand(reviewCmd(c))
	rootCmd.AddCommand(importGitCmd(c))
	rootCmd.AddCommand(briefingCmd(c))
	rootCmd.AddCommand(migrateCmd(c))

	return rootCmd
}
