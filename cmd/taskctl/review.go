package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"taskorganizer/internal/adapter/http/mapper"
	"taskorganizer/internal/adapter/http/validation"
)

func reviewCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Generate daily or weekly reviews",
	}
	cmd.AddCommand(reviewDailyCmd(c))
	cmd.AddCommand(reviewWeeklyCmd(c))
	return cmd
}

func reviewDailyCmd(c *cli) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Generate and store the review of one day (today by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := c.now().In(c.app.Location)
			if date != "" {
				parsed, err := validation.ParseReviewDate(date, c.app.Location)
				if err != nil {
					return err
				}
				day = parsed
			}

			review, err := c.app.ReviewService.GenerateDailyReview(cmd.Context(), day)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), mapper.ToDailyReviewItem(review))
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to review (YYYY-MM-DD)")
	return cmd
}

func reviewWeeklyCmd(c *cli) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Generate and store a review of a date range (last 7 days by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := validation.WeeklyRange(optional(start), optional(end), c.now(), c.app.Location)
			if err != nil {
				return err
			}

			review, err := c.app.ReviewService.GenerateWeeklyReview(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), mapper.ToWeeklyReviewItem(review))
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Last day (YYYY-MM-DD)")
	return cmd
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
