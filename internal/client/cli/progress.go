package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/dmitrijs2005/kotoba/internal/timex"
	"github.com/spf13/cobra"
)

func newProgressCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Track your study progress on this device",
	}
	cmd.AddCommand(
		newProgressListCommand(rt),
		newProgressTodayCommand(rt),
		newProgressRecordCommand(rt),
	)
	return cmd
}

func newProgressListCommand(rt *runtime) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List progress per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}
			userID, err := app.requireUser()
			if err != nil {
				return err
			}

			var rows []models.LearningProgress
			if category == "" {
				rows, err = app.progress.AllForUser(cmd.Context(), userID)
			} else {
				rows, err = app.progress.ByCategory(cmd.Context(), userID, category)
			}
			if err != nil {
				return err
			}

			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No progress recorded yet.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tLEVEL\tDONE\tTOTAL\t%\tLAST STUDY")
			for _, p := range rows {
				last := "-"
				if !p.LastStudyDate.IsZero() {
					last = p.LastStudyDate.Local().Format(time.DateTime)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.0f\t%s\n",
					p.Category, p.Subcategory, p.CompletedItems, p.TotalItems, p.Percentage(), last)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only this category (vocabulary, grammar, reading)")
	return cmd
}

func newProgressTodayCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show how many items you completed today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}
			userID, err := app.requireUser()
			if err != nil {
				return err
			}

			n, err := app.progress.CompletedToday(cmd.Context(), userID, timex.StartOfDay(time.Now()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed today: %d\n", n)
			return nil
		},
	}
}

func newProgressRecordCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "record <category> <subcategory> <completed> <total>",
		Short: "Record a study session",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}
			userID, err := app.requireUser()
			if err != nil {
				return err
			}

			completed, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("completed must be a number: %w", err)
			}
			total, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("total must be a number: %w", err)
			}

			ctx := cmd.Context()
			p, err := app.progress.RecordStudy(ctx, userID, args[0], args[1], total, completed)
			if err != nil {
				return err
			}
			if _, err := app.users.RecordActivity(ctx, userID, time.Now()); err != nil {
				app.log.Warn(ctx, "failed to record activity", "user_id", userID, "error", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d/%d (%.0f%%)\n",
				p.Category, p.Subcategory, p.CompletedItems, p.TotalItems, p.Percentage())
			return nil
		},
	}
}
