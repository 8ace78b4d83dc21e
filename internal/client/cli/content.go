package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/spf13/cobra"
)

func levelFlag(cmd *cobra.Command, level *string) {
	cmd.Flags().StringVarP(level, "level", "l", string(models.LevelN5), "JLPT level, N5 to N1")
}

func newVocabCommand(rt *runtime) *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "List vocabulary for a level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}
			items, err := app.vocabulary.List(cmd.Context(), models.Level(strings.ToUpper(level)))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, v := range items {
				fmt.Fprintf(out, "%s【%s】 %s\n", v.Word, v.Reading, v.Meaning)
				if v.Example != "" {
					fmt.Fprintf(out, "    %s\n", v.Example)
				}
			}
			return nil
		},
	}
	levelFlag(cmd, &level)
	return cmd
}

func newGrammarCommand(rt *runtime) *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "List grammar points for a level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}
			points, err := app.grammar.List(cmd.Context(), models.Level(strings.ToUpper(level)))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, g := range points {
				fmt.Fprintf(out, "%s  %s\n    %s\n", g.Title, g.Pattern, g.Explanation)
				for _, ex := range g.Examples {
					fmt.Fprintf(out, "    ・%s\n", ex)
				}
			}
			return nil
		},
	}
	levelFlag(cmd, &level)
	return cmd
}

func newReadingCommand(rt *runtime) *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "reading [id]",
		Short: "List reading passages, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				p, err := app.reading.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s (%s)\n\n%s\n", p.Title, p.Level, p.Body)
				if p.Translation != "" {
					fmt.Fprintf(out, "\n%s\n", p.Translation)
				}
				for i, q := range p.Questions {
					fmt.Fprintf(out, "\nQ%d. %s", i+1, q)
				}
				if len(p.Questions) > 0 {
					fmt.Fprintln(out)
				}
				return nil
			}

			list, err := app.reading.List(cmd.Context(), models.Level(strings.ToUpper(level)))
			if err != nil {
				return err
			}
			for _, p := range list {
				fmt.Fprintf(out, "%-12s %s\n", p.ID, p.Title)
			}
			return nil
		},
	}
	levelFlag(cmd, &level)
	return cmd
}
