package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/dmitrijs2005/kotoba/internal/client/services"
	"github.com/spf13/cobra"
)

// runChat sends each input line to ask and prints the reply until EOF or
// "exit"/"quit". Failed turns are reported and not kept in the history.
func runChat(ctx context.Context, p *prompter, out io.Writer, level models.Level,
	ask func(ctx context.Context, history []models.ChatMessage, prompt string, level models.Level) (models.ChatMessage, error),
) error {
	var history []models.ChatMessage

	for {
		fmt.Fprint(out, "you> ")
		line, err := p.Line()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		switch line {
		case "":
			continue
		case "exit", "quit":
			fmt.Fprintln(out, "またね！")
			return nil
		}

		reply, err := ask(ctx, history, line, level)
		if err != nil {
			fmt.Fprintf(out, "! %s\n", services.UserMessage(err))
			continue
		}

		history = append(history, models.ChatMessage{Role: models.ChatRoleUser, Content: line}, reply)
		fmt.Fprintf(out, "tutor> %s\n", reply.Content)
	}
}

func newChatCommand(rt *runtime) *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Practice with the AI tutor (type exit to leave)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := app.requireUser(); err != nil {
				return err
			}

			lvl, err := models.ParseLevel(strings.ToUpper(level))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Chatting at %s. Type exit to leave.\n", lvl)
			return runChat(cmd.Context(), rt.prompt, cmd.OutOrStdout(), lvl, app.chat.Ask)
		},
	}
	levelFlag(cmd, &level)
	return cmd
}
