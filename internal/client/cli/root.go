package cli

import (
	"context"
	"errors"
	"io"

	"github.com/dmitrijs2005/kotoba/internal/client/config"
	"github.com/dmitrijs2005/kotoba/internal/logging"
	"github.com/spf13/cobra"
)

// runtime is shared by the commands of one Run. The App is opened lazily
// so that help and completion never touch the database.
type runtime struct {
	cfg    *config.Config
	log    logging.Logger
	app    *App
	prompt *prompter
}

func (rt *runtime) App(ctx context.Context) (*App, error) {
	if rt.app != nil {
		return rt.app, nil
	}
	if rt.cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	app, err := NewApp(ctx, rt.cfg, rt.log)
	if err != nil {
		return nil, err
	}
	rt.app = app
	return app, nil
}

func (rt *runtime) close() error {
	if rt.app == nil {
		return nil
	}
	return rt.app.Close()
}

// Run executes the kotoba command line args with the given streams.
func Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	rt := &runtime{}

	root := newRootCommand(rt)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if cerr := rt.close(); err == nil {
		err = cerr
	}
	return err
}

func newRootCommand(rt *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:           "kotoba",
		Short:         "Learn Japanese from the terminal",
		Long:          "kotoba: vocabulary, grammar, graded reading and an AI tutor for JLPT N5 to N1.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Context(), cmd.Flags())
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.LogFormat, cfg.LogLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			rt.cfg, rt.log = cfg, log
			rt.prompt = newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			return nil
		},
	}

	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newRegisterCommand(rt),
		newLoginCommand(rt),
		newLogoutCommand(rt),
		newWhoamiCommand(rt),
		newStatusCommand(rt),
		newForgotPasswordCommand(rt),
		newChangePasswordCommand(rt),
		newProfileCommand(rt),
		newProgressCommand(rt),
		newVocabCommand(rt),
		newGrammarCommand(rt),
		newReadingCommand(rt),
		newChatCommand(rt),
	)
	return root
}
