package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/kotoba/internal/client/session"
	"github.com/spf13/cobra"
)

// authResult turns a terminal AuthState into command output.
func authResult(cmd *cobra.Command, s session.AuthState, verb string) error {
	switch s := s.(type) {
	case session.Success:
		fmt.Fprintf(cmd.OutOrStdout(), "%s as %s\n", verb, s.Email)
		return nil
	case session.Error:
		return errors.New(s.Message)
	default:
		return fmt.Errorf("unexpected state %T", s)
	}
}

func newLoginCommand(rt *runtime) *cobra.Command {
	var emailFlag string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to your account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}

			email, err := rt.prompt.TextOr(emailFlag, "Email")
			if err != nil {
				return err
			}
			password, err := rt.prompt.Password("Password")
			if err != nil {
				return err
			}

			c := session.NewLoginController(app.deps())
			defer c.ResetAllNotifications()

			c.UpdateUsername(email)
			c.UpdatePassword(password)
			return authResult(cmd, c.Login(cmd.Context()), "Signed in")
		},
	}
	cmd.Flags().StringVarP(&emailFlag, "email", "e", "", "account email")
	return cmd
}

func newRegisterCommand(rt *runtime) *cobra.Command {
	var nameFlag, emailFlag string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}

			name, err := rt.prompt.TextOr(nameFlag, "Name")
			if err != nil {
				return err
			}
			email, err := rt.prompt.TextOr(emailFlag, "Email")
			if err != nil {
				return err
			}
			password, err := rt.prompt.Password("Password")
			if err != nil {
				return err
			}
			confirm, err := rt.prompt.Password("Repeat password")
			if err != nil {
				return err
			}

			c := session.NewRegisterController(app.deps())
			defer c.ResetAllNotifications()

			c.UpdateName(name)
			c.UpdateEmail(email)
			c.UpdatePassword(password)
			c.UpdateConfirm(confirm)
			return authResult(cmd, c.Register(cmd.Context()), "Registered and signed in")
		},
	}
	cmd.Flags().StringVarP(&nameFlag, "name", "n", "", "your name")
	cmd.Flags().StringVarP(&emailFlag, "email", "e", "", "account email")
	return cmd
}

func newLogoutCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the signed-in account on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}
			if err := session.Logout(cmd.Context(), app.identity); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			id := app.identity.Identity()
			if !id.LoggedIn() {
				fmt.Fprintln(out, "Not signed in")
				return nil
			}
			fmt.Fprintf(out, "%s (%s)\n", id.Email.Value, id.UserID.Value)

			if exp, ok := app.identity.TokenExpiry(); ok {
				fmt.Fprintf(out, "Session expires %s\n", exp.Local().Format(time.DateTime))
			}

			u, err := app.users.Get(cmd.Context(), id.UserID.Value)
			if err != nil {
				return err
			}
			if u != nil {
				fmt.Fprintf(out, "Daily streak: %d\n", u.DailyStreak)
			}
			return nil
		},
	}
}

func newStatusCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the gateway is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}

			if err := app.auth.Ping(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "offline: %s\n", app.config.ServerURL)
				app.log.Debug(cmd.Context(), "ping failed", "error", err)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "online: %s\n", app.config.ServerURL)
			return nil
		},
	}
}

// flowResult turns a terminal FlowState into command output.
func flowResult(cmd *cobra.Command, s session.FlowState) error {
	switch s := s.(type) {
	case session.Done:
		fmt.Fprintln(cmd.OutOrStdout(), s.Message)
		return nil
	case session.Failed:
		return errors.New(s.Message)
	default:
		return fmt.Errorf("unexpected state %T", s)
	}
}

func newPassword(rt *runtime) (string, string, error) {
	pw, err := rt.prompt.Password("New password")
	if err != nil {
		return "", "", err
	}
	confirm, err := rt.prompt.Password("Repeat new password")
	if err != nil {
		return "", "", err
	}
	return pw, confirm, nil
}

func newForgotPasswordCommand(rt *runtime) *cobra.Command {
	var emailFlag string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Reset your password with a code sent by email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			email, err := rt.prompt.TextOr(emailFlag, "Email")
			if err != nil {
				return err
			}

			c := session.NewRecoveryController(app.deps())
			defer c.Reset()

			if err := flowResult(cmd, c.SendOTP(ctx, email)); err != nil {
				return err
			}

			code, err := rt.prompt.Text("Verification code")
			if err != nil {
				return err
			}
			if err := flowResult(cmd, c.VerifyOTP(ctx, email, code)); err != nil {
				return err
			}

			pw, confirm, err := newPassword(rt)
			if err != nil {
				return err
			}
			return flowResult(cmd, c.ChangePassword(ctx, pw, confirm))
		},
	}
	cmd.Flags().StringVarP(&emailFlag, "email", "e", "", "account email")
	return cmd
}

func newChangePasswordCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "change-password",
		Short: "Change the password of the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := app.requireUser(); err != nil {
				return err
			}

			pw, confirm, err := newPassword(rt)
			if err != nil {
				return err
			}
			c := session.NewRecoveryController(app.deps())
			return flowResult(cmd, c.ChangePassword(cmd.Context(), pw, confirm))
		},
	}
}
