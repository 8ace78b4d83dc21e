package cli

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/spf13/cobra"
)

func printProfile(cmd *cobra.Command, p models.UserProfile) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:   %s\n", p.FullName)
	fmt.Fprintf(out, "Email:  %s\n", p.Email)
	if p.Phone != "" {
		fmt.Fprintf(out, "Phone:  %s\n", p.Phone)
	}
	fmt.Fprintf(out, "Level:  %s\n", p.Level)
	if p.Bio != "" {
		fmt.Fprintf(out, "Bio:    %s\n", p.Bio)
	}
	if p.AvatarURL != nil {
		fmt.Fprintf(out, "Avatar: %s\n", *p.AvatarURL)
	}
}

func newProfileCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile",
	}
	cmd.AddCommand(
		newProfileShowCommand(rt),
		newProfileUpdateCommand(rt),
		newProfileAvatarCommand(rt),
	)
	return cmd
}

func newProfileShowCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}
			p, err := app.profileController().GetProfile(cmd.Context())
			if err != nil {
				return err
			}
			printProfile(cmd, p)
			return nil
		},
	}
}

func newProfileUpdateCommand(rt *runtime) *cobra.Command {
	var nameFlag, emailFlag, phoneFlag string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change display name, email and phone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}

			name, err := rt.prompt.TextOr(nameFlag, "Display name")
			if err != nil {
				return err
			}
			email, err := rt.prompt.TextOr(emailFlag, "Email")
			if err != nil {
				return err
			}
			phone, err := rt.prompt.TextOr(phoneFlag, "Phone")
			if err != nil {
				return err
			}

			c := app.profileController()
			if err := c.UpdateProfile(cmd.Context(), name, email, phone); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
			return nil
		},
	}
	cmd.Flags().StringVarP(&nameFlag, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&emailFlag, "email", "e", "", "email")
	cmd.Flags().StringVarP(&phoneFlag, "phone", "p", "", "phone number, digits only")
	return cmd
}

func newProfileAvatarCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "avatar <image>",
		Short: "Upload a new avatar (JPEG, PNG, GIF, BMP or WebP)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			url, err := app.profileController().UpdateAvatar(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Avatar uploaded: %s\n", url)
			return nil
		},
	}
}
