package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bandungjournal/bandung-client/newspaper"
	"github.com/bandungjournal/bandung-client/profile"
)

func newProfileCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Args:  cobra.NoArgs,
		Short: "View and edit your account profile (requires login)",
	}

	cmd.AddCommand(
		newProfileShowCommand(a),
		newProfileUpdateCommand(a),
	)
	return cmd
}

func newProfileShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Args:  cobra.NoArgs,
		Short: "Show your profile as the server sees it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			user, err := profile.NewService(a.client).Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(renderField("Name", user.Name))
			fmt.Println(renderField("Email", user.Email))
			fmt.Println(renderField("Role", string(user.Role)))
			if user.Bio != "" {
				fmt.Println(renderField("Bio", user.Bio))
			}
			return nil
		},
	}
}

func newProfileUpdateCommand(a *app) *cobra.Command {
	var name, avatarURL string
	var clearAvatar bool

	cmd := &cobra.Command{
		Use:   "update",
		Args:  cobra.NoArgs,
		Short: "Update your display name or avatar",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			svc := profile.NewService(a.client)

			var updated bool
			if name != "" {
				user, err := svc.Update(cmd.Context(), name)
				if err != nil {
					return err
				}
				if err := a.controller.ReplaceUser(user); err != nil {
					return err
				}
				updated = true
			}
			if avatarURL != "" || clearAvatar {
				user, err := svc.UpdateAvatar(cmd.Context(), avatarURL)
				if err != nil {
					return err
				}
				if err := a.controller.ReplaceUser(user); err != nil {
					return err
				}
				updated = true
			}
			if !updated {
				return fmt.Errorf("nothing to update, pass --name, --avatar-url, or --clear-avatar")
			}

			fmt.Println(successStyle.Render("Profile updated."))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&avatarURL, "avatar-url", "", "new avatar image URL")
	cmd.Flags().BoolVar(&clearAvatar, "clear-avatar", false, "remove the avatar")
	return cmd
}

func newNewsletterCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "newsletter",
		Args:  cobra.NoArgs,
		Short: "Manage a newsletter subscription",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "subscribe <email>",
			Args:  cobra.ExactArgs(1),
			Short: "Subscribe an address to the daily newsletter",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.init(); err != nil {
					return err
				}
				subscription, err := newspaper.NewService(a.client).SubscribeNewsletter(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Println(successStyle.Render("Subscribed " + subscription.Email))
				return nil
			},
		},
		&cobra.Command{
			Use:   "unsubscribe <email>",
			Args:  cobra.ExactArgs(1),
			Short: "Remove an address from the newsletter",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.init(); err != nil {
					return err
				}
				if err := newspaper.NewService(a.client).UnsubscribeNewsletter(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Println("Unsubscribed.")
				return nil
			},
		},
	)
	return cmd
}
