package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	errs "github.com/bandungjournal/bandung-client/internal/errors"
	"github.com/bandungjournal/bandung-client/session"
)

func newLoginCommand(a *app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Args:  cobra.ExactArgs(1),
		Short: "Sign in and save the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			if password == "" {
				var err error
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			user, err := a.controller.Login(cmd.Context(), args[0], password)
			if err != nil {
				if errs.Is(err, errs.ErrInvalidCredentials) {
					return fmt.Errorf("invalid email or password")
				}
				return err
			}

			fmt.Println(successStyle.Render("Logged in as " + user.Name))
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Args:  cobra.NoArgs,
		Short: "Sign out and discard the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			a.controller.Logout(cmd.Context())
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newRegisterCommand(a *app) *cobra.Command {
	var name, password string

	cmd := &cobra.Command{
		Use:   "register <email>",
		Args:  cobra.ExactArgs(1),
		Short: "Create an account (a verification code is emailed to you)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			if password == "" {
				var err error
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			registration, err := a.controller.Register(cmd.Context(), name, args[0], password)
			if err != nil {
				return err
			}

			fmt.Println(successStyle.Render("Account created for " + registration.User.Email))
			fmt.Println(renderField("User ID", registration.User.ID))
			if !registration.OTPExpiresAt.IsZero() {
				fmt.Println(renderField("Code expires", renderTimestamp(registration.OTPExpiresAt)))
			}
			fmt.Println(dimStyle.Render("Check your inbox, then run: bandung verify-email " + registration.User.ID + " <code>"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newVerifyEmailCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify-email <user-id> <code>",
		Args:  cobra.ExactArgs(2),
		Short: "Confirm a registration with the emailed six digit code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			if err := a.controller.VerifyEmail(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println(successStyle.Render("Email verified. You can now log in."))
			return nil
		},
	}
}

func newForgotPasswordCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password <email>",
		Args:  cobra.ExactArgs(1),
		Short: "Request a password reset code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			if err := a.controller.ForgotPassword(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("If that address has an account, a reset code is on its way.")
			return nil
		},
	}
}

func newResetPasswordCommand(a *app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "reset-password <email> <code>",
		Args:  cobra.ExactArgs(2),
		Short: "Set a new password using a reset code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			if password == "" {
				var err error
				password, err = promptPassword("New password: ")
				if err != nil {
					return err
				}
			}
			if err := a.controller.ResetPassword(cmd.Context(), args[0], args[1], password); err != nil {
				return err
			}
			fmt.Println(successStyle.Render("Password updated. Log in with the new password."))
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "new password (prompted when omitted)")
	return cmd
}

func newAuthCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Args:  cobra.NoArgs,
		Short: "Session inspection commands",
	}

	cmd.AddCommand(
		newAuthStatusCommand(a),
		newResendVerificationCommand(a),
		newResendResetCodeCommand(a),
	)
	return cmd
}

func newAuthStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Args:  cobra.NoArgs,
		Short: "Show who is logged in and when the access token expires",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			if a.controller.State() != session.StateAuthenticated {
				fmt.Println("Not logged in.")
				return nil
			}

			user := a.controller.User()
			fmt.Println(renderField("Name", user.Name))
			fmt.Println(renderField("Email", user.Email))
			fmt.Println(renderField("Role", string(user.Role)))
			if expiry := tokenExpiry(a.controller.Token()); !expiry.IsZero() {
				line := renderField("Token expires", renderTimestamp(expiry))
				if expiry.Before(time.Now()) {
					line += " " + dimStyle.Render("(stale, refreshed on next request)")
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func newResendVerificationCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resend-verification <email>",
		Args:  cobra.ExactArgs(1),
		Short: "Email a fresh verification code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			userID, err := a.controller.ResendVerification(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println("Verification code sent.")
			if userID != "" {
				fmt.Println(dimStyle.Render("Verify with: bandung verify-email " + userID + " <code>"))
			}
			return nil
		},
	}
}

func newResendResetCodeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resend-reset-code <email>",
		Args:  cobra.ExactArgs(1),
		Short: "Email a fresh password reset code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			if err := a.controller.ResendResetCode(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Reset code sent.")
			return nil
		},
	}
}

// tokenExpiry extracts the exp claim without verifying the signature. The
// client never validates tokens, the server does that on every request.
func tokenExpiry(rawToken string) time.Time {
	if rawToken == "" {
		return time.Time{}
	}
	unverifiedToken, _, err := jwt.NewParser().ParseUnverified(rawToken, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	expiresAt, err := unverifiedToken.Claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return time.Time{}
	}
	return expiresAt.Time
}

func promptPassword(prompt string) (string, error) {
	stdinFd := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFd) {
		return "", fmt.Errorf("no terminal available for password prompt, use --password")
	}

	fmt.Fprint(os.Stderr, prompt)
	passwordBytes, err := term.ReadPassword(stdinFd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("[promptPassword] %w", err)
	}
	return string(passwordBytes), nil
}
