// Package commands wires the bandung CLI. Each subcommand is a thin shell
// over the typed service packages; credentials persist between invocations
// through the on-disk credential store.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bandungjournal/bandung-client/apiclient"
	"github.com/bandungjournal/bandung-client/credstore"
	"github.com/bandungjournal/bandung-client/internal/config"
	"github.com/bandungjournal/bandung-client/session"
)

// app holds the lazily constructed client stack shared by all subcommands.
// Construction is deferred to first use so that help and completion never
// touch the filesystem.
type app struct {
	config config.Config

	client     *apiclient.Client
	controller *session.Controller
}

func (a *app) init() error {
	if a.client != nil {
		return nil
	}

	var storeOptions []credstore.FileStoreOption
	if passphrase := a.config.GetCredentialsPassphrase(); passphrase != "" {
		storeOptions = append(storeOptions, credstore.WithPassphrase(passphrase))
	}
	creds, err := credstore.NewFileStore(a.config.GetCredentialsDir(), storeOptions...)
	if err != nil {
		return fmt.Errorf("[app init] %w", err)
	}

	client, err := apiclient.NewClient(a.config.GetAPIBaseURL(), creds,
		apiclient.WithTimeout(a.config.GetRequestTimeout()),
		apiclient.WithUserAgent(a.config.GetUserAgent()),
		apiclient.WithAuthExpiredFunc(func() {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Session expired, please log in again."))
		}),
	)
	if err != nil {
		return fmt.Errorf("[app init] %w", err)
	}

	controller, err := session.NewController(client, creds)
	if err != nil {
		return fmt.Errorf("[app init] %w", err)
	}

	a.client = client
	a.controller = controller
	return nil
}

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd(c config.Config) *cobra.Command {
	a := &app{config: c}

	rootCmd := &cobra.Command{
		Use:           "bandung",
		Short:         "Command line reader for the Bandung Journal",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		newLoginCommand(a),
		newLogoutCommand(a),
		newRegisterCommand(a),
		newVerifyEmailCommand(a),
		newForgotPasswordCommand(a),
		newResetPasswordCommand(a),
		newAuthCommand(a),
		newArticlesCommand(a),
		newCategoriesCommand(a),
		newTagsCommand(a),
		newAuthorsCommand(a),
		newBookmarksCommand(a),
		newCommentsCommand(a),
		newProfileCommand(a),
		newTrendingCommand(a),
		newFeaturedCommand(a),
		newBreakingCommand(a),
		newNewsletterCommand(a),
	)

	return rootCmd
}
