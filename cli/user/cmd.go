// Package user implements the account commands: login, logout and whoami.
package user

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/timoelan/crudai/internal/api"
	"github.com/timoelan/crudai/internal/auth"
	"github.com/timoelan/crudai/internal/cli"
)

var errAuthDisabled = errors.New("authentication is not configured. Set auth0_domain and auth0_client_id in the config file or AUTH0_DOMAIN/AUTH0_CLIENT_ID in the environment")

// NewLoginCmd instantiates and returns the login command.
func NewLoginCmd(client *api.Client, gate auth.Gate) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in through the browser",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			oidc, ok := gate.(*auth.OIDC)
			if !ok {
				cobra.CheckErr(errAuthDisabled)
			}
			ctx := context.Background()
			cobra.CheckErr(oidc.Login(ctx))

			state := oidc.State()
			if state.Profile != nil && state.Profile.Email != "" {
				cli.Info("signed in as %s\n", state.Profile.Email)
			} else {
				cli.Info("signed in\n")
			}

			// The backend provisions the user row on first contact.
			if user := client.GetCurrentUser(ctx); user != nil && user.Username != "" {
				cli.Info("welcome back, %s\n", user.Username)
			}
		},
	}
}

// NewLogoutCmd instantiates and returns the logout command.
func NewLogoutCmd(gate auth.Gate) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored credentials",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			oidc, ok := gate.(*auth.OIDC)
			if !ok {
				cobra.CheckErr(errAuthDisabled)
			}
			cobra.CheckErr(oidc.Logout())
			cli.Info("signed out\n")
		},
	}
}

// NewWhoamiCmd instantiates and returns the whoami command.
func NewWhoamiCmd(client *api.Client, gate auth.Gate) *cobra.Command {
	var opts struct {
		SetName     string
		SetUsername string
	}
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			if !gate.State().Authenticated {
				cobra.CheckErr(errors.New("not signed in. Run `crudai login` first"))
			}
			ctx := context.Background()

			if opts.SetName != "" || opts.SetUsername != "" {
				request := api.UpdateUserRequest{}
				if opts.SetName != "" {
					request.Name = &opts.SetName
				}
				if opts.SetUsername != "" {
					request.Username = &opts.SetUsername
				}
				if client.UpdateCurrentUser(ctx, request) == nil {
					cobra.CheckErr(errors.New("could not update the profile"))
				}
			}

			user := client.GetCurrentUser(ctx)
			if user == nil {
				cobra.CheckErr(errors.New("could not fetch the profile"))
			}
			cli.Title("PROFILE")
			cli.UserOutput("username: %s\n", user.Username)
			cli.UserOutput("name:     %s\n", user.Name)
			cli.UserOutput("email:    %s\n", user.Email)
		},
	}
	cmd.Flags().StringVar(&opts.SetName, "set-name", "", "update the display name")
	cmd.Flags().StringVar(&opts.SetUsername, "set-username", "", "update the username")
	return cmd
}
