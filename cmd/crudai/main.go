package main

import (
	"github.com/spf13/cobra"

	"github.com/timoelan/crudai/cli/chat"
	"github.com/timoelan/crudai/cli/chats"
	"github.com/timoelan/crudai/cli/user"
	"github.com/timoelan/crudai/internal/api"
	"github.com/timoelan/crudai/internal/auth"
	"github.com/timoelan/crudai/internal/configuration"
	"github.com/timoelan/crudai/webserver"
)

const configFilepath = "~/.config/crudai/config.json"

var rootCmd = &cobra.Command{
	Use:     "crudai",
	Short:   "A terminal client for the crudai chat backend",
	Version: "1.0",
}

func main() {
	config, err := configuration.Parse(configFilepath)
	if err != nil {
		panic(err)
	}

	// Auth is an optional capability: without an OIDC configuration every
	// request goes out unauthenticated and the backend decides what that
	// is allowed to do.
	var gate auth.Gate = auth.Disabled{}
	if config.Auth != nil && config.Auth.Enabled {
		oidc, err := auth.NewOIDC(config.Auth)
		if err != nil {
			panic(err)
		}
		gate = oidc
	}

	client := api.New(config, gate)

	rootCmd.AddCommand(chat.NewCmd(config, client, gate))
	rootCmd.AddCommand(chats.NewCmd(client))
	rootCmd.AddCommand(user.NewLoginCmd(client, gate))
	rootCmd.AddCommand(user.NewLogoutCmd(gate))
	rootCmd.AddCommand(user.NewWhoamiCmd(client, gate))
	rootCmd.AddCommand(webserver.NewServeCmd(client))
	rootCmd.Execute()
}
