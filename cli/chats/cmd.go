// Package chats implements the non-interactive chat management commands.
package chats

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/timoelan/crudai/internal/api"
	"github.com/timoelan/crudai/internal/cli"
)

// NewCmd instantiates and returns the chats command and its subcommands.
func NewCmd(client *api.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chats",
		Short: "Manage your chats",
		Long:  "List, create, rename and delete chats without entering the TUI",
	}
	cmd.AddCommand(newListCmd(client))
	cmd.AddCommand(newCreateCmd(client))
	cmd.AddCommand(newRenameCmd(client))
	cmd.AddCommand(newDeleteCmd(client))
	return cmd
}

func newListCmd(client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your chats",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			chats := client.ListChats(context.Background())
			if len(chats) == 0 {
				cli.Info("no chats\n")
				return
			}
			cli.Title("CHATS")
			for _, chat := range chats {
				cli.UserOutput("%8d  %s", chat.ID, chat.Title)
				cli.Info("  (updated %s)\n", chat.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
		},
	}
}

func newCreateCmd(client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "create [title]",
		Short: "Create a chat",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			title := ""
			if len(args) == 1 {
				title = args[0]
			} else {
				var ok bool
				title, ok = cli.PromptString("Chat title:", "New Chat")
				if !ok {
					return
				}
			}
			chat := client.CreateChat(context.Background(), title)
			if chat == nil {
				cobra.CheckErr(errors.New("could not create the chat"))
			}
			cli.Info("created chat %d: %s\n", chat.ID, chat.Title)
		},
	}
}

func newRenameCmd(client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> [title]",
		Short: "Rename a chat",
		Args:  cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := strconv.ParseInt(args[0], 10, 64)
			cobra.CheckErr(errors.Wrap(err, "parsing chat id"))

			title := ""
			if len(args) == 2 {
				title = args[1]
			} else {
				var ok bool
				title, ok = cli.PromptString("New title:", "")
				if !ok {
					return
				}
			}
			chat := client.UpdateChat(context.Background(), id, title)
			if chat == nil {
				cobra.CheckErr(errors.New("could not rename the chat"))
			}
			cli.Info("renamed chat %d to %s\n", chat.ID, chat.Title)
		},
	}
}

func newDeleteCmd(client *api.Client) *cobra.Command {
	var opts struct {
		Force bool
	}
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a chat",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := strconv.ParseInt(args[0], 10, 64)
			cobra.CheckErr(errors.Wrap(err, "parsing chat id"))

			if !opts.Force && !cli.QueryUser("Delete this chat and all of its messages?") {
				return
			}
			if !client.DeleteChat(context.Background(), id) {
				cobra.CheckErr(errors.New("could not delete the chat"))
			}
			cli.Info("deleted chat %d\n", id)
		},
	}
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}
