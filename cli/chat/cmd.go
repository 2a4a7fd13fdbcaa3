package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.design/x/clipboard"

	"github.com/timoelan/crudai/cli/chat/types"
	"github.com/timoelan/crudai/internal/api"
	"github.com/timoelan/crudai/internal/auth"
	"github.com/timoelan/crudai/internal/configuration"
	"github.com/timoelan/crudai/internal/session"
)

// NewCmd instantiates and returns the chat command.
func NewCmd(config *configuration.Config, client *api.Client, gate auth.Gate) *cobra.Command {
	var opts struct {
		Plain bool
	}
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat",
		Long:  "Interactive chat with a sidebar of your chats and an AI reply for every message",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			sess := session.NewStore()

			if opts.Plain {
				cobra.CheckErr(runPlain(ctx, client, gate, sess))
				return
			}

			m, err := NewModel(ctx, client, sess)
			cobra.CheckErr(err)
			m.thread.SetClipboardAvailable(clipboard.Init() == nil)

			p := tea.NewProgram(m, tea.WithAltScreen())

			// Auth state flows into the program as messages. The
			// subscription delivers the current state immediately, so
			// the sidebar loads without waiting for a poll.
			unsubscribe := gate.Subscribe(func(state auth.State) {
				p.Send(types.AuthStateMsg{State: state})
			})
			defer unsubscribe()

			// Poll as a fallback for gates that cannot push expiry.
			if oidc, ok := gate.(*auth.OIDC); ok && config.Auth != nil && config.Auth.PollInterval > 0 {
				stop := oidc.StartPolling(time.Duration(config.Auth.PollInterval) * time.Second)
				defer stop()
			}

			_, err = p.Run()
			cobra.CheckErr(err)
		},
	}
	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "line-based chat without the TUI")
	return cmd
}
