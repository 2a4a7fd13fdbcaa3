package chat

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"

	"github.com/timoelan/crudai/cli/chat/thread"
	"github.com/timoelan/crudai/internal/api"
	"github.com/timoelan/crudai/internal/auth"
	"github.com/timoelan/crudai/internal/cli"
	"github.com/timoelan/crudai/internal/session"
)

// runPlain is the --plain rendition of the chat: a readline loop against the
// same backend flow as the TUI. The first message creates the chat.
func runPlain(ctx context.Context, client *api.Client, gate auth.Gate, sess *session.Store) error {
	if !gate.State().Authenticated {
		return errors.New("not signed in. Run `crudai login` first")
	}

	cli.Title("CRUDAI CHAT")
	cli.Info("Type a message to start a new chat. Ctrl+C or Ctrl+D to quit.\n")
	cli.Separator()

	historyFile := filepath.Join(os.TempDir(), "crudai.history")
	for {
		content, err := cli.PromptUser(historyFile)
		if err == readline.ErrInterrupt || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading input")
		}
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}

		if sess.InPlaceholder() {
			chat := client.CreateChat(ctx, thread.TitleFromContent(content))
			if chat == nil {
				cli.Error("could not create the chat\n")
				continue
			}
			sess.Activate(chat)
			cli.Info("chat %q created\n", chat.Title)
		}

		message := client.SendMessage(ctx, sess.ActiveID(), content, true)
		if message == nil {
			cli.Error("could not send the message\n")
			continue
		}

		reply := client.GenerateReply(ctx, sess.ActiveID())
		cli.Separator()
		if reply == nil {
			cli.Error("AI reply unavailable\n")
		} else {
			cli.AIOutput(reply.Content + "\n")
		}
		cli.Separator()
	}
}
