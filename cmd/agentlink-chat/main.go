// Command agentlink-chat is a terminal chat client driven entirely by
// the event stream: it renders session snapshots and offers input only
// when the stream says the user's turn has started.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	processing "github.com/lverhagen/agentlink/client"
	"github.com/lverhagen/agentlink/client/events"
	"github.com/lverhagen/agentlink/client/transport"
)

func main() {
	url := flag.String("url", "ws://localhost:8080/events", "event feed websocket url")
	token := flag.String("token", "", "bearer token for the event feed")
	session := flag.String("session", "", "session id to follow (defaults to the first one seen)")
	flag.Parse()

	if err := run(*url, *token, *session); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(url, token, sessionID string) error {
	processor := processing.NewProcessor()
	defer processor.Close()

	var feed *transport.Feed
	model := newChatModel(processor, sessionID, func(payload []byte) error {
		if feed == nil {
			return fmt.Errorf("event feed is not connected")
		}
		return feed.Send(payload)
	})
	program := tea.NewProgram(model, tea.WithAltScreen())

	unsubscribe := processor.Subscribe(func(n processing.Notification) {
		program.Send(snapshotMsg{notification: n})
	})
	defer unsubscribe()

	opts := []transport.Option{
		transport.WithEventCallback(func(event events.Event) {
			if _, err := processor.Dispatch(context.Background(), event); err != nil {
				program.Send(streamErrMsg{err: err})
			}
		}),
		transport.WithErrorCallback(func(err error) {
			program.Send(streamErrMsg{err: err})
		}),
	}
	if token != "" {
		opts = append(opts, transport.WithAuthToken(token))
	}

	var err error
	feed, err = transport.Dial(context.Background(), url, opts...)
	if err != nil {
		return fmt.Errorf("could not reach the event feed: %w", err)
	}
	defer feed.Close()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal ui failed: %w", err)
	}
	return nil
}
