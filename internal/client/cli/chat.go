package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// chatFallback is shown when the generative API call fails; the failure is
// recorded in the conversation like any other bot message.
const chatFallback = "Sorry, I encountered an error. Please try again."

// Chat sends a message to the chatbot. Both sides of the exchange are
// persisted server-side so the history follows the account. "chat history"
// prints the stored conversation, "chat clear" wipes it.
func (a *App) Chat(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: chat <message> | chat history | chat clear")
	}

	switch args[0] {
	case "history":
		messages, err := a.api.ChatHistory(ctx)
		if err != nil {
			return err
		}
		for _, msg := range messages {
			who := "you"
			if msg.IsBot {
				who = "orion"
			}
			fmt.Fprintf(a.out, "%s: %s\n", who, msg.Text)
		}
		return nil

	case "clear":
		if err := a.api.ClearChatHistory(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Chat history cleared")
		return nil
	}

	text := strings.Join(args, " ")
	if _, err := a.api.SaveChatMessage(ctx, text, false); err != nil {
		return err
	}

	reply, err := a.bot.Generate(ctx, text)
	if err != nil {
		reply = chatFallback
	}
	if _, err := a.api.SaveChatMessage(ctx, reply, true); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "orion: %s\n", reply)
	return nil
}
