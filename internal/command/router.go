// Package command interprets channel messages addressed to the bot: dot
// commands, saved-reply registration, answer navigation, and the fallback
// question flow. Routing is an ordered rule table; the first matching rule
// wins, so overlapping prefixes are resolved by position.
package command

import (
	"context"
	"log/slog"
	"strings"

	"ansa.app/bridge/core/config"
	"ansa.app/bridge/internal/chat"
	"ansa.app/bridge/internal/convo"
	"ansa.app/bridge/internal/model"
	"ansa.app/bridge/internal/responder"
)

// Context identifies who a message belongs to: the workspace bot, the
// responder token of the account that installed it, and the channel.
type Context struct {
	Bot       model.Bot
	UserToken string
	Channel   string
}

type rule struct {
	name    string
	matches func(c Context, message string) (bool, error)
	run     func(ctx context.Context, c Context, message string) error
}

// Router dispatches incoming messages to actions and handles answer
// feedback. All outgoing traffic goes through the chat client; all knowledge
// operations go through the responder.
type Router struct {
	chat        chat.Client
	backend     responder.Client
	convo       *convo.Store
	threshold   float64
	answerCount int
	rules       []rule
}

func NewRouter(chatClient chat.Client, backend responder.Client, states *convo.Store, cfg config.ResponderConfig) *Router {
	r := &Router{
		chat:        chatClient,
		backend:     backend,
		convo:       states,
		threshold:   cfg.ConfidenceThreshold,
		answerCount: cfg.AnswerCount,
	}

	r.rules = []rule{
		{
			name: "echo",
			matches: func(c Context, message string) (bool, error) {
				return strings.HasPrefix(message, ".echo") || r.convo.EchoActive(r.key(c)), nil
			},
			run: r.echo,
		},
		{
			name: "add_saved_reply",
			matches: func(c Context, message string) (bool, error) {
				return strings.HasPrefix(message, ".add") ||
					strings.HasPrefix(message, ".new") ||
					strings.Contains(message, "|"), nil
			},
			run: r.addSavedReply,
		},
		{
			name: "help",
			matches: func(c Context, message string) (bool, error) {
				return hasAnyPrefix(message, ".help", ".man"), nil
			},
			run: r.help,
		},
		{
			name: "next_answer",
			matches: func(c Context, message string) (bool, error) {
				return hasAnyPrefix(message, ".next", ".more"), nil
			},
			run: r.nextAnswer,
		},
		{
			name: "explain",
			matches: func(c Context, message string) (bool, error) {
				return hasAnyPrefix(message, ".explain", ".why", ".context", ".conf", ".score", ".index"), nil
			},
			run: r.explain,
		},
		{
			name: "ask",
			matches: func(c Context, message string) (bool, error) {
				return true, nil
			},
			run: r.askQuestion,
		},
	}

	return r
}

// Dispatch runs the first rule whose predicate matches the message. A
// predicate failure is logged and treated as a non-match rather than
// aborting routing.
func (r *Router) Dispatch(ctx context.Context, c Context, message string) error {
	for _, rl := range r.rules {
		matched, err := rl.matches(c, message)
		if err != nil {
			slog.WarnContext(ctx, "rule predicate failed",
				"rule", rl.name,
				"error", err)
			continue
		}
		if !matched {
			continue
		}

		slog.DebugContext(ctx, "message routed", "rule", rl.name)
		return rl.run(ctx, c, message)
	}
	return nil
}

func (r *Router) key(c Context) convo.Key {
	return convo.Key{BotID: c.Bot.SlackBotID, Channel: c.Channel}
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
