package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"ansa.app/bridge/common/logger"
	"ansa.app/bridge/internal/chat"
	"ansa.app/bridge/internal/command"
	"ansa.app/bridge/internal/convo"
	"ansa.app/bridge/internal/dedup"
	"ansa.app/bridge/internal/model"
	"ansa.app/bridge/internal/responder"
	"ansa.app/bridge/internal/store"
)

// WebhookEvent is the inner event object of a Slack Events API delivery.
// Only the fields the bridge acts on are bound.
type WebhookEvent struct {
	Type     string         `json:"type"`
	Subtype  string         `json:"subtype"`
	Channel  string         `json:"channel"`
	TS       string         `json:"ts"`
	Text     string         `json:"text"`
	Reaction string         `json:"reaction"`
	Item     *ReactionItem  `json:"item,omitempty"`
	Message  *EditedMessage `json:"message,omitempty"`
	File     *SharedFile    `json:"file,omitempty"`
	Tokens   *RevokedTokens `json:"tokens,omitempty"`
}

// ReactionItem points at the message a reaction was placed on.
type ReactionItem struct {
	Channel string `json:"channel"`
	TS      string `json:"ts"`
}

// EditedMessage carries the replacement text of a message_changed event.
type EditedMessage struct {
	Text string `json:"text"`
}

// SharedFile is the file object attached to a file_share event.
type SharedFile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Title      string `json:"title"`
	Filetype   string `json:"filetype"`
	URLPrivate string `json:"url_private"`
}

// RevokedTokens lists token owners invalidated by a tokens_revoked event.
type RevokedTokens struct {
	Bot []string `json:"bot"`
}

type EventParams struct {
	EventID     string
	AuthedUsers []string
	Event       WebhookEvent
}

// EventService processes a deduplicated webhook event end to end.
type EventService interface {
	Process(ctx context.Context, params EventParams) error
}

var ErrBotNotRegistered = errors.New("bot not registered")

// mailtoPattern matches Slack's mailto markup; the display text is kept.
var mailtoPattern = regexp.MustCompile(`<mailto:[^|]*\|([^>]*)>`)

type eventService struct {
	bots   store.BotStore
	users  store.UserStore
	window dedup.Window
	router *command.Router
	chat   chat.Client
	convo  *convo.Store
	docs   responder.Client
}

func NewEventService(bots store.BotStore, users store.UserStore, window dedup.Window, router *command.Router, chatClient chat.Client, states *convo.Store, docs responder.Client) EventService {
	return &eventService{
		bots:   bots,
		users:  users,
		window: window,
		router: router,
		chat:   chatClient,
		convo:  states,
		docs:   docs,
	}
}

func (s *eventService) Process(ctx context.Context, params EventParams) error {
	seen, err := s.window.Seen(ctx, params.EventID)
	if err != nil {
		return fmt.Errorf("checking event window: %w", err)
	}
	if seen {
		slog.DebugContext(ctx, "duplicate event dropped", "event_id", params.EventID)
		return nil
	}

	if len(params.AuthedUsers) == 0 {
		return fmt.Errorf("event %s carries no authed users", params.EventID)
	}

	bot, err := s.bots.GetBySlackID(ctx, params.AuthedUsers[0])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrBotNotRegistered, params.AuthedUsers[0])
		}
		return fmt.Errorf("resolving bot: %w", err)
	}

	user, err := s.users.GetByID(ctx, bot.UserID)
	if err != nil {
		return fmt.Errorf("resolving bot owner: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		BotID:     logger.Ptr(bot.SlackBotID),
		EventID:   logger.Ptr(params.EventID),
		EventType: logger.Ptr(params.Event.Type),
	})

	event := params.Event

	// The bot's own messages are remembered by timestamp so later
	// reactions can be traced back to the answer they approve of.
	if event.Subtype == "bot_message" && event.Channel != "" && event.TS != "" {
		key := convo.Key{BotID: bot.SlackBotID, Channel: event.Channel}
		s.convo.RecordOutgoing(key, event.TS, event.Text)
	}

	if event.Type == "reaction_added" && event.Item != nil {
		c := command.Context{Bot: *bot, UserToken: user.APIToken, Channel: event.Item.Channel}
		handled, err := s.router.Feedback(ctx, c, event.Reaction, event.Item.TS)
		if err != nil {
			return fmt.Errorf("handling feedback: %w", err)
		}
		if handled {
			slog.InfoContext(ctx, "answer feedback recorded", "reaction", event.Reaction)
		}
		return nil
	}

	switch {
	case event.Type == "message" || (event.Type == "app_mention" && event.Subtype == ""):
		return s.processMessage(ctx, bot, user, event)
	case event.Type == "tokens_revoked" && event.Tokens != nil:
		return s.revokeBots(ctx, event.Tokens.Bot)
	}

	return nil
}

func (s *eventService) processMessage(ctx context.Context, bot *model.Bot, user *model.User, event WebhookEvent) error {
	text := event.Text
	switch event.Subtype {
	case "bot_message", "file_mention":
		// Never respond to ourselves, other bots, or file mentions.
		return nil
	case "file_share":
		return s.ingestFile(ctx, bot, user, event)
	case "message_changed":
		if event.Message == nil {
			return nil
		}
		text = event.Message.Text
	}

	if text == "" {
		return nil
	}

	message := strings.TrimSpace(strings.ReplaceAll(text, "<@"+bot.SlackBotID+">", ""))
	message = strings.TrimSpace(mailtoPattern.ReplaceAllString(message, "$1"))

	c := command.Context{Bot: *bot, UserToken: user.APIToken, Channel: event.Channel}
	return s.router.Dispatch(ctx, c, message)
}

// ingestFile uploads a shared text document into the answering corpus. A
// re-shared document with the same title replaces the previous version.
func (s *eventService) ingestFile(ctx context.Context, bot *model.Bot, user *model.User, event WebhookEvent) error {
	if event.File == nil {
		return nil
	}
	file := *event.File

	if file.Filetype != "text" && file.Filetype != "markdown" {
		_, err := s.chat.PostMessage(ctx, bot.BotToken, event.Channel, command.FileUnsupportedMessage())
		return err
	}

	// Some payloads omit the download URL; fall back to files.info.
	if file.URLPrivate == "" {
		info, err := s.chat.FileInfo(ctx, bot.BotToken, file.ID)
		if err != nil {
			return fmt.Errorf("resolving file %s: %w", file.ID, err)
		}
		file.URLPrivate = info.URLPrivate
		if file.Title == "" {
			file.Title = info.Title
		}
		if file.Name == "" {
			file.Name = info.Name
		}
	}

	contents, err := s.chat.FileContents(ctx, bot.BotToken, file.URLPrivate)
	if err != nil {
		return fmt.Errorf("downloading file %s: %w", file.ID, err)
	}

	if err := s.docs.UploadDocument(ctx, user.APIToken, file.Title, contents, file.Name, true); err != nil {
		var apiErr *responder.APIError
		if errors.As(err, &apiErr) {
			_, postErr := s.chat.PostMessage(ctx, bot.BotToken, event.Channel, apiErr.Message)
			return postErr
		}
		return fmt.Errorf("uploading document: %w", err)
	}

	_, err = s.chat.PostMessage(ctx, bot.BotToken, event.Channel, command.FileUploadedMessage())
	return err
}

func (s *eventService) revokeBots(ctx context.Context, botIDs []string) error {
	for _, botID := range botIDs {
		if err := s.bots.DeleteBySlackID(ctx, botID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return fmt.Errorf("deleting revoked bot %s: %w", botID, err)
		}
		slog.InfoContext(ctx, "bot revoked", "bot_id", botID)
	}
	return nil
}
