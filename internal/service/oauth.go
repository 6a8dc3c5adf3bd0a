package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/slack-go/slack"

	"ansa.app/bridge/common/id"
	"ansa.app/bridge/core/config"
	"ansa.app/bridge/internal/model"
	"ansa.app/bridge/internal/store"
)

// ErrInvalidOAuthResponse is returned when the token exchange succeeds at
// the transport level but the payload is missing the expected bot fields.
var ErrInvalidOAuthResponse = errors.New("invalid oauth response from slack")

// OAuthService completes the workspace install handshake: it exchanges the
// authorization code for bot credentials and persists them against the
// installing account.
type OAuthService interface {
	Complete(ctx context.Context, user *model.User, code string) (*model.Bot, error)
}

// oauthExchange is the code-for-token call, injectable for tests.
type oauthExchange func(ctx context.Context, clientID, clientSecret, code string) (*slack.OAuthResponse, error)

type oauthService struct {
	bots     store.BotStore
	cfg      config.SlackConfig
	exchange oauthExchange
}

func NewOAuthService(bots store.BotStore, cfg config.SlackConfig) OAuthService {
	return &oauthService{
		bots: bots,
		cfg:  cfg,
		exchange: func(ctx context.Context, clientID, clientSecret, code string) (*slack.OAuthResponse, error) {
			return slack.GetOAuthResponseContext(ctx, http.DefaultClient, clientID, clientSecret, code, "")
		},
	}
}

func (s *oauthService) Complete(ctx context.Context, user *model.User, code string) (*model.Bot, error) {
	resp, err := s.exchange(ctx, s.cfg.ClientID, s.cfg.ClientSecret, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging oauth code: %w", err)
	}

	if resp.Bot.BotUserID == "" || resp.Bot.BotAccessToken == "" || resp.AccessToken == "" {
		return nil, ErrInvalidOAuthResponse
	}

	bot := &model.Bot{
		ID:          id.New(),
		UserID:      user.ID,
		SlackBotID:  resp.Bot.BotUserID,
		BotToken:    resp.Bot.BotAccessToken,
		AccessToken: resp.AccessToken,
	}

	// A reinstall of the same workspace bot overwrites the stored tokens
	// and owner instead of failing.
	if err := s.bots.Upsert(ctx, bot); err != nil {
		return nil, fmt.Errorf("storing bot credentials: %w", err)
	}

	slog.InfoContext(ctx, "bot registered", "bot_id", bot.SlackBotID, "user_id", bot.UserID)
	return bot, nil
}
