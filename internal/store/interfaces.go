package store

import (
	"context"
	"errors"

	"ansa.app/bridge/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// BotStore defines the contract for bot credential data access
type BotStore interface {
	GetBySlackID(ctx context.Context, slackBotID string) (*model.Bot, error)
	// Upsert creates the bot or, when the external bot id is already
	// registered, overwrites its tokens and owning user.
	Upsert(ctx context.Context, bot *model.Bot) error
	DeleteBySlackID(ctx context.Context, slackBotID string) error
}

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByAPIToken(ctx context.Context, token string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
}
