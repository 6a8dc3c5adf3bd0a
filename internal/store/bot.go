package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"ansa.app/bridge/core/db/sqlc"
	"ansa.app/bridge/internal/model"
)

type botStore struct {
	queries *sqlc.Queries
}

func newBotStore(queries *sqlc.Queries) BotStore {
	return &botStore{queries: queries}
}

func (s *botStore) GetBySlackID(ctx context.Context, slackBotID string) (*model.Bot, error) {
	row, err := s.queries.GetBotBySlackID(ctx, slackBotID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toBotModel(row), nil
}

func (s *botStore) Upsert(ctx context.Context, bot *model.Bot) error {
	row, err := s.queries.UpsertBot(ctx, sqlc.UpsertBotParams{
		ID:          bot.ID,
		UserID:      bot.UserID,
		SlackBotID:  bot.SlackBotID,
		BotToken:    bot.BotToken,
		AccessToken: bot.AccessToken,
	})
	if err != nil {
		return err
	}
	*bot = *toBotModel(row)
	return nil
}

func (s *botStore) DeleteBySlackID(ctx context.Context, slackBotID string) error {
	return s.queries.DeleteBotBySlackID(ctx, slackBotID)
}

func toBotModel(row sqlc.Bot) *model.Bot {
	return &model.Bot{
		ID:          row.ID,
		UserID:      row.UserID,
		SlackBotID:  row.SlackBotID,
		BotToken:    row.BotToken,
		AccessToken: row.AccessToken,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}
