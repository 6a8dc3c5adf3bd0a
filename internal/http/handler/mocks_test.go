package handler_test

import (
	"context"

	"ansa.app/bridge/internal/model"
	"ansa.app/bridge/internal/service"
	"ansa.app/bridge/internal/store"
)

type mockEventService struct {
	processFn func(ctx context.Context, params service.EventParams) error
	processed []service.EventParams
}

func (m *mockEventService) Process(ctx context.Context, params service.EventParams) error {
	m.processed = append(m.processed, params)
	if m.processFn != nil {
		return m.processFn(ctx, params)
	}
	return nil
}

type mockOAuthService struct {
	completeFn func(ctx context.Context, user *model.User, code string) (*model.Bot, error)
}

func (m *mockOAuthService) Complete(ctx context.Context, user *model.User, code string) (*model.Bot, error) {
	if m.completeFn != nil {
		return m.completeFn(ctx, user, code)
	}
	return &model.Bot{}, nil
}

type mockUserStore struct {
	getByAPITokenFn func(ctx context.Context, token string) (*model.User, error)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByAPIToken(ctx context.Context, token string) (*model.User, error) {
	if m.getByAPITokenFn != nil {
		return m.getByAPITokenFn(ctx, token)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) Create(ctx context.Context, user *model.User) error {
	return nil
}
