package service

import (
	"ansa.app/bridge/core/config"
	"ansa.app/bridge/internal/chat"
	"ansa.app/bridge/internal/command"
	"ansa.app/bridge/internal/convo"
	"ansa.app/bridge/internal/dedup"
	"ansa.app/bridge/internal/responder"
	"ansa.app/bridge/internal/store"
)

type Services struct {
	stores *store.Stores
	window dedup.Window
	chat   chat.Client
	docs   responder.Client
	convo  *convo.Store
	router *command.Router
	cfg    config.Config
}

func NewServices(stores *store.Stores, window dedup.Window, chatClient chat.Client, docs responder.Client, states *convo.Store, cfg config.Config) *Services {
	return &Services{
		stores: stores,
		window: window,
		chat:   chatClient,
		docs:   docs,
		convo:  states,
		router: command.NewRouter(chatClient, docs, states, cfg.Responder),
		cfg:    cfg,
	}
}

func (s *Services) Events() EventService {
	return NewEventService(s.stores.Bots(), s.stores.Users(), s.window, s.router, s.chat, s.convo, s.docs)
}

func (s *Services) OAuth() OAuthService {
	return NewOAuthService(s.stores.Bots(), s.cfg.Slack)
}

func (s *Services) Users() store.UserStore {
	return s.stores.Users()
}
