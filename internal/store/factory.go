package store

import (
	"ansa.app/bridge/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Bots() BotStore {
	return newBotStore(s.queries)
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}
