package model

import "time"

// Bot ties a Slack bot user to the account that installed it. One row per
// workspace install; reinstalls re-key the tokens in place.
type Bot struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	SlackBotID  string    `json:"slack_bot_id"`
	BotToken    string    `json:"-"`
	AccessToken string    `json:"-"`
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
}
