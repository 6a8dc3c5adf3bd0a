package dto

import "ansa.app/bridge/internal/service"

// EventCallback is the Slack Events API delivery envelope. URL verification
// deliveries carry only token/challenge/type; event callbacks carry the
// event body plus its delivery id and the authorized bot users.
type EventCallback struct {
	Token       string               `json:"token"`
	Challenge   string               `json:"challenge"`
	Type        string               `json:"type"`
	EventID     string               `json:"event_id"`
	AuthedUsers []string             `json:"authed_users"`
	Event       service.WebhookEvent `json:"event"`
}
