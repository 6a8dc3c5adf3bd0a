// Package chat wraps the outbound Slack Web API. Tokens are per-workspace,
// so every call takes the bot token of the workspace it targets.
package chat

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/slack-go/slack"
)

// Client is the outbound messaging surface used by the command actions.
type Client interface {
	// PostMessage sends text to a channel and returns the message timestamp,
	// which uniquely identifies the message within the channel.
	PostMessage(ctx context.Context, token, channel, text string) (string, error)
	// FileInfo fetches metadata for an uploaded file.
	FileInfo(ctx context.Context, token, fileID string) (*File, error)
	// FileContents downloads a file's raw bytes from its private URL.
	FileContents(ctx context.Context, token, urlPrivate string) (string, error)
}

// File carries the subset of file metadata the ingestion flow needs.
type File struct {
	ID         string
	Name       string
	Title      string
	Filetype   string
	URLPrivate string
}

type client struct{}

func NewClient() Client {
	return &client{}
}

func (c *client) PostMessage(ctx context.Context, token, channel, text string) (string, error) {
	api := slack.New(token)

	start := time.Now()
	_, ts, err := api.PostMessageContext(ctx, channel, slack.MsgOptionText(text, false))
	if err != nil {
		return "", fmt.Errorf("posting message to %s: %w", channel, err)
	}

	slog.DebugContext(ctx, "message posted",
		"channel", channel,
		"ts", ts,
		"duration_ms", time.Since(start).Milliseconds())
	return ts, nil
}

func (c *client) FileInfo(ctx context.Context, token, fileID string) (*File, error) {
	api := slack.New(token)

	file, _, _, err := api.GetFileInfoContext(ctx, fileID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("fetching file info for %s: %w", fileID, err)
	}

	return &File{
		ID:         file.ID,
		Name:       file.Name,
		Title:      file.Title,
		Filetype:   file.Filetype,
		URLPrivate: file.URLPrivate,
	}, nil
}

func (c *client) FileContents(ctx context.Context, token, urlPrivate string) (string, error) {
	api := slack.New(token)

	var buf bytes.Buffer
	if err := api.GetFileContext(ctx, urlPrivate, &buf); err != nil {
		return "", fmt.Errorf("downloading file: %w", err)
	}
	return buf.String(), nil
}
