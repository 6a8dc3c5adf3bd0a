// Package responder talks to the Ansa answering backend over its HTTP API.
// Every response arrives in a {"success": bool, "result": ...} envelope;
// failures carry a human-readable message that is surfaced to the channel.
package responder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ansa.app/bridge/core/config"
	"ansa.app/bridge/internal/model"
)

// Client exposes the answering backend capabilities the bridge uses.
type Client interface {
	// Answer returns ranked candidate answers for a question, best first.
	Answer(ctx context.Context, token, question string, count int) ([]model.Answer, error)
	// CreateSavedReply stores a curated question/answer pair and returns its id.
	CreateSavedReply(ctx context.Context, token, question, answer string) (string, error)
	// AddParaphrase attaches an alternative phrasing to an existing saved reply.
	AddParaphrase(ctx context.Context, token, replyID, question string) error
	// UploadDocument ingests a document into the searchable corpus. With
	// replace set, a document with the same title is overwritten.
	UploadDocument(ctx context.Context, token, title, text, origin string, replace bool) error
}

// APIError is a failure reported by the backend itself, as opposed to a
// transport failure. Its message is safe to show to end users.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.ResponderConfig) Client {
	return &client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
}

type errorResult struct {
	Message string `json:"message"`
}

func (c *client) Answer(ctx context.Context, token, question string, count int) ([]model.Answer, error) {
	params := url.Values{
		"token":         {token},
		"question":      {question},
		"numberofitems": {strconv.Itoa(count)},
	}

	start := time.Now()
	var result struct {
		Items []model.Answer `json:"items"`
	}
	if err := c.call(ctx, http.MethodGet, "/answer", params, &result); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "answer request completed",
		"candidates", len(result.Items),
		"duration_ms", time.Since(start).Milliseconds())
	return result.Items, nil
}

func (c *client) CreateSavedReply(ctx context.Context, token, question, answer string) (string, error) {
	params := url.Values{
		"token":    {token},
		"question": {question},
		"answer":   {answer},
	}

	var result struct {
		ReplyID string `json:"replyId"`
	}
	if err := c.call(ctx, http.MethodPost, "/saved-reply", params, &result); err != nil {
		return "", err
	}
	return result.ReplyID, nil
}

func (c *client) AddParaphrase(ctx context.Context, token, replyID, question string) error {
	params := url.Values{
		"token":    {token},
		"replyid":  {replyID},
		"question": {question},
	}
	return c.call(ctx, http.MethodPost, "/add-paraphrase-question", params, nil)
}

func (c *client) UploadDocument(ctx context.Context, token, title, text, origin string, replace bool) error {
	params := url.Values{
		"token":   {token},
		"title":   {title},
		"text":    {text},
		"origin":  {origin},
		"replace": {strconv.FormatBool(replace)},
	}
	return c.call(ctx, http.MethodPost, "/upload-document", params, nil)
}

// call performs a request against the backend and decodes the envelope.
// GET requests carry params in the query string, POSTs as a form body.
func (c *client) call(ctx context.Context, method, path string, params url.Values, result any) error {
	endpoint := c.baseURL + path

	var req *http.Request
	var err error
	if method == http.MethodGet {
		req, err = http.NewRequestWithContext(ctx, method, endpoint+"?"+params.Encode(), nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(params.Encode()))
		if req != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling responder %s: %w", path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decoding responder response: %w", err)
	}

	if !env.Success {
		var fail errorResult
		if err := json.Unmarshal(env.Result, &fail); err != nil || fail.Message == "" {
			return &APIError{Message: fmt.Sprintf("responder request failed with status %d", resp.StatusCode)}
		}
		return &APIError{Message: fail.Message}
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(env.Result, result); err != nil {
		return fmt.Errorf("decoding responder result: %w", err)
	}
	return nil
}
