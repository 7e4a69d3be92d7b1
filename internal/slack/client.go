package slack

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/redhat-data-and-ai/timekeeper/internal/config"
)

// ErrNoChannelID is returned when conversations.open succeeds without a
// channel ID to post into.
var ErrNoChannelID = errors.New("conversations.open returned no channel ID")

// Client handles Slack Web API operations. Every call is attempted exactly
// once; any retry policy belongs in a wrapper, not here.
type Client struct {
	config config.SlackConfig
	http   *http.Client
}

// NewClient creates a new Slack API client
func NewClient(cfg config.SlackConfig) *Client {
	return &Client{
		config: cfg,
		http:   &http.Client{},
	}
}

// OpenConversation opens a direct-message conversation with a user and
// returns the channel ID to post into. An ok=false response or a response
// without a channel ID is an error.
func (c *Client) OpenConversation(userID string) (string, error) {
	var response conversationsOpenResponse
	if err := c.post("/api/conversations.open", conversationsOpenRequest{Users: userID}, &response); err != nil {
		return "", err
	}

	if !response.OK {
		return "", &APIError{Code: response.Error}
	}
	if response.Channel.ID == "" {
		return "", fmt.Errorf("%w for user %s", ErrNoChannelID, userID)
	}

	return response.Channel.ID, nil
}

// PostMessage posts a message to a channel. An ok=false response is returned
// as an *APIError carrying Slack's error code.
func (c *Client) PostMessage(channelID, text string) error {
	var response postMessageResponse
	if err := c.post("/api/chat.postMessage", postMessageRequest{Channel: channelID, Text: text}, &response); err != nil {
		return err
	}

	if !response.OK {
		return &APIError{Code: response.Error}
	}

	return nil
}

// post issues a single bearer-authenticated JSON POST and decodes the response
func (c *Client) post(path string, body interface{}, out interface{}) error {
	url := strings.TrimRight(c.config.BaseURL, "/") + path

	jsonPayload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", path, err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", path, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.BotToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("slack request %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack API error %d on %s: %s", resp.StatusCode, path, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	return nil
}
