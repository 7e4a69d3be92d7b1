package replicon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/redhat-data-and-ai/timekeeper/internal/config"
)

// Client handles Replicon timesheet API operations. Every call is attempted
// exactly once; any retry policy belongs in a wrapper, not here.
type Client struct {
	config config.RepliconConfig
	http   *http.Client
}

// NewClient creates a new Replicon API client
func NewClient(cfg config.RepliconConfig) *Client {
	return &Client{
		config: cfg,
		http:   &http.Client{},
	}
}

// GetOrCreateTimesheet resolves the timesheet URI for the configured user on
// the given date, creating the timesheet when it does not exist yet. A
// non-2xx response or a response without a timesheet URI is an error.
func (c *Client) GetOrCreateTimesheet(date Date) (string, error) {
	payload := getTimesheetRequest{
		UserURI:               c.config.UserURI,
		Date:                  date,
		TimesheetGetOptionURI: TimesheetGetOptionURI,
	}

	body, err := c.post("/timesheet/get-timesheet", payload)
	if err != nil {
		return "", err
	}

	var response getTimesheetResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to decode get-timesheet response: %w", err)
	}

	if response.Timesheet.URI == "" {
		return "", fmt.Errorf("failed to retrieve or create timesheet")
	}

	return response.Timesheet.URI, nil
}

// SaveTimeEntry appends one time entry to a timesheet
func (c *Client) SaveTimeEntry(timesheetURI string, entry TimeEntry) error {
	payload := saveTimeEntryRequest{
		TimesheetURI: timesheetURI,
		TimeEntry:    entry,
	}

	if _, err := c.post("/timesheet/save-time-entry", payload); err != nil {
		return err
	}

	return nil
}

// post issues a single bearer-authenticated JSON POST and returns the raw
// response body. Any non-2xx status is an error carrying the response text.
func (c *Client) post(path string, payload interface{}) ([]byte, error) {
	url := strings.TrimRight(c.config.BaseURL, "/") + path

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", path, err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", path, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("replicon request %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("replicon API error %d on %s: %s", resp.StatusCode, path, string(body))
	}

	return body, nil
}
