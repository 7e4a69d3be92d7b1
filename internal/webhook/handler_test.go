package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redhat-data-and-ai/timekeeper/internal/config"
	"github.com/redhat-data-and-ai/timekeeper/internal/replicon"
	"github.com/redhat-data-and-ai/timekeeper/internal/slack"
)

// MockSlackAPI is a capturing mock Slack client for handler testing
type MockSlackAPI struct {
	openError error
	postError error

	openedUsers []string
	postedTexts []string
}

func (m *MockSlackAPI) OpenConversation(userID string) (string, error) {
	m.openedUsers = append(m.openedUsers, userID)
	if m.openError != nil {
		return "", m.openError
	}
	return "D-" + userID, nil
}

func (m *MockSlackAPI) PostMessage(channelID, text string) error {
	if m.postError != nil {
		return m.postError
	}
	m.postedTexts = append(m.postedTexts, text)
	return nil
}

// MockRepliconAPI is a capturing mock Replicon client for handler testing
type MockRepliconAPI struct {
	getError  error
	saveError error

	getCalls        int
	capturedEntries []replicon.TimeEntry
}

func (m *MockRepliconAPI) GetOrCreateTimesheet(date replicon.Date) (string, error) {
	m.getCalls++
	if m.getError != nil {
		return "", m.getError
	}
	return "urn:replicon:timesheet:777", nil
}

func (m *MockRepliconAPI) SaveTimeEntry(timesheetURI string, entry replicon.TimeEntry) error {
	if m.saveError != nil {
		return m.saveError
	}
	m.capturedEntries = append(m.capturedEntries, entry)
	return nil
}

func newTestApp(recipients config.RecipientMap, slackAPI slack.API, repliconAPI replicon.API) *fiber.App {
	cfg := &config.Config{
		Slack:    config.SlackConfig{BotToken: "xoxb-test"},
		Replicon: config.RepliconConfig{Token: "replicon-token", UserURI: "urn:replicon:user:42"},
		Notify:   config.NotifyConfig{Recipients: recipients},
	}
	handler := NewWebhookHandlerWithClients(cfg, slackAPI, repliconAPI)

	app := fiber.New()
	app.Post("/webhook/gitlab", handler.HandleWebhook)
	return app
}

func postWebhook(t *testing.T, app *fiber.App, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/webhook/gitlab", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(respBody, &decoded))
	return resp, decoded
}

func mergeRequestPayload(commitMessages ...string) map[string]interface{} {
	commits := make([]map[string]string, len(commitMessages))
	for i, message := range commitMessages {
		commits[i] = map[string]string{"message": message}
	}
	return map[string]interface{}{
		"object_kind": "merge_request",
		"project":     map[string]string{"id": "100", "name": "backend-api"},
		"object_attributes": map[string]string{
			"title": "Add retries",
			"url":   "https://gitlab.example.com/mr/1",
		},
		"commits": commits,
	}
}

func TestHandleWebhook_IgnoresOtherEventKinds(t *testing.T) {
	slackMock := &MockSlackAPI{}
	repliconMock := &MockRepliconAPI{}
	app := newTestApp(config.RecipientMap{"backend-api": {"U1"}}, slackMock, repliconMock)

	payload := map[string]interface{}{
		"object_kind": "push",
		"project":     map[string]string{"id": "100", "name": "backend-api"},
	}
	resp, body := postWebhook(t, app, payload)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "ignored", body["status"])
	// A filtered event must produce zero outbound calls
	assert.Empty(t, slackMock.openedUsers)
	assert.Equal(t, 0, repliconMock.getCalls)
}

func TestHandleWebhook_InvalidJSON(t *testing.T) {
	slackMock := &MockSlackAPI{}
	repliconMock := &MockRepliconAPI{}
	app := newTestApp(config.RecipientMap{}, slackMock, repliconMock)

	req := httptest.NewRequest("POST", "/webhook/gitlab", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, 400, resp.StatusCode)
	assert.Empty(t, slackMock.openedUsers)
	assert.Equal(t, 0, repliconMock.getCalls)
}

func TestHandleWebhook_MissingMRInformation(t *testing.T) {
	app := newTestApp(config.RecipientMap{}, &MockSlackAPI{}, &MockRepliconAPI{})

	payload := map[string]interface{}{
		"object_kind": "merge_request",
		"project":     map[string]string{"id": "100"},
	}
	resp, body := postWebhook(t, app, payload)

	assert.Equal(t, 400, resp.StatusCode)
	assert.Contains(t, body["error"], "Missing MR information")
}

func TestHandleWebhook_NotifiesAndLogsTime(t *testing.T) {
	slackMock := &MockSlackAPI{}
	repliconMock := &MockRepliconAPI{}
	app := newTestApp(config.RecipientMap{"backend-api": {"U1", "U2"}}, slackMock, repliconMock)

	resp, body := postWebhook(t, app, mergeRequestPayload("fix bug", "add test"))

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	// Both recipients are messaged, in resolver order
	assert.Equal(t, []string{"U1", "U2"}, slackMock.openedUsers)
	require.Len(t, slackMock.postedTexts, 2)
	assert.Contains(t, slackMock.postedTexts[0], "*Project:* backend-api")
	assert.Contains(t, slackMock.postedTexts[0], "• fix bug\n• add test")

	// One get-or-create, then one entry per commit at 4.0 hours each
	assert.Equal(t, 1, repliconMock.getCalls)
	require.Len(t, repliconMock.capturedEntries, 2)
	assert.Equal(t, 4.0, repliconMock.capturedEntries[0].Hours)
	assert.Equal(t, "fix bug", repliconMock.capturedEntries[0].Comments)
	assert.Equal(t, 4.0, repliconMock.capturedEntries[1].Hours)
	assert.Equal(t, "add test", repliconMock.capturedEntries[1].Comments)
}

func TestHandleWebhook_NoRecipientsConfigured(t *testing.T) {
	slackMock := &MockSlackAPI{}
	repliconMock := &MockRepliconAPI{}
	app := newTestApp(config.RecipientMap{"other-project": {"U1"}}, slackMock, repliconMock)

	resp, body := postWebhook(t, app, mergeRequestPayload("fix bug"))

	// No chat calls, but time logging still happens
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Empty(t, slackMock.openedUsers)
	assert.Equal(t, 1, repliconMock.getCalls)
	assert.Len(t, repliconMock.capturedEntries, 1)
}

func TestHandleWebhook_PostFailureSkipsTimeLogging(t *testing.T) {
	slackMock := &MockSlackAPI{postError: &slack.APIError{Code: "channel_not_found"}}
	repliconMock := &MockRepliconAPI{}
	app := newTestApp(config.RecipientMap{"backend-api": {"U1", "U2"}}, slackMock, repliconMock)

	resp, body := postWebhook(t, app, mergeRequestPayload("fix bug"))

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "failed", body["status"])
	assert.Equal(t, "channel_not_found", body["error"])
	// The chat failure aborts the request before any timesheet call
	assert.Equal(t, 0, repliconMock.getCalls)
}

func TestHandleWebhook_OpenRefusalDoesNotAbortRequest(t *testing.T) {
	slackMock := &MockSlackAPI{openError: &slack.APIError{Code: "user_not_found"}}
	repliconMock := &MockRepliconAPI{}
	app := newTestApp(config.RecipientMap{"backend-api": {"U1"}}, slackMock, repliconMock)

	resp, body := postWebhook(t, app, mergeRequestPayload("fix bug"))

	// Unreachable recipients are skipped; the delivery still succeeds
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, 1, repliconMock.getCalls)
}

func TestHandleWebhook_TimesheetFailureIsFatal(t *testing.T) {
	slackMock := &MockSlackAPI{}
	repliconMock := &MockRepliconAPI{getError: fmt.Errorf("replicon API error 500")}
	app := newTestApp(config.RecipientMap{}, slackMock, repliconMock)

	resp, body := postWebhook(t, app, mergeRequestPayload("fix bug"))

	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, "failed", body["status"])
	assert.Contains(t, body["error"], "failed to get or create timesheet")
	assert.Empty(t, repliconMock.capturedEntries)
}

func TestHandleWebhook_EmptyCommits(t *testing.T) {
	slackMock := &MockSlackAPI{}
	repliconMock := &MockRepliconAPI{}
	app := newTestApp(config.RecipientMap{"backend-api": {"U1"}}, slackMock, repliconMock)

	resp, body := postWebhook(t, app, mergeRequestPayload())

	// Timesheet is still ensured but no entries are written
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, 1, repliconMock.getCalls)
	assert.Empty(t, repliconMock.capturedEntries)
	require.Len(t, slackMock.postedTexts, 1)
	assert.Contains(t, slackMock.postedTexts[0], "No commits")
}
