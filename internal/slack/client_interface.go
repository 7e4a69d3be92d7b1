package slack

// API is an interface for Slack Web API operations
// This interface allows for easy mocking in tests
type API interface {
	OpenConversation(userID string) (string, error)
	PostMessage(channelID, text string) error
}

// Verify that Client implements the API interface
var _ API = (*Client)(nil)
