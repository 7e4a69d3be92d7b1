package slack

// conversationsOpenRequest is the body for the conversations.open call
type conversationsOpenRequest struct {
	Users string `json:"users"`
}

// conversationsOpenResponse is the Slack response for conversations.open
type conversationsOpenResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Channel struct {
		ID string `json:"id"`
	} `json:"channel"`
}

// postMessageRequest is the body for the chat.postMessage call
type postMessageRequest struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

// postMessageResponse is the Slack response for chat.postMessage
type postMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// APIError represents a Slack Web API call that came back with ok=false
type APIError struct {
	Code string // Slack error code, e.g. "channel_not_found"
}

func (e *APIError) Error() string {
	return e.Code
}
