package notify

import (
	"errors"

	"github.com/redhat-data-and-ai/timekeeper/internal/logging"
	"github.com/redhat-data-and-ai/timekeeper/internal/slack"
)

// Notifier delivers a message to a list of recipients as Slack direct
// messages, one conversation per recipient.
type Notifier struct {
	client slack.API
}

// NewNotifier creates a new notifier on top of a Slack client
func NewNotifier(client slack.API) *Notifier {
	return &Notifier{client: client}
}

// Notify sends message to every recipient, in order. A recipient whose
// conversation cannot be opened (Slack says no, or returns no channel) is
// logged and skipped. A failed post or a transport error on either step
// aborts the loop and returns the error: remaining recipients are not
// attempted.
// TODO: revisit whether a single post failure should really stop delivery to
// the remaining recipients.
func (n *Notifier) Notify(message string, recipients []string) error {
	for _, recipient := range recipients {
		channelID, err := n.client.OpenConversation(recipient)
		if err != nil {
			if isOpenRefusal(err) {
				logging.Warn("Failed to open conversation with %s: %v", recipient, err)
				continue
			}
			logging.Error("Conversation open for %s failed: %v", recipient, err)
			return err
		}

		if err := n.client.PostMessage(channelID, message); err != nil {
			logging.Error("Failed to post message to %s: %v", recipient, err)
			return err
		}

		logging.Info("Notified %s in channel %s", recipient, channelID)
	}

	return nil
}

// isOpenRefusal reports whether an OpenConversation error is Slack refusing
// the conversation, as opposed to a transport failure.
func isOpenRefusal(err error) bool {
	var apiErr *slack.APIError
	return errors.As(err, &apiErr) || errors.Is(err, slack.ErrNoChannelID)
}
