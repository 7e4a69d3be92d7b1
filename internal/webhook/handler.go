package webhook

import (
	"github.com/gofiber/fiber/v2"

	"github.com/redhat-data-and-ai/timekeeper/internal/config"
	"github.com/redhat-data-and-ai/timekeeper/internal/gitlab"
	"github.com/redhat-data-and-ai/timekeeper/internal/logging"
	"github.com/redhat-data-and-ai/timekeeper/internal/notify"
	"github.com/redhat-data-and-ai/timekeeper/internal/replicon"
	"github.com/redhat-data-and-ai/timekeeper/internal/slack"
	"github.com/redhat-data-and-ai/timekeeper/internal/timesheet"
)

// Delivery result statuses returned to GitLab
const (
	StatusOK      = "ok"
	StatusIgnored = "ignored"
	StatusFailed  = "failed"
)

// WebhookHandler handles GitLab merge request webhook deliveries
type WebhookHandler struct {
	config     *config.Config
	notifier   *notify.Notifier
	timesheets *timesheet.Logger
}

// NewWebhookHandler creates a webhook handler with real Slack and Replicon clients
func NewWebhookHandler(cfg *config.Config) *WebhookHandler {
	return NewWebhookHandlerWithClients(cfg, slack.NewClient(cfg.Slack), replicon.NewClient(cfg.Replicon))
}

// NewWebhookHandlerWithClients creates a webhook handler with injected API clients
func NewWebhookHandlerWithClients(cfg *config.Config, slackAPI slack.API, repliconAPI replicon.API) *WebhookHandler {
	return &WebhookHandler{
		config:     cfg,
		notifier:   notify.NewNotifier(slackAPI),
		timesheets: timesheet.NewLogger(repliconAPI),
	}
}

// HandleWebhook processes one GitLab webhook delivery: notify the configured
// reviewers, then log the merge request's commits as time entries. A chat
// delivery failure short-circuits before any timesheet call; a timesheet
// failure is fatal for the request.
func (h *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	var event gitlab.MergeRequestEvent
	if err := c.BodyParser(&event); err != nil {
		logging.Warn("Failed to parse payload: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid JSON payload",
		})
	}
	event.Normalize()

	if !event.IsMergeRequest() {
		logging.Info("Ignoring event of kind %q", event.ObjectKind)
		return c.JSON(fiber.Map{"status": StatusIgnored})
	}

	if err := event.Validate(); err != nil {
		logging.Warn("Rejecting malformed merge request event: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing MR information: " + err.Error(),
		})
	}

	project := event.ProjectLabel()
	logging.ProjectInfo(project, "Processing merge request: "+event.ObjectAttributes.Title)

	recipients := h.config.Notify.Recipients.Resolve(event.Project.Name)
	if len(recipients) > 0 {
		message := notify.ComposeMessage(project, event.ObjectAttributes.Title, event.ObjectAttributes.URL, event.Commits)
		if err := h.notifier.Notify(message, recipients); err != nil {
			logging.ProjectError(project, "Notification failed, skipping time logging", err)
			return c.JSON(fiber.Map{
				"status": StatusFailed,
				"error":  err.Error(),
			})
		}
	} else {
		logging.ProjectInfo(project, "No recipients configured, skipping notification")
	}

	if err := h.timesheets.LogTime(replicon.Today(), event.Commits); err != nil {
		logging.ProjectError(project, "Time logging failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": StatusFailed,
			"error":  err.Error(),
		})
	}

	return c.JSON(fiber.Map{"status": StatusOK})
}
