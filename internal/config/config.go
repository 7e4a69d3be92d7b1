package config

import (
	"os"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Slack    SlackConfig
	Replicon RepliconConfig
	Notify   NotifyConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
}

// SlackConfig holds Slack Web API configuration
type SlackConfig struct {
	BaseURL  string
	BotToken string
}

// RepliconConfig holds Replicon timesheet API configuration
type RepliconConfig struct {
	BaseURL string
	Token   string
	UserURI string // time is always logged against this fixed user
}

// NotifyConfig holds notification configuration
type NotifyConfig struct {
	RecipientsPath string // path to the project→recipients YAML file
	Recipients     RecipientMap
}

// Load loads configuration from environment variables. The recipient map is
// read from the YAML file named by RECIPIENTS_CONFIG; a missing file means no
// project has reviewers configured and notifications are skipped.
func Load() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
		},
		Slack: SlackConfig{
			BaseURL:  getEnv("SLACK_BASE_URL", "https://slack.com"),
			BotToken: getEnv("SLACK_BOT_TOKEN", ""),
		},
		Replicon: RepliconConfig{
			BaseURL: getEnv("REPLICON_BASE_URL", ""),
			Token:   getEnv("REPLICON_TOKEN", ""),
			UserURI: getEnv("REPLICON_USER_URI", ""),
		},
		Notify: NotifyConfig{
			RecipientsPath: getEnv("RECIPIENTS_CONFIG", "recipients.yaml"),
		},
	}

	cfg.Notify.Recipients = LoadRecipientMap(cfg.Notify.RecipientsPath)

	return cfg
}

// HasSlackToken returns true if a Slack bot token is configured
func (c *Config) HasSlackToken() bool {
	return c.Slack.BotToken != ""
}

// HasRepliconToken returns true if a Replicon token is configured
func (c *Config) HasRepliconToken() bool {
	return c.Replicon.Token != ""
}

// NotificationMode returns a description of the current notification mode
func (c *Config) NotificationMode() string {
	if !c.HasSlackToken() {
		return "Disabled (no Slack token)"
	}
	if len(c.Notify.Recipients) == 0 {
		return "Enabled but no recipients configured"
	}
	return "Enabled"
}

// TimesheetMode returns a description of the current time logging mode
func (c *Config) TimesheetMode() string {
	if !c.HasRepliconToken() || c.Replicon.BaseURL == "" {
		return "Disabled (Replicon not configured)"
	}
	return "Enabled"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
