package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RecipientMap maps a GitLab project name to the ordered list of Slack user
// IDs to notify when a merge request arrives for that project. It is built
// once at startup and never mutated afterwards.
type RecipientMap map[string][]string

// recipientsFile is the external YAML format for the recipient map
type recipientsFile struct {
	Projects []projectRecipients `yaml:"projects"`
}

type projectRecipients struct {
	Name       string   `yaml:"name"`
	Recipients []string `yaml:"recipients"`
}

// Resolve returns the recipients configured for a project, in file order.
// An unknown project yields an empty list, which callers treat as "no
// reviewers configured", not an error.
func (m RecipientMap) Resolve(projectName string) []string {
	return m[projectName]
}

// LoadRecipientMap loads the recipient map from a YAML file. A missing file
// is not an error: it yields an empty map and notifications are skipped for
// every project.
func LoadRecipientMap(path string) RecipientMap {
	recipients, err := ParseRecipientMap(path)
	if err != nil {
		return RecipientMap{}
	}
	return recipients
}

// ParseRecipientMap reads and validates the recipient map file, surfacing
// read and parse errors to the caller.
func ParseRecipientMap(path string) (RecipientMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipients file %s: %w", path, err)
	}

	var file recipientsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse recipients YAML %s: %w", path, err)
	}

	recipients := make(RecipientMap, len(file.Projects))
	for _, project := range file.Projects {
		if project.Name == "" {
			continue
		}
		recipients[project.Name] = project.Recipients
	}

	return recipients, nil
}
