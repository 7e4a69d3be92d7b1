package notify

import (
	"fmt"
	"strings"

	"github.com/redhat-data-and-ai/timekeeper/internal/gitlab"
)

// NoCommitsPlaceholder is rendered when a merge request carries no commits
const NoCommitsPlaceholder = "No commits"

// ComposeMessage builds the direct-message text for a merge request. The
// output is deterministic: identical inputs always produce identical text.
func ComposeMessage(projectLabel, title, url string, commits []gitlab.Commit) string {
	var msg strings.Builder

	msg.WriteString("*New Merge Request Alert*\n")
	msg.WriteString(fmt.Sprintf("*Project:* %s\n", projectLabel))
	msg.WriteString(fmt.Sprintf("*Title:* %s\n", title))
	msg.WriteString(fmt.Sprintf("*URL:* <%s|Click to open>\n", url))
	msg.WriteString(fmt.Sprintf("*Commits:* %d\n", len(commits)))
	msg.WriteString("*Commit Messages:*\n")
	msg.WriteString(commitList(commits))

	return msg.String()
}

// commitList renders the commit messages as a bullet list, in commit order
func commitList(commits []gitlab.Commit) string {
	if len(commits) == 0 {
		return NoCommitsPlaceholder
	}

	lines := make([]string, len(commits))
	for i, commit := range commits {
		lines[i] = "• " + commit.Message
	}
	return strings.Join(lines, "\n")
}
