package timesheet

import (
	"fmt"

	"github.com/redhat-data-and-ai/timekeeper/internal/gitlab"
	"github.com/redhat-data-and-ai/timekeeper/internal/logging"
	"github.com/redhat-data-and-ai/timekeeper/internal/replicon"
)

// TotalDailyHours is the fixed hours budget distributed across the commits
// of one merge request.
const TotalDailyHours = 8.0

// Logger records merge request work time against a Replicon timesheet
type Logger struct {
	client replicon.API
}

// NewLogger creates a new timesheet logger on top of a Replicon client
func NewLogger(client replicon.API) *Logger {
	return &Logger{client: client}
}

// LogTime ensures a timesheet exists for the given date and appends one time
// entry per commit, splitting TotalDailyHours evenly across them. Entries are
// saved sequentially in commit order; the first failed save aborts the loop
// and already-saved entries are not rolled back. An empty commit list is a
// no-op, not an error.
func (l *Logger) LogTime(date replicon.Date, commits []gitlab.Commit) error {
	timesheetURI, err := l.client.GetOrCreateTimesheet(date)
	if err != nil {
		return fmt.Errorf("failed to get or create timesheet: %w", err)
	}

	if len(commits) == 0 {
		logging.Info("No commits in merge request, nothing to log")
		return nil
	}

	hoursPerCommit := TotalDailyHours / float64(len(commits))

	for _, commit := range commits {
		entry := replicon.TimeEntry{
			Date:     date,
			Hours:    hoursPerCommit,
			Comments: commit.Message,
		}
		if err := l.client.SaveTimeEntry(timesheetURI, entry); err != nil {
			return fmt.Errorf("failed to save time entry: %w", err)
		}
	}

	logging.Info("Logged %.2f hours across %d commits", TotalDailyHours, len(commits))
	return nil
}
