package replicon

// API is an interface for Replicon timesheet operations
// This interface allows for easy mocking in tests
type API interface {
	GetOrCreateTimesheet(date Date) (string, error)
	SaveTimeEntry(timesheetURI string, entry TimeEntry) error
}

// Verify that Client implements the API interface
var _ API = (*Client)(nil)
