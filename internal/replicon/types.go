package replicon

import "time"

// TimesheetGetOptionURI asks Replicon to create the timesheet when none
// exists yet for the user and date.
const TimesheetGetOptionURI = "urn:replicon:timesheet-get-option:create-timesheet-if-necessary"

// Date is the calendar date shape Replicon expects on every call
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Today returns the current local date
func Today() Date {
	now := time.Now()
	return Date{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}
}

// getTimesheetRequest is the body for the get-timesheet call
type getTimesheetRequest struct {
	UserURI               string `json:"userUri"`
	Date                  Date   `json:"date"`
	TimesheetGetOptionURI string `json:"timesheetGetOptionUri"`
}

// getTimesheetResponse is the Replicon response for get-timesheet
type getTimesheetResponse struct {
	Timesheet struct {
		URI string `json:"uri"`
	} `json:"timesheet"`
}

// saveTimeEntryRequest is the body for the save-time-entry call
type saveTimeEntryRequest struct {
	TimesheetURI string    `json:"timesheetUri"`
	TimeEntry    TimeEntry `json:"timeEntry"`
}

// TimeEntry is a single block of hours recorded against a timesheet
type TimeEntry struct {
	Date     Date    `json:"date"`
	Hours    float64 `json:"hours"`
	Comments string  `json:"comments"`
}
