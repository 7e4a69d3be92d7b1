package gitlab

import "fmt"

// EventKindMergeRequest is the object_kind GitLab sends for merge request events
const EventKindMergeRequest = "merge_request"

// MergeRequestEvent represents the GitLab merge request webhook payload
type MergeRequestEvent struct {
	ObjectKind       string       `json:"object_kind"`
	Project          Project      `json:"project"`
	ObjectAttributes MRAttributes `json:"object_attributes"`
	Commits          []Commit     `json:"commits"`
}

// Project identifies the GitLab project the event belongs to
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MRAttributes carries the merge request fields used for notifications
type MRAttributes struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Commit is a single commit included in the merge request
type Commit struct {
	Message string `json:"message"`
}

// IsMergeRequest reports whether this event should be processed at all.
// Anything else is deliberately ignored, not rejected.
func (e *MergeRequestEvent) IsMergeRequest() bool {
	return e.ObjectKind == EventKindMergeRequest
}

// Normalize ensures the event is safe to iterate: GitLab omits the commits
// array on some deliveries and decoding leaves it nil.
func (e *MergeRequestEvent) Normalize() {
	if e.Commits == nil {
		e.Commits = []Commit{}
	}
}

// Validate checks that the payload carries the fields the handler depends on
func (e *MergeRequestEvent) Validate() error {
	if e.ObjectKind == "" {
		return fmt.Errorf("missing object_kind")
	}
	if e.Project.ID == "" {
		return fmt.Errorf("missing project ID")
	}
	if e.IsMergeRequest() {
		if e.ObjectAttributes.Title == "" {
			return fmt.Errorf("missing merge request title")
		}
		if e.ObjectAttributes.URL == "" {
			return fmt.Errorf("missing merge request URL")
		}
	}
	return nil
}

// ProjectLabel returns the project name, falling back to the project ID when
// GitLab omits the name.
func (e *MergeRequestEvent) ProjectLabel() string {
	if e.Project.Name != "" {
		return e.Project.Name
	}
	return e.Project.ID
}
