package github

import "time"

// PullRequest contains the pull request fields the tracker cares about
type PullRequest struct {
	Number      int       `json:"number"`
	Title       string    `json:"title"`
	State       string    `json:"state"`
	HTMLURL     string    `json:"html_url"`
	IssueURL    string    `json:"issue_url"`
	HeadSHA     string    `json:"head_sha"`
	AuthorLogin string    `json:"author_login"`
	Draft       bool      `json:"draft"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Commit is a single commit in a pull request
type Commit struct {
	SHA     string `json:"sha"`
	Message string `json:"message,omitempty"`
	Author  string `json:"author,omitempty"`
}

// CommitStatus represents an individual commit status (a "check" in the
// statuses API sense, not a check run)
type CommitStatus struct {
	ID          int64     `json:"id"`
	Context     string    `json:"context"` // e.g., "ci/prow/e2e", "tide"
	State       string    `json:"state"`   // pending, success, failure, error
	TargetURL   string    `json:"target_url,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CommitStatusRequest contains the fields for creating a commit status
type CommitStatusRequest struct {
	State       string `json:"state"` // error, failure, pending, success
	Description string `json:"description"`
	Context     string `json:"context"`
	TargetURL   string `json:"target_url,omitempty"`
}

// StatusStates are the commit status states GitHub accepts
var StatusStates = []string{"error", "failure", "pending", "success"}

// ValidStatusState reports whether state is one of the accepted commit
// status states.
func ValidStatusState(state string) bool {
	for _, s := range StatusStates {
		if s == state {
			return true
		}
	}
	return false
}
