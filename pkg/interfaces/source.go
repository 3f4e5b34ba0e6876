package interfaces

import (
	"context"
	"time"
)

// ChangedFile is one file of a change set as retrieved from a hosting API:
// its path and its raw unified-diff patch text. Patch is empty for binary or
// rename-only changes.
type ChangedFile struct {
	Filename string `json:"filename"`
	Patch    string `json:"patch"`
}

// PullRequest is a merged pull request as reported by the hosting API.
type PullRequest struct {
	Number       int       `json:"number"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	Author       string    `json:"author"`
	Branch       string    `json:"branch"`
	BaseBranch   string    `json:"base_branch"`
	MergedAt     time.Time `json:"merged_at"`
	Commits      int       `json:"commits"`
	ChangedFiles int       `json:"changed_files"`
	Additions    int       `json:"additions"`
	Deletions    int       `json:"deletions"`
	Labels       []string  `json:"labels"`
}

// Commit is a single commit as reported by the hosting API.
type Commit struct {
	SHA          string    `json:"sha"`
	Message      string    `json:"message"`
	Author       string    `json:"author"`
	AuthorEmail  string    `json:"author_email"`
	Committer    string    `json:"committer"`
	CommittedAt  time.Time `json:"committed_at"`
	URL          string    `json:"url"`
	FilesChanged int       `json:"files_changed"`
	Additions    int       `json:"additions"`
	Deletions    int       `json:"deletions"`
}

// Deployment is one deployment event with its latest status.
type Deployment struct {
	ID                int64     `json:"id"`
	SHA               string    `json:"sha"`
	Ref               string    `json:"ref"`
	Environment       string    `json:"environment"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	Creator           string    `json:"creator"`
	Description       string    `json:"description"`
	Status            string    `json:"status"`
	StatusDescription string    `json:"status_description"`
	URL               string    `json:"url"`
}

// ChangeSource abstracts the hosting API the analysis engine's callers fetch
// change sets from. The engine itself never touches it; commands and reports
// do.
type ChangeSource interface {
	// RecentMergedPRs returns pull requests merged within the window,
	// newest first.
	RecentMergedPRs(ctx context.Context, window time.Duration) ([]PullRequest, error)

	// RecentCommits returns commits on the branch within the window.
	RecentCommits(ctx context.Context, window time.Duration, branch string) ([]Commit, error)

	// RecentDeployments returns deployments created within the window,
	// optionally filtered by environment.
	RecentDeployments(ctx context.Context, window time.Duration, environment string) ([]Deployment, error)

	// PRFiles returns the changed files of a pull request, capped by the
	// source's file limit.
	PRFiles(ctx context.Context, number int) ([]ChangedFile, error)

	// CommitFiles returns the changed files of a commit, capped by the
	// source's file limit.
	CommitFiles(ctx context.Context, sha string) ([]ChangedFile, error)
}
