// Package vcs provides the hosting-API retrieval layer: it fetches recent
// pull requests, commits, and deployments from GitHub and turns them into
// the (filename, patch) pairs the analysis engine consumes.
package vcs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/go-github/github"
	"golang.org/x/oauth2"

	"github.com/tkareem/changelens/pkg/interfaces"
)

// Limits bound how much work a query can trigger. They are caller-side
// policy: the engine itself accepts any number of files.
type Limits struct {
	MaxFiles   int // changed files analyzed per PR or commit
	MaxCommits int // commits returned per query
	MaxPRs     int // pull requests returned per query
}

// DefaultLimits returns the default retrieval caps.
func DefaultLimits() Limits {
	return Limits{MaxFiles: 10, MaxCommits: 5, MaxPRs: 5}
}

// Client is a GitHub change source for a single owner/repo. It implements
// interfaces.ChangeSource. Construct it explicitly and pass it by reference;
// there is no package-level shared client.
type Client struct {
	gh     *github.Client
	owner  string
	repo   string
	limits Limits
}

// ClientOption configures a Client.
type ClientOption func(*Client) error

// WithLimits overrides the default retrieval caps.
func WithLimits(l Limits) ClientOption {
	return func(c *Client) error {
		if l.MaxFiles > 0 {
			c.limits.MaxFiles = l.MaxFiles
		}
		if l.MaxCommits > 0 {
			c.limits.MaxCommits = l.MaxCommits
		}
		if l.MaxPRs > 0 {
			c.limits.MaxPRs = l.MaxPRs
		}
		return nil
	}
}

// WithBaseURL points the client at a GitHub Enterprise (or test) endpoint.
func WithBaseURL(raw string) ClientOption {
	return func(c *Client) error {
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("vcs: parsing base URL %s: %w", raw, err)
		}
		c.gh.BaseURL = u
		return nil
	}
}

// NewClient creates a GitHub client for one repository. An empty token makes
// unauthenticated requests, which is enough for public repositories.
func NewClient(owner, repo, token string, opts ...ClientOption) (*Client, error) {
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("vcs: owner and repo are required")
	}

	httpClient := oauth2.NewClient(context.Background(), nil)
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	c := &Client{
		gh:     github.NewClient(httpClient),
		owner:  owner,
		repo:   repo,
		limits: DefaultLimits(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewClientFromEnv creates a Client from GITHUB_TOKEN and GITHUB_REPOSITORY
// ("owner/repo").
func NewClientFromEnv(opts ...ClientOption) (*Client, error) {
	repository := os.Getenv("GITHUB_REPOSITORY")
	if repository == "" {
		return nil, fmt.Errorf("vcs: GITHUB_REPOSITORY not set")
	}

	parts := strings.SplitN(repository, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("vcs: invalid GITHUB_REPOSITORY format %q, expected owner/repo", repository)
	}

	return NewClient(parts[0], parts[1], os.Getenv("GITHUB_TOKEN"), opts...)
}

// Limits returns the client's retrieval caps.
func (c *Client) Limits() Limits {
	return c.limits
}

// RecentMergedPRs returns pull requests merged within the window, newest
// first, capped at the MaxPRs limit. PRs are listed by update time; pages
// are followed until updates fall outside the window or the cap is hit.
func (c *Client) RecentMergedPRs(ctx context.Context, window time.Duration) ([]interfaces.PullRequest, error) {
	since := time.Now().Add(-window)

	opts := &github.PullRequestListOptions{
		State:       "closed",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: 50},
	}

	var prs []interfaces.PullRequest
	for {
		pulls, resp, err := c.gh.PullRequests.List(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("vcs: listing pull requests for %s/%s: %w", c.owner, c.repo, err)
		}

		for _, pr := range pulls {
			if pr.GetUpdatedAt().Before(since) {
				return prs, nil
			}
			if pr.MergedAt == nil || pr.GetMergedAt().Before(since) {
				continue
			}

			labels := make([]string, 0, len(pr.Labels))
			for _, l := range pr.Labels {
				labels = append(labels, l.GetName())
			}

			prs = append(prs, interfaces.PullRequest{
				Number:       pr.GetNumber(),
				Title:        pr.GetTitle(),
				URL:          pr.GetHTMLURL(),
				Author:       pr.User.GetLogin(),
				Branch:       pr.Head.GetRef(),
				BaseBranch:   pr.Base.GetRef(),
				MergedAt:     pr.GetMergedAt(),
				Commits:      pr.GetCommits(),
				ChangedFiles: pr.GetChangedFiles(),
				Additions:    pr.GetAdditions(),
				Deletions:    pr.GetDeletions(),
				Labels:       labels,
			})

			if len(prs) >= c.limits.MaxPRs {
				return prs, nil
			}
		}

		if resp.NextPage == 0 {
			return prs, nil
		}
		opts.Page = resp.NextPage
	}
}

// RecentCommits returns commits on the branch within the window, capped at
// the MaxCommits limit.
func (c *Client) RecentCommits(ctx context.Context, window time.Duration, branch string) ([]interfaces.Commit, error) {
	opts := &github.CommitsListOptions{
		SHA:         branch,
		Since:       time.Now().Add(-window),
		ListOptions: github.ListOptions{PerPage: 50},
	}

	var commits []interfaces.Commit
	for {
		list, resp, err := c.gh.Repositories.ListCommits(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("vcs: listing commits for %s/%s: %w", c.owner, c.repo, err)
		}

		for _, rc := range list {
			commits = append(commits, interfaces.Commit{
				SHA:         rc.GetSHA(),
				Message:     rc.Commit.GetMessage(),
				Author:      rc.Commit.Author.GetName(),
				AuthorEmail: rc.Commit.Author.GetEmail(),
				Committer:   rc.Commit.Committer.GetName(),
				CommittedAt: rc.Commit.Committer.GetDate(),
				URL:         rc.GetHTMLURL(),
				Additions:   rc.Stats.GetAdditions(),
				Deletions:   rc.Stats.GetDeletions(),
			})

			if len(commits) >= c.limits.MaxCommits {
				return commits, nil
			}
		}

		if resp.NextPage == 0 {
			return commits, nil
		}
		opts.Page = resp.NextPage
	}
}

// RecentDeployments returns deployments created within the window with
// their latest status, optionally filtered by environment. Deployments are
// listed newest first; pages are followed until the window edge.
func (c *Client) RecentDeployments(ctx context.Context, window time.Duration, environment string) ([]interfaces.Deployment, error) {
	since := time.Now().Add(-window)

	opts := &github.DeploymentsListOptions{
		ListOptions: github.ListOptions{PerPage: 50},
	}

	var deployments []interfaces.Deployment
	for {
		list, resp, err := c.gh.Repositories.ListDeployments(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("vcs: listing deployments for %s/%s: %w", c.owner, c.repo, err)
		}

		for _, d := range list {
			if d.GetCreatedAt().Before(since) {
				return deployments, nil
			}
			if environment != "" && d.GetEnvironment() != environment {
				continue
			}

			dep := interfaces.Deployment{
				ID:          d.GetID(),
				SHA:         d.GetSHA(),
				Ref:         d.GetRef(),
				Environment: d.GetEnvironment(),
				CreatedAt:   d.GetCreatedAt().Time,
				UpdatedAt:   d.GetUpdatedAt().Time,
				Creator:     d.Creator.GetLogin(),
				Description: d.GetDescription(),
				Status:      "unknown",
				URL:         d.GetURL(),
			}

			statuses, _, err := c.gh.Repositories.ListDeploymentStatuses(ctx, c.owner, c.repo, d.GetID(), nil)
			if err == nil && len(statuses) > 0 {
				dep.Status = statuses[0].GetState()
				dep.StatusDescription = statuses[0].GetDescription()
			}

			deployments = append(deployments, dep)
		}

		if resp.NextPage == 0 {
			return deployments, nil
		}
		opts.Page = resp.NextPage
	}
}

// PRFiles returns the changed files of a pull request, capped at the
// MaxFiles limit. Files without patch text (binary, rename-only) are carried
// with an empty patch.
func (c *Client) PRFiles(ctx context.Context, number int) ([]interfaces.ChangedFile, error) {
	list, _, err := c.gh.PullRequests.ListFiles(ctx, c.owner, c.repo, number, &github.ListOptions{PerPage: 100})
	if err != nil {
		return nil, fmt.Errorf("vcs: listing files for PR #%d: %w", number, err)
	}

	files := make([]interfaces.ChangedFile, 0, len(list))
	for _, f := range list {
		files = append(files, interfaces.ChangedFile{
			Filename: f.GetFilename(),
			Patch:    f.GetPatch(),
		})
		if len(files) >= c.limits.MaxFiles {
			break
		}
	}
	return files, nil
}

// CommitFiles returns the changed files of a commit, capped at the MaxFiles
// limit.
func (c *Client) CommitFiles(ctx context.Context, sha string) ([]interfaces.ChangedFile, error) {
	commit, _, err := c.gh.Repositories.GetCommit(ctx, c.owner, c.repo, sha)
	if err != nil {
		return nil, fmt.Errorf("vcs: fetching commit %s: %w", sha, err)
	}

	files := make([]interfaces.ChangedFile, 0, len(commit.Files))
	for i := range commit.Files {
		f := &commit.Files[i]
		files = append(files, interfaces.ChangedFile{
			Filename: f.GetFilename(),
			Patch:    f.GetPatch(),
		})
		if len(files) >= c.limits.MaxFiles {
			break
		}
	}
	return files, nil
}
