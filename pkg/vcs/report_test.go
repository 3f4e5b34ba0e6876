package vcs

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tkareem/changelens/pkg/interfaces"
)

// mockSource is a canned change source for digest and correlation tests.
type mockSource struct {
	prs         []interfaces.PullRequest
	commits     []interfaces.Commit
	deployments []interfaces.Deployment
	files       []interfaces.ChangedFile
	err         error
}

func (m *mockSource) RecentMergedPRs(ctx context.Context, window time.Duration) ([]interfaces.PullRequest, error) {
	return m.prs, m.err
}

func (m *mockSource) RecentCommits(ctx context.Context, window time.Duration, branch string) ([]interfaces.Commit, error) {
	return m.commits, m.err
}

func (m *mockSource) RecentDeployments(ctx context.Context, window time.Duration, environment string) ([]interfaces.Deployment, error) {
	return m.deployments, m.err
}

func (m *mockSource) PRFiles(ctx context.Context, number int) ([]interfaces.ChangedFile, error) {
	return m.files, m.err
}

func (m *mockSource) CommitFiles(ctx context.Context, sha string) ([]interfaces.ChangedFile, error) {
	return m.files, m.err
}

func TestActivityReport_Empty(t *testing.T) {
	digest, err := ActivityReport(context.Background(), &mockSource{}, 24*time.Hour, "main", nil)
	if err != nil {
		t.Fatalf("ActivityReport() error: %v", err)
	}

	for _, want := range []string{
		"Recent GitHub Activity (last 24 hours):",
		"Merged Pull Requests (0):",
		"- No merged PRs found",
		"Deployments (0):",
		"- No deployments found",
		"Commits (0):",
		"- No commits found",
	} {
		if !strings.Contains(digest, want) {
			t.Errorf("digest missing %q:\n%s", want, digest)
		}
	}
}

func TestActivityReport_Sections(t *testing.T) {
	mergedAt := time.Date(2026, 8, 22, 14, 0, 0, 0, time.UTC)
	src := &mockSource{
		prs: []interfaces.PullRequest{{
			Number:       42,
			Title:        "Harden deploy script",
			Author:       "kim",
			Branch:       "fix/deploy",
			BaseBranch:   "main",
			MergedAt:     mergedAt,
			Additions:    12,
			Deletions:    3,
			ChangedFiles: 2,
		}},
		deployments: []interfaces.Deployment{{
			ID:          1,
			SHA:         "aaaa1111bbbb2222",
			Ref:         "main",
			Environment: "production",
			Status:      "success",
			CreatedAt:   mergedAt.Add(30 * time.Minute),
		}},
		commits: []interfaces.Commit{{
			SHA:         "cccc3333dddd4444",
			Message:     "Fix race in watcher\n\nDetails.",
			Author:      "Kim",
			CommittedAt: mergedAt.Add(time.Hour),
		}},
		files: []interfaces.ChangedFile{
			{Filename: "deploy.sh", Patch: "@@ -1 +1 @@\n+set -euo pipefail"},
		},
	}

	annotate := func(ctx context.Context, files []interfaces.ChangedFile) string {
		return fmt.Sprintf("%d files analyzed", len(files))
	}

	digest, err := ActivityReport(context.Background(), src, 24*time.Hour, "main", annotate)
	if err != nil {
		t.Fatalf("ActivityReport() error: %v", err)
	}

	for _, want := range []string{
		"Merged Pull Requests (1):",
		"- #42: Harden deploy script",
		"Merged: 2026-08-22T14:00:00Z by kim",
		"Branch: fix/deploy -> main",
		"Changes: +12 -3 (2 files)",
		"Deployments (1):",
		"- production: main",
		"Status: success",
		"SHA: aaaa1111",
		"Commits (1):",
		"- cccc3333: Fix race in watcher",
		"Author: Kim",
		"Analysis: 1 files analyzed",
	} {
		if !strings.Contains(digest, want) {
			t.Errorf("digest missing %q:\n%s", want, digest)
		}
	}
}

func TestActivityReport_TopN(t *testing.T) {
	src := &mockSource{}
	for i := 0; i < 8; i++ {
		src.commits = append(src.commits, interfaces.Commit{
			SHA:     fmt.Sprintf("sha%05d", i),
			Message: fmt.Sprintf("commit %d", i),
		})
	}

	digest, err := ActivityReport(context.Background(), src, time.Hour, "main", nil)
	if err != nil {
		t.Fatalf("ActivityReport() error: %v", err)
	}

	if !strings.Contains(digest, "Commits (8):") {
		t.Errorf("digest missing total count:\n%s", digest)
	}
	if got := strings.Count(digest, "- sha"); got != activityTopN {
		t.Errorf("digest lists %d commits, want %d", got, activityTopN)
	}
}

func TestCorrelateDeployments(t *testing.T) {
	incident := time.Now().Add(-30 * time.Minute)

	src := &mockSource{
		deployments: []interfaces.Deployment{
			{
				ID:          1,
				SHA:         "aaaa1111bbbb",
				Ref:         "main",
				Environment: "prod-api-us-east-1",
				Status:      "success",
				CreatedAt:   incident.Add(-2 * time.Hour),
			},
			{
				// Landed after the incident: not a cause.
				ID:          2,
				Environment: "prod-api-us-east-1",
				CreatedAt:   incident.Add(time.Hour),
			},
			{
				// Different service.
				ID:          3,
				Environment: "prod-web",
				CreatedAt:   incident.Add(-time.Hour),
			},
		},
		prs: []interfaces.PullRequest{
			{Number: 7, Title: "Tune connection pool", Author: "kim", MergedAt: incident.Add(-90 * time.Minute)},
			{Number: 5, Title: "Too old to matter", MergedAt: incident.Add(-8 * time.Hour)},
		},
	}

	out, err := CorrelateDeployments(context.Background(), src, incident, "api", "us-east-1")
	if err != nil {
		t.Fatalf("CorrelateDeployments() error: %v", err)
	}

	for _, want := range []string{
		"Deployment Correlation Analysis",
		"Service: api",
		"Region: us-east-1",
		"Found 2 potential correlations:",
		"1. deployment (2h0m0s before incident)",
		"Environment: prod-api-us-east-1",
		"2. pull request (1h30m0s before incident)",
		"#7: Tune connection pool",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "prod-web") {
		t.Errorf("report includes deployment for another service:\n%s", out)
	}
	if strings.Contains(out, "Too old to matter") {
		t.Errorf("report includes a merge outside the window:\n%s", out)
	}
}

func TestCorrelateDeployments_NoMatches(t *testing.T) {
	incident := time.Now().Add(-10 * time.Minute)

	out, err := CorrelateDeployments(context.Background(), &mockSource{}, incident, "", "")
	if err != nil {
		t.Fatalf("CorrelateDeployments() error: %v", err)
	}
	if !strings.Contains(out, "No correlations found") {
		t.Errorf("report missing no-correlation notice:\n%s", out)
	}
}

func TestShortSHA(t *testing.T) {
	if got := shortSHA("abcdef0123456789"); got != "abcdef01" {
		t.Errorf("shortSHA = %q", got)
	}
	if got := shortSHA("abc"); got != "abc" {
		t.Errorf("shortSHA short input = %q", got)
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("subject\nbody"); got != "subject" {
		t.Errorf("firstLine = %q", got)
	}
	if got := firstLine("single"); got != "single" {
		t.Errorf("firstLine = %q", got)
	}
}
