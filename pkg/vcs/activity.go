package vcs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tkareem/changelens/pkg/interfaces"
)

// activityTopN is how many entries of each kind the digest shows.
const activityTopN = 5

// Annotator produces an extra report line for one change set's files, e.g.
// its analyzed risk. A nil Annotator leaves the digest unannotated.
type Annotator func(ctx context.Context, files []interfaces.ChangedFile) string

// ActivityReport renders a human-readable digest of recent merged PRs,
// deployments, and commits. When annotate is non-nil it is invoked with each
// PR's and commit's changed files and its output appended to the entry.
func ActivityReport(ctx context.Context, source interfaces.ChangeSource, window time.Duration, branch string, annotate Annotator) (string, error) {
	prs, err := source.RecentMergedPRs(ctx, window)
	if err != nil {
		return "", fmt.Errorf("vcs: activity report: %w", err)
	}
	deployments, err := source.RecentDeployments(ctx, window, "")
	if err != nil {
		return "", fmt.Errorf("vcs: activity report: %w", err)
	}
	commits, err := source.RecentCommits(ctx, window, branch)
	if err != nil {
		return "", fmt.Errorf("vcs: activity report: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recent GitHub Activity (last %d hours):\n\n", int(window.Hours()))

	fmt.Fprintf(&b, "Merged Pull Requests (%d):\n", len(prs))
	if len(prs) == 0 {
		b.WriteString("- No merged PRs found\n\n")
	} else {
		for _, pr := range top(prs) {
			fmt.Fprintf(&b, "- #%d: %s\n", pr.Number, pr.Title)
			fmt.Fprintf(&b, "  Merged: %s by %s\n", pr.MergedAt.Format(time.RFC3339), pr.Author)
			fmt.Fprintf(&b, "  Branch: %s -> %s\n", pr.Branch, pr.BaseBranch)
			fmt.Fprintf(&b, "  Changes: +%d -%d (%d files)\n", pr.Additions, pr.Deletions, pr.ChangedFiles)
			if annotate != nil {
				if files, err := source.PRFiles(ctx, pr.Number); err == nil {
					fmt.Fprintf(&b, "  Analysis: %s\n", annotate(ctx, files))
				}
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "Deployments (%d):\n", len(deployments))
	if len(deployments) == 0 {
		b.WriteString("- No deployments found\n\n")
	} else {
		for _, d := range top(deployments) {
			fmt.Fprintf(&b, "- %s: %s\n", d.Environment, d.Ref)
			fmt.Fprintf(&b, "  Status: %s\n", d.Status)
			fmt.Fprintf(&b, "  Created: %s\n", d.CreatedAt.Format(time.RFC3339))
			fmt.Fprintf(&b, "  SHA: %s\n\n", shortSHA(d.SHA))
		}
	}

	fmt.Fprintf(&b, "Commits (%d):\n", len(commits))
	if len(commits) == 0 {
		b.WriteString("- No commits found\n")
	} else {
		for _, c := range top(commits) {
			fmt.Fprintf(&b, "- %s: %s\n", shortSHA(c.SHA), firstLine(c.Message))
			fmt.Fprintf(&b, "  Author: %s\n", c.Author)
			fmt.Fprintf(&b, "  Time: %s\n", c.CommittedAt.Format(time.RFC3339))
			if annotate != nil {
				if files, err := source.CommitFiles(ctx, c.SHA); err == nil {
					fmt.Fprintf(&b, "  Analysis: %s\n", annotate(ctx, files))
				}
			}
			b.WriteString("\n")
		}
	}

	return b.String(), nil
}

// top returns at most activityTopN entries.
func top[T any](items []T) []T {
	if len(items) > activityTopN {
		return items[:activityTopN]
	}
	return items
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
