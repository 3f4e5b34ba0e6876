package vcs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tkareem/changelens/pkg/interfaces"
)

// correlationWindow is how far before an incident a deployment or merge is
// considered a potential cause.
const correlationWindow = 6 * time.Hour

// CorrelateDeployments reports deployments and merged PRs that landed in the
// six hours before the incident time, optionally filtered by service and
// region substrings (matched against environment, description, and ref).
func CorrelateDeployments(ctx context.Context, source interfaces.ChangeSource, incident time.Time, service, region string) (string, error) {
	window := time.Since(incident) + correlationWindow
	if window < correlationWindow {
		window = correlationWindow
	}

	prs, err := source.RecentMergedPRs(ctx, window)
	if err != nil {
		return "", fmt.Errorf("vcs: correlating deployments: %w", err)
	}
	deployments, err := source.RecentDeployments(ctx, window, "")
	if err != nil {
		return "", fmt.Errorf("vcs: correlating deployments: %w", err)
	}

	if service != "" {
		deployments = filterDeployments(deployments, service, region)
	}

	var b strings.Builder
	b.WriteString("Deployment Correlation Analysis\n")
	fmt.Fprintf(&b, "Incident Time: %s\n", incident.Format(time.RFC3339))
	if service != "" {
		fmt.Fprintf(&b, "Service: %s\n", service)
	}
	if region != "" {
		fmt.Fprintf(&b, "Region: %s\n", region)
	}
	b.WriteString("\n")

	type correlation struct {
		kind   string
		before time.Duration
		render func(*strings.Builder)
	}

	var correlations []correlation
	for _, d := range deployments {
		d := d
		diff := incident.Sub(d.CreatedAt)
		if diff < 0 || diff > correlationWindow {
			continue
		}
		correlations = append(correlations, correlation{
			kind:   "deployment",
			before: diff,
			render: func(b *strings.Builder) {
				fmt.Fprintf(b, "   Environment: %s\n", d.Environment)
				fmt.Fprintf(b, "   Status: %s\n", d.Status)
				fmt.Fprintf(b, "   SHA: %s\n", shortSHA(d.SHA))
				fmt.Fprintf(b, "   Time: %s\n\n", d.CreatedAt.Format(time.RFC3339))
			},
		})
	}
	for _, pr := range prs {
		pr := pr
		diff := incident.Sub(pr.MergedAt)
		if diff < 0 || diff > correlationWindow {
			continue
		}
		correlations = append(correlations, correlation{
			kind:   "pull request",
			before: diff,
			render: func(b *strings.Builder) {
				fmt.Fprintf(b, "   #%d: %s\n", pr.Number, pr.Title)
				fmt.Fprintf(b, "   Author: %s\n", pr.Author)
				fmt.Fprintf(b, "   Changes: +%d -%d\n", pr.Additions, pr.Deletions)
				fmt.Fprintf(b, "   Time: %s\n\n", pr.MergedAt.Format(time.RFC3339))
			},
		})
	}

	if len(correlations) == 0 {
		b.WriteString("No correlations found - no deployments or PRs in the 6 hours before the incident.\n")
		return b.String(), nil
	}

	fmt.Fprintf(&b, "Found %d potential correlations:\n\n", len(correlations))
	for i, corr := range correlations {
		fmt.Fprintf(&b, "%d. %s (%s before incident)\n", i+1, corr.kind, corr.before.Round(time.Minute))
		corr.render(&b)
	}

	return b.String(), nil
}

// filterDeployments keeps deployments whose environment, description, or ref
// mentions the service (and the region, when given).
func filterDeployments(deployments []interfaces.Deployment, service, region string) []interfaces.Deployment {
	service = strings.ToLower(service)
	region = strings.ToLower(region)

	var filtered []interfaces.Deployment
	for _, d := range deployments {
		haystack := strings.ToLower(d.Environment + " " + d.Description + " " + d.Ref)
		if !strings.Contains(haystack, service) {
			continue
		}
		if region != "" && !strings.Contains(haystack, region) {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered
}
