package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tkareem/changelens/pkg/analysis"
	"github.com/tkareem/changelens/pkg/cli"
	"github.com/tkareem/changelens/pkg/interfaces"
	"github.com/tkareem/changelens/pkg/vcs"
)

var activityHours int

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Summarize recent repository activity with change risk annotations",
	Long: `Activity lists the pull requests merged, deployments created, and
commits pushed in the lookback window. Each PR and commit is annotated with
the analyzed risk of its change set.`,
	RunE: runActivity,
}

func init() {
	activityCmd.Flags().IntVar(&activityHours, "hours", 24, "lookback window in hours")
	rootCmd.AddCommand(activityCmd)
}

func runActivity(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := cli.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("activity: %w", err)
	}

	client, err := newClient(cfg)
	if err != nil {
		return fmt.Errorf("activity: %w", err)
	}

	engine := analysis.NewEngine(analysis.WithConcurrency(cfg.Analysis.Concurrency))
	annotate := func(ctx context.Context, files []interfaces.ChangedFile) string {
		cs := engine.AnalyzeChangeSet(engine.AnalyzeFiles(ctx, files))
		return fmt.Sprintf("risk %s; %s", cs.OverallRisk, cs.ChangeSummary)
	}

	window := time.Duration(activityHours) * time.Hour
	digest, err := vcs.ActivityReport(ctx, client, window, cfg.GitHub.Branch, annotate)
	if err != nil {
		return fmt.Errorf("activity: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), digest)
	return nil
}
