package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tkareem/changelens/pkg/cli"
	"github.com/tkareem/changelens/pkg/vcs"
)

var (
	correlateIncident string
	correlateService  string
	correlateRegion   string
)

var correlateCmd = &cobra.Command{
	Use:   "correlate",
	Short: "Correlate an incident time with recent deployments and merges",
	Long: `Correlate lists the deployments and merged pull requests that landed
in the six hours before an incident, optionally filtered by service and
region.`,
	RunE: runCorrelate,
}

func init() {
	correlateCmd.Flags().StringVar(&correlateIncident, "incident", "", "incident time (RFC 3339, e.g. 2026-08-23T14:00:00Z)")
	correlateCmd.Flags().StringVar(&correlateService, "service", "", "service name to filter deployments by")
	correlateCmd.Flags().StringVar(&correlateRegion, "region", "", "region name to filter deployments by")
	_ = correlateCmd.MarkFlagRequired("incident")
	rootCmd.AddCommand(correlateCmd)
}

func runCorrelate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	incident, err := time.Parse(time.RFC3339, correlateIncident)
	if err != nil {
		return fmt.Errorf("correlate: parsing incident time: %w", err)
	}

	cfg, err := cli.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("correlate: %w", err)
	}

	client, err := newClient(cfg)
	if err != nil {
		return fmt.Errorf("correlate: %w", err)
	}

	analysisReport, err := vcs.CorrelateDeployments(ctx, client, incident, correlateService, correlateRegion)
	if err != nil {
		return fmt.Errorf("correlate: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), analysisReport)
	return nil
}
