package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tkareem/changelens/pkg/analysis"
	"github.com/tkareem/changelens/pkg/cli"
	"github.com/tkareem/changelens/pkg/interfaces"
	"github.com/tkareem/changelens/pkg/report"
	"github.com/tkareem/changelens/pkg/vcs"
)

var (
	analyzePR     int
	analyzeCommit string
	analyzeDir    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the change risk of a pull request, commit, or patch directory",
	Long: `Analyze fetches the changed files of a pull request or commit and runs
the risk and quality analysis engine over their patches.

Analyze a pull request:
  changelens analyze --pr 123

Analyze a commit:
  changelens analyze --commit 0a1b2c3d

Analyze local patch files (offline, one *.patch file per changed file,
named after the file with '/' replaced by '__'):
  changelens analyze --diff-dir ./patches`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzePR, "pr", 0, "pull request number to analyze")
	analyzeCmd.Flags().StringVar(&analyzeCommit, "commit", "", "commit SHA to analyze")
	analyzeCmd.Flags().StringVar(&analyzeDir, "diff-dir", "", "directory of *.patch files to analyze")
	rootCmd.AddCommand(analyzeCmd)
}

// formatter writes an analysis result to a writer.
type formatter interface {
	Format(w io.Writer, result *report.Result) error
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if analyzePR == 0 && analyzeCommit == "" && analyzeDir == "" {
		return fmt.Errorf("analyze: provide --pr, --commit, or --diff-dir")
	}

	cfg, err := cli.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	files, err := collectFiles(ctx, cfg)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	slog.Info("collected changed files", "count", len(files))

	engine := analysis.NewEngine(analysis.WithConcurrency(cfg.Analysis.Concurrency))
	analyses := engine.AnalyzeFiles(ctx, files)
	changeSet := engine.AnalyzeChangeSet(analyses)

	result := &report.Result{Files: analyses, ChangeSet: changeSet}

	w := io.Writer(os.Stdout)
	if output != "" {
		file, fileErr := os.Create(output)
		if fileErr != nil {
			return fmt.Errorf("analyze: creating output file: %w", fileErr)
		}
		defer file.Close() // best-effort cleanup
		w = file
	}

	if err := selectFormatter(format).Format(w, result); err != nil {
		return fmt.Errorf("analyze: writing result: %w", err)
	}
	return nil
}

// collectFiles gathers (filename, patch) pairs from the requested source.
func collectFiles(ctx context.Context, cfg *cli.Config) ([]interfaces.ChangedFile, error) {
	if analyzeDir != "" {
		return readPatchDir(analyzeDir)
	}

	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}

	if analyzePR != 0 {
		return client.PRFiles(ctx, analyzePR)
	}
	return client.CommitFiles(ctx, analyzeCommit)
}

// readPatchDir loads *.patch files from a directory; the filename (minus the
// extension, with "__" standing in for "/") is the changed file's path.
func readPatchDir(dir string) ([]interfaces.ChangedFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading patch directory %s: %w", dir, err)
	}

	var files []interfaces.ChangedFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".patch") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading patch %s: %w", entry.Name(), err)
		}
		name := strings.TrimSuffix(entry.Name(), ".patch")
		files = append(files, interfaces.ChangedFile{
			Filename: strings.ReplaceAll(name, "__", "/"),
			Patch:    string(data),
		})
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no *.patch files found in %s", dir)
	}
	return files, nil
}

// newClient builds the GitHub change source from configuration.
func newClient(cfg *cli.Config) (*vcs.Client, error) {
	opts := []vcs.ClientOption{
		vcs.WithLimits(vcs.Limits{
			MaxFiles:   cfg.Limits.MaxFiles,
			MaxCommits: cfg.Limits.MaxCommits,
			MaxPRs:     cfg.Limits.MaxPRs,
		}),
	}
	if cfg.GitHub.BaseURL != "" {
		opts = append(opts, vcs.WithBaseURL(cfg.GitHub.BaseURL))
	}

	if cfg.GitHub.Owner != "" && cfg.GitHub.Repo != "" {
		return vcs.NewClient(cfg.GitHub.Owner, cfg.GitHub.Repo, cfg.Token(), opts...)
	}
	return vcs.NewClientFromEnv(opts...)
}

// selectFormatter returns the appropriate result formatter for the given
// format name.
func selectFormatter(name string) formatter {
	switch name {
	case "json":
		return report.NewJSONFormatter()
	default:
		return report.NewTerminalFormatter()
	}
}
