package report

import (
	"fmt"
	"io"

	"github.com/tkareem/changelens/pkg/interfaces"
)

// Result bundles per-file analyses with their change-set aggregation for
// output formatting.
type Result struct {
	Files     []*interfaces.FileAnalysis    `json:"files"`
	ChangeSet *interfaces.ChangeSetAnalysis `json:"change_set"`
}

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

// TerminalFormatter writes a color-coded analysis result to a terminal.
type TerminalFormatter struct{}

// NewTerminalFormatter creates a terminal result formatter.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{}
}

// Format writes the result to the given writer using ANSI colors.
func (f *TerminalFormatter) Format(w io.Writer, result *Result) error {
	cs := result.ChangeSet

	fmt.Fprintf(w, "\n%s%s══════════════════════════════════════════%s\n", colorBold, colorCyan, colorReset)
	fmt.Fprintf(w, "%s%s  Change Risk Analysis%s\n", colorBold, colorCyan, colorReset)
	fmt.Fprintf(w, "%s%s══════════════════════════════════════════%s\n\n", colorBold, colorCyan, colorReset)

	fmt.Fprintf(w, "  %s%sOverall Risk: %s%s\n\n", colorBold, riskColor(cs.OverallRisk), cs.OverallRisk, colorReset)
	fmt.Fprintf(w, "  Summary: %s\n", cs.ChangeSummary)
	fmt.Fprintf(w, "  Quality: %s\n\n", cs.QualityReport)

	if len(result.Files) > 0 {
		fmt.Fprintf(w, "  %s── Files (%d) ──%s\n", colorBold, len(result.Files), colorReset)
		for _, fa := range result.Files {
			fmt.Fprintf(w, "    %s[%s]%s %s %s(%s)%s\n",
				riskColor(fa.RiskLevel), fa.RiskLevel, colorReset,
				fa.Filename, colorDim, fa.FileType, colorReset)
			fmt.Fprintf(w, "      %s\n", fa.Summary)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// riskColor returns the ANSI color for a risk level.
func riskColor(level interfaces.RiskLevel) string {
	switch level {
	case interfaces.RiskHigh:
		return colorRed
	case interfaces.RiskMedium:
		return colorYellow
	case interfaces.RiskLow:
		return colorGreen
	default:
		return colorReset
	}
}
