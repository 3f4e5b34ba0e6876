package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/tkareem/changelens/pkg/interfaces"
	"github.com/tkareem/changelens/pkg/report"
	"github.com/tkareem/changelens/pkg/risk"
)

// maxSummaryTypes is how many file-type counts the change summary names.
const maxSummaryTypes = 3

// AnalyzeChangeSet combines per-file analyses into an overall risk tier, a
// narrative summary, and quality metrics. It is stateless and recomputed on
// every call; an empty input yields the best-case defaults.
func (e *Engine) AnalyzeChangeSet(files []*interfaces.FileAnalysis) *interfaces.ChangeSetAnalysis {
	metrics := computeQualityMetrics(files)

	return &interfaces.ChangeSetAnalysis{
		OverallRisk:    overallRisk(files),
		ChangeSummary:  changeSummary(files),
		QualityMetrics: metrics,
		QualityReport:  report.RenderQuality(metrics),
	}
}

// overallRisk averages the per-file risk weights and re-thresholds the mean.
func overallRisk(files []*interfaces.FileAnalysis) interfaces.RiskLevel {
	if len(files) == 0 {
		return interfaces.RiskLow
	}

	total := 0
	for _, fa := range files {
		total += risk.Weight(fa.RiskLevel)
	}
	return risk.FromAverage(float64(total) / float64(len(files)))
}

// changeSummary builds the semicolon-joined narrative. Clauses appear in a
// fixed order and only when their count is nonzero.
func changeSummary(files []*interfaces.FileAnalysis) string {
	if len(files) == 0 {
		return "no significant changes"
	}

	var clauses []string
	clauses = append(clauses, fmt.Sprintf("%d %s changed", len(files), pluralFile(len(files))))

	if types := topFileTypes(files); types != "" {
		clauses = append(clauses, "types: "+types)
	}

	highRisk := lo.CountBy(files, func(fa *interfaces.FileAnalysis) bool {
		return fa.RiskLevel == interfaces.RiskHigh
	})
	if highRisk > 0 {
		clauses = append(clauses, fmt.Sprintf("%d high-risk %s", highRisk, pluralFile(highRisk)))
	}

	functions := lo.SumBy(files, func(fa *interfaces.FileAnalysis) int {
		return fa.Signals.FunctionCount()
	})
	if functions > 0 {
		clauses = append(clauses, fmt.Sprintf("%d functions changed", functions))
	}

	imports := lo.SumBy(files, func(fa *interfaces.FileAnalysis) int {
		return fa.Signals.ImportCount()
	})
	if imports > 0 {
		clauses = append(clauses, fmt.Sprintf("%d imports changed", imports))
	}

	configFiles := lo.CountBy(files, isConfigLike)
	if configFiles > 0 {
		clauses = append(clauses, fmt.Sprintf("%d config %s", configFiles, pluralFile(configFiles)))
	}

	critical := lo.SumBy(files, func(fa *interfaces.FileAnalysis) int {
		return len(fa.Signals.CriticalPatterns)
	})
	if critical > 0 {
		clauses = append(clauses, fmt.Sprintf("%d critical patterns", critical))
	}

	return strings.Join(clauses, "; ")
}

// topFileTypes renders the three most frequent file types, most frequent
// first. Frequency ties break alphabetically for stable output.
func topFileTypes(files []*interfaces.FileAnalysis) string {
	counts := lo.CountValuesBy(files, func(fa *interfaces.FileAnalysis) interfaces.FileType {
		return fa.FileType
	})

	types := lo.Keys(counts)
	sort.Slice(types, func(i, j int) bool {
		if counts[types[i]] != counts[types[j]] {
			return counts[types[i]] > counts[types[j]]
		}
		return types[i] < types[j]
	})

	if len(types) > maxSummaryTypes {
		types = types[:maxSummaryTypes]
	}

	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = fmt.Sprintf("%s (%d)", t, counts[t])
	}
	return strings.Join(parts, ", ")
}

// isConfigLike reports whether a file counts toward the config-file clause
// and the config-heavy quality penalties.
func isConfigLike(fa *interfaces.FileAnalysis) bool {
	switch fa.FileType {
	case interfaces.FileTypeConfig, interfaces.FileTypeYAML, interfaces.FileTypeJSON,
		interfaces.FileTypeDocker, interfaces.FileTypeTerraform:
		return true
	default:
		return false
	}
}

func pluralFile(n int) string {
	if n == 1 {
		return "file"
	}
	return "files"
}
