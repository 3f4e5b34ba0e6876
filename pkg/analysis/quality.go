package analysis

import (
	"strings"

	"github.com/samber/lo"

	"github.com/tkareem/changelens/pkg/interfaces"
)

// Quality metric tuning constants. The exact values are heuristic; the
// required behavior is monotone: more critical patterns never lower the
// security score, more config/dependency files never lower dependency or
// breaking-change risk, and zero signals always yield the best-case
// defaults.
const (
	complexityPerSignal   = 3  // complexity points per signal of average density
	maintDensityCap       = 40 // max maintainability penalty from density
	maintCriticalPenalty  = 25 // flat penalty when any critical pattern matched
	maintConfigPenalty    = 15 // flat penalty when config files dominate
	securityBase          = 20 // floor once any critical pattern matched
	securityPerDensity    = 30 // points per critical pattern of average density
	depFilesHigh          = 3  // dependency manifests for high dependency risk
	depImportsHigh        = 10 // import changes for high dependency risk
	depImportsMedium      = 5
	breakingHigh          = 8 // modified-function/removed-import signals for high risk
	perfLinesMedium       = 100
	perfLinesHigh         = 500
	coverageImprovedRatio = 0.5
	coverageKeptRatio     = 0.25
)

// computeQualityMetrics derives the multi-dimensional quality score from
// signal totals across the change set.
func computeQualityMetrics(files []*interfaces.FileAnalysis) interfaces.QualityMetrics {
	metrics := interfaces.QualityMetrics{
		MaintainabilityScore: 100,
		TestCoverageImpact:   interfaces.CoverageNone,
		DocumentationImpact:  interfaces.DocsNone,
		DependencyRisk:       interfaces.RiskLow,
		BreakingChangeRisk:   interfaces.RiskLow,
		PerformanceImpact:    interfaces.RiskLow,
	}
	if len(files) == 0 {
		return metrics
	}

	fileCount := len(files)
	totalSignals := lo.SumBy(files, func(fa *interfaces.FileAnalysis) int {
		return fa.Signals.SignalCount()
	})
	criticalTotal := lo.SumBy(files, func(fa *interfaces.FileAnalysis) int {
		return len(fa.Signals.CriticalPatterns)
	})
	totalLines := lo.SumBy(files, func(fa *interfaces.FileAnalysis) int {
		return fa.Signals.LineCount()
	})
	configFiles := lo.CountBy(files, isConfigLike)
	depFiles := lo.CountBy(files, func(fa *interfaces.FileAnalysis) bool {
		return fa.FileType == interfaces.FileTypeDependency
	})
	importsTotal := lo.SumBy(files, func(fa *interfaces.FileAnalysis) int {
		return fa.Signals.ImportCount()
	})

	density := float64(totalSignals) / float64(fileCount)

	metrics.ComplexityScore = clampScore(int(density * complexityPerSignal))
	metrics.MaintainabilityScore = maintainability(density, criticalTotal, configFiles, fileCount)
	metrics.SecurityRiskScore = security(criticalTotal, fileCount)
	metrics.DependencyRisk = dependencyRisk(depFiles, importsTotal)
	metrics.BreakingChangeRisk = breakingChangeRisk(files, depFiles)
	metrics.PerformanceImpact = performanceImpact(totalLines)
	metrics.TestCoverageImpact = coverageImpact(files)
	metrics.DocumentationImpact = docImpact(files)

	return metrics
}

func maintainability(density float64, criticalTotal, configFiles, fileCount int) int {
	score := 100

	penalty := int(density)
	if penalty > maintDensityCap {
		penalty = maintDensityCap
	}
	score -= penalty

	if criticalTotal > 0 {
		score -= maintCriticalPenalty
	}
	if configFiles*2 > fileCount {
		score -= maintConfigPenalty
	}

	if score < 0 {
		score = 0
	}
	return score
}

func security(criticalTotal, fileCount int) int {
	if criticalTotal == 0 {
		return 0
	}
	density := float64(criticalTotal) / float64(fileCount)
	return clampScore(securityBase + int(density*securityPerDensity))
}

func dependencyRisk(depFiles, importsTotal int) interfaces.RiskLevel {
	switch {
	case depFiles >= depFilesHigh || (depFiles > 0 && importsTotal >= depImportsHigh):
		return interfaces.RiskHigh
	case depFiles > 0 || importsTotal >= depImportsMedium:
		return interfaces.RiskMedium
	default:
		return interfaces.RiskLow
	}
}

// breakingChangeRisk counts the signals that can break callers: functions
// touched on removed lines, removed imports, and dependency manifest edits.
// Function removals are only visible through the modified bucket; see the
// ChangeSignals doc for that known gap.
func breakingChangeRisk(files []*interfaces.FileAnalysis, depFiles int) interfaces.RiskLevel {
	count := depFiles
	for _, fa := range files {
		count += len(fa.Signals.FunctionsModified) + len(fa.Signals.ImportsRemoved)
	}

	switch {
	case count >= breakingHigh:
		return interfaces.RiskHigh
	case count > 0:
		return interfaces.RiskMedium
	default:
		return interfaces.RiskLow
	}
}

func performanceImpact(totalLines int) interfaces.RiskLevel {
	switch {
	case totalLines >= perfLinesHigh:
		return interfaces.RiskHigh
	case totalLines >= perfLinesMedium:
		return interfaces.RiskMedium
	default:
		return interfaces.RiskLow
	}
}

func coverageImpact(files []*interfaces.FileAnalysis) interfaces.CoverageImpact {
	testFiles := lo.CountBy(files, func(fa *interfaces.FileAnalysis) bool {
		return isTestFile(fa.Filename)
	})
	if testFiles == 0 {
		return interfaces.CoverageNone
	}

	ratio := float64(testFiles) / float64(len(files))
	switch {
	case ratio >= coverageImprovedRatio:
		return interfaces.CoverageImproved
	case ratio >= coverageKeptRatio:
		return interfaces.CoverageMaintained
	default:
		return interfaces.CoverageMinimal
	}
}

func docImpact(files []*interfaces.FileAnalysis) interfaces.DocImpact {
	for _, fa := range files {
		if isDocFile(fa) {
			return interfaces.DocsUpdated
		}
	}
	return interfaces.DocsNone
}

// isTestFile is a filename heuristic: anything with "test" or ".spec." in
// its path counts as a test.
func isTestFile(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.Contains(lower, "test") || strings.Contains(lower, ".spec.")
}

// isDocFile treats markdown and readme/doc-named files as documentation.
// Docker artifacts ("Dockerfile", "docker-compose.yml") also contain "doc"
// and are explicitly not documentation.
func isDocFile(fa *interfaces.FileAnalysis) bool {
	if fa.FileType == interfaces.FileTypeMarkdown {
		return true
	}
	lower := strings.ToLower(fa.Filename)
	if fa.FileType == interfaces.FileTypeDocker || strings.Contains(lower, "docker") {
		return false
	}
	return strings.Contains(lower, "readme") || strings.Contains(lower, "doc")
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
