// Package interfaces defines the shared types and contracts for all changelens modules.
// This package has ZERO dependencies on any other pkg/ package.
// All cross-module communication goes through types and interfaces defined here.
package interfaces

// FileType is the semantic category assigned to a changed file.
type FileType string

const (
	FileTypePython     FileType = "python"
	FileTypeJavaScript FileType = "javascript"
	FileTypeTypeScript FileType = "typescript"
	FileTypeReact      FileType = "react"
	FileTypeJava       FileType = "java"
	FileTypeGo         FileType = "go"
	FileTypeRust       FileType = "rust"
	FileTypeCpp        FileType = "cpp"
	FileTypeC          FileType = "c"
	FileTypeYAML       FileType = "yaml"
	FileTypeJSON       FileType = "json"
	FileTypeXML        FileType = "xml"
	FileTypeSQL        FileType = "sql"
	FileTypeShell      FileType = "shell"
	FileTypeDocker     FileType = "docker"
	FileTypeTerraform  FileType = "terraform"
	FileTypeMarkdown   FileType = "markdown"
	FileTypeMakefile   FileType = "makefile"
	FileTypeDependency FileType = "dependency"
	FileTypeConfig     FileType = "config"
	FileTypeUnknown    FileType = "unknown"
)

// RiskLevel is the three-tier risk rating assigned to a file or a change set.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ChangeType marks whether a patch line was added or removed.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
)

// Line is a single changed line with its approximate line number in the new file.
type Line struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

// ConfigChange records one added or removed line in a configuration-like file.
type ConfigChange struct {
	Type    ChangeType `json:"type"`
	Content string     `json:"content"`
}

// CriticalMatch records a changed line that matched a security-sensitive pattern.
type CriticalMatch struct {
	Pattern string     `json:"pattern"`
	Line    string     `json:"line"`
	Type    ChangeType `json:"type"`
}

// ChangeSignals accumulates everything the signal extractor found in one
// file's patch. It is mutable while parsing and frozen inside a FileAnalysis.
//
// Known heuristic gap, preserved from the original scoring behavior: a
// function definition on a removed line lands in FunctionsModified, never in
// a removed bucket, so function removals are indistinguishable from
// modifications downstream.
type ChangeSignals struct {
	LinesAdded        []Line          `json:"lines_added"`
	LinesRemoved      []Line          `json:"lines_removed"`
	FunctionsAdded    []string        `json:"functions_added"`
	FunctionsModified []string        `json:"functions_modified"`
	ImportsAdded      []string        `json:"imports_added"`
	ImportsRemoved    []string        `json:"imports_removed"`
	ConfigChanges     []ConfigChange  `json:"config_changes"`
	CriticalPatterns  []CriticalMatch `json:"critical_patterns"`
}

// FunctionCount returns the total number of function signals.
func (s *ChangeSignals) FunctionCount() int {
	return len(s.FunctionsAdded) + len(s.FunctionsModified)
}

// ImportCount returns the total number of import signals.
func (s *ChangeSignals) ImportCount() int {
	return len(s.ImportsAdded) + len(s.ImportsRemoved)
}

// LineCount returns the total number of added and removed lines.
func (s *ChangeSignals) LineCount() int {
	return len(s.LinesAdded) + len(s.LinesRemoved)
}

// SignalCount is the overall density measure used by the quality metrics.
func (s *ChangeSignals) SignalCount() int {
	return s.LineCount() + s.FunctionCount() + s.ImportCount() +
		len(s.ConfigChanges) + len(s.CriticalPatterns)
}

// FileAnalysis is the per-file analysis record. Immutable after creation.
type FileAnalysis struct {
	Filename  string        `json:"filename"`
	FileType  FileType      `json:"file_type"`
	Signals   ChangeSignals `json:"signals"`
	RiskLevel RiskLevel     `json:"risk_level"`
	Summary   string        `json:"summary"`
}

// CoverageImpact describes how a change set affects test coverage.
type CoverageImpact string

const (
	CoverageNone       CoverageImpact = "none"
	CoverageMinimal    CoverageImpact = "minimal"
	CoverageMaintained CoverageImpact = "maintained"
	CoverageImproved   CoverageImpact = "improved"
)

// DocImpact describes whether documentation was touched by a change set.
type DocImpact string

const (
	DocsNone    DocImpact = "none"
	DocsUpdated DocImpact = "updated"
)

// QualityMetrics is the multi-dimensional quality score for a change set.
type QualityMetrics struct {
	ComplexityScore      int            `json:"complexity_score"`      // 0-100
	MaintainabilityScore int            `json:"maintainability_score"` // 0-100
	SecurityRiskScore    int            `json:"security_risk_score"`   // 0-100
	TestCoverageImpact   CoverageImpact `json:"test_coverage_impact"`
	DocumentationImpact  DocImpact      `json:"documentation_impact"`
	DependencyRisk       RiskLevel      `json:"dependency_risk"`
	BreakingChangeRisk   RiskLevel      `json:"breaking_change_risk"`
	PerformanceImpact    RiskLevel      `json:"performance_impact"`
}

// ChangeSetAnalysis is the aggregated result for one pull request or commit.
type ChangeSetAnalysis struct {
	OverallRisk    RiskLevel      `json:"overall_risk"`
	ChangeSummary  string         `json:"change_summary"`
	QualityMetrics QualityMetrics `json:"quality_metrics"`
	QualityReport  string         `json:"quality_report"`
}
