// Package report renders analysis results into compact human-readable
// strings and terminal/JSON output. It owns all display concerns, including
// signature truncation; the data model always keeps full content.
package report

import (
	"fmt"
	"strings"

	"github.com/tkareem/changelens/pkg/interfaces"
)

// Fixed rendering thresholds for the quality report.
const (
	ComplexityHigh   = 70
	ComplexityMedium = 40

	MaintainabilityGood = 80
	MaintainabilityFair = 60

	SecurityHigh   = 50
	SecurityMedium = 20
)

// RenderQuality renders quality metrics into a compact pipe-joined string.
// Clauses whose value is the neutral default are omitted; when everything is
// neutral the report reads "no quality concerns".
func RenderQuality(m interfaces.QualityMetrics) string {
	var clauses []string

	if label := complexityLabel(m.ComplexityScore); label != "low" {
		clauses = append(clauses, "complexity: "+label)
	}
	if label := maintainabilityLabel(m.MaintainabilityScore); label != "good" {
		clauses = append(clauses, "maintainability: "+label)
	}
	if label := securityLabel(m.SecurityRiskScore); label != "low risk" {
		clauses = append(clauses, "security: "+label)
	}
	if m.DependencyRisk != interfaces.RiskLow {
		clauses = append(clauses, fmt.Sprintf("dependencies: %s risk", m.DependencyRisk))
	}
	if m.BreakingChangeRisk != interfaces.RiskLow {
		clauses = append(clauses, fmt.Sprintf("breaking changes: %s risk", m.BreakingChangeRisk))
	}
	if m.PerformanceImpact != interfaces.RiskLow {
		clauses = append(clauses, fmt.Sprintf("performance impact: %s", m.PerformanceImpact))
	}
	if m.TestCoverageImpact != interfaces.CoverageNone {
		clauses = append(clauses, fmt.Sprintf("tests: %s", m.TestCoverageImpact))
	}
	if m.DocumentationImpact != interfaces.DocsNone {
		clauses = append(clauses, fmt.Sprintf("docs: %s", m.DocumentationImpact))
	}

	if len(clauses) == 0 {
		return "no quality concerns"
	}
	return strings.Join(clauses, " | ")
}

func complexityLabel(score int) string {
	switch {
	case score >= ComplexityHigh:
		return "high"
	case score >= ComplexityMedium:
		return "medium"
	default:
		return "low"
	}
}

func maintainabilityLabel(score int) string {
	switch {
	case score >= MaintainabilityGood:
		return "good"
	case score >= MaintainabilityFair:
		return "fair"
	default:
		return "poor"
	}
}

func securityLabel(score int) string {
	switch {
	case score >= SecurityHigh:
		return "high risk"
	case score >= SecurityMedium:
		return "medium risk"
	default:
		return "low risk"
	}
}
