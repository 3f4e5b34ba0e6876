package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tkareem/changelens/pkg/interfaces"
)

func makeLines(n int) []interfaces.Line {
	lines := make([]interfaces.Line, n)
	for i := range lines {
		lines[i] = interfaces.Line{Number: i + 1, Content: "x"}
	}
	return lines
}

func TestComputeQualityMetrics_Defaults(t *testing.T) {
	m := computeQualityMetrics(nil)

	assert.Zero(t, m.ComplexityScore)
	assert.Equal(t, 100, m.MaintainabilityScore)
	assert.Zero(t, m.SecurityRiskScore)
	assert.Equal(t, interfaces.RiskLow, m.DependencyRisk)
	assert.Equal(t, interfaces.RiskLow, m.BreakingChangeRisk)
	assert.Equal(t, interfaces.RiskLow, m.PerformanceImpact)
	assert.Equal(t, interfaces.CoverageNone, m.TestCoverageImpact)
	assert.Equal(t, interfaces.DocsNone, m.DocumentationImpact)
}

func TestComputeQualityMetrics_ZeroSignalFiles(t *testing.T) {
	files := []*interfaces.FileAnalysis{
		{Filename: "image.png", FileType: interfaces.FileTypeUnknown},
	}

	m := computeQualityMetrics(files)

	assert.Zero(t, m.ComplexityScore)
	assert.Equal(t, 100, m.MaintainabilityScore)
	assert.Zero(t, m.SecurityRiskScore)
}

func TestDependencyRisk(t *testing.T) {
	tests := []struct {
		name    string
		dep     int
		imports int
		want    interfaces.RiskLevel
	}{
		{"nothing", 0, 0, interfaces.RiskLow},
		{"few imports", 0, 4, interfaces.RiskLow},
		{"one manifest", 1, 0, interfaces.RiskMedium},
		{"many imports without manifest", 0, 5, interfaces.RiskMedium},
		{"three manifests", 3, 0, interfaces.RiskHigh},
		{"manifest with heavy imports", 1, 10, interfaces.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dependencyRisk(tt.dep, tt.imports))
		})
	}
}

func TestBreakingChangeRisk(t *testing.T) {
	none := []*interfaces.FileAnalysis{{Signals: interfaces.ChangeSignals{}}}
	assert.Equal(t, interfaces.RiskLow, breakingChangeRisk(none, 0))

	one := []*interfaces.FileAnalysis{{Signals: interfaces.ChangeSignals{
		FunctionsModified: []string{"handler"},
	}}}
	assert.Equal(t, interfaces.RiskMedium, breakingChangeRisk(one, 0))

	many := []*interfaces.FileAnalysis{{Signals: interfaces.ChangeSignals{
		FunctionsModified: []string{"a", "b", "c", "d", "e"},
		ImportsRemoved:    []string{"import x", "import y", "import z"},
	}}}
	assert.Equal(t, interfaces.RiskHigh, breakingChangeRisk(many, 0))

	// Manifest edits count toward the same total.
	assert.Equal(t, interfaces.RiskMedium, breakingChangeRisk(none, 1))
}

func TestPerformanceImpact(t *testing.T) {
	assert.Equal(t, interfaces.RiskLow, performanceImpact(99))
	assert.Equal(t, interfaces.RiskMedium, performanceImpact(100))
	assert.Equal(t, interfaces.RiskMedium, performanceImpact(499))
	assert.Equal(t, interfaces.RiskHigh, performanceImpact(500))
}

func TestPerformanceImpact_FromLineSignals(t *testing.T) {
	files := []*interfaces.FileAnalysis{
		{Filename: "big.py", FileType: interfaces.FileTypePython, Signals: interfaces.ChangeSignals{
			LinesAdded: makeLines(80),
		}},
		{Filename: "other.py", FileType: interfaces.FileTypePython, Signals: interfaces.ChangeSignals{
			LinesRemoved: makeLines(20),
		}},
	}

	m := computeQualityMetrics(files)

	assert.Equal(t, interfaces.RiskMedium, m.PerformanceImpact)
}

func TestCoverageImpact(t *testing.T) {
	mk := func(names ...string) []*interfaces.FileAnalysis {
		out := make([]*interfaces.FileAnalysis, len(names))
		for i, n := range names {
			out[i] = &interfaces.FileAnalysis{Filename: n}
		}
		return out
	}

	assert.Equal(t, interfaces.CoverageNone, coverageImpact(mk("a.py", "b.py")))
	assert.Equal(t, interfaces.CoverageImproved, coverageImpact(mk("a.py", "test_a.py")))
	assert.Equal(t, interfaces.CoverageMaintained, coverageImpact(mk("a.py", "b.py", "c.py", "test_a.py")))
	assert.Equal(t, interfaces.CoverageMinimal,
		coverageImpact(mk("a", "b", "c", "d", "e", "f", "g", "h", "i", "test_a.py")))
	assert.Equal(t, interfaces.CoverageImproved, coverageImpact(mk("app.spec.js", "app.js")))
}

func TestDocImpact(t *testing.T) {
	withDocs := []*interfaces.FileAnalysis{
		{Filename: "main.py", FileType: interfaces.FileTypePython},
		{Filename: "README.md", FileType: interfaces.FileTypeMarkdown},
	}
	assert.Equal(t, interfaces.DocsUpdated, docImpact(withDocs))

	without := []*interfaces.FileAnalysis{
		{Filename: "main.py", FileType: interfaces.FileTypePython},
	}
	assert.Equal(t, interfaces.DocsNone, docImpact(without))

	docDir := []*interfaces.FileAnalysis{
		{Filename: "docs/usage.txt", FileType: interfaces.FileTypeUnknown},
	}
	assert.Equal(t, interfaces.DocsUpdated, docImpact(docDir))
}

func TestDocImpact_DockerFilesAreNotDocs(t *testing.T) {
	files := []*interfaces.FileAnalysis{
		{Filename: "Dockerfile", FileType: interfaces.FileTypeDocker},
		{Filename: "deploy/docker-compose.yml", FileType: interfaces.FileTypeYAML},
	}

	assert.Equal(t, interfaces.DocsNone, docImpact(files))
}

func TestSecurity_MonotoneInCriticalCount(t *testing.T) {
	prev := -1
	for critical := 0; critical <= 10; critical++ {
		score := security(critical, 4)
		if score < prev {
			t.Fatalf("security score dropped from %d to %d at %d patterns", prev, score, critical)
		}
		prev = score
	}
	assert.Zero(t, security(0, 4))
	assert.Equal(t, 100, security(50, 1))
}

func TestMaintainability_Penalties(t *testing.T) {
	// Plain change: only the density penalty applies.
	assert.Equal(t, 97, maintainability(3, 0, 0, 2))
	// Critical patterns cost a flat penalty.
	assert.Equal(t, 72, maintainability(3, 1, 0, 2))
	// Config-dominated change sets cost another.
	assert.Equal(t, 57, maintainability(3, 1, 2, 2))
	// Density penalty is capped and the score never goes negative.
	assert.Equal(t, 20, maintainability(1000, 1, 2, 2))
	assert.GreaterOrEqual(t, maintainability(1000, 1, 2, 2), 0)
}
