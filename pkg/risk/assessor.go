// Package risk scores change signals into three-tier risk levels, for single
// files and for whole change sets.
package risk

import (
	"strings"

	"github.com/tkareem/changelens/pkg/interfaces"
)

// Additive per-file score contributions.
const (
	WeightSensitiveType     = 2 // infrastructure/config file types
	WeightSensitiveFilename = 2 // deployment- or settings-looking filenames
	WeightFunctions         = 1 // any function added or modified
	WeightImports           = 1 // any import added or removed
	WeightCriticalPattern   = 3 // any security-sensitive pattern hit
	WeightConfigChange      = 2 // any configuration line touched
)

// Per-file score thresholds.
const (
	HighThreshold   = 5
	MediumThreshold = 3
)

// Change-set aggregation: per-level weights and average thresholds.
const (
	LevelWeightLow    = 1
	LevelWeightMedium = 3
	LevelWeightHigh   = 5

	OverallHighThreshold   = 4.0
	OverallMediumThreshold = 2.0
)

// sensitiveTypes are file types whose changes carry inherent risk.
var sensitiveTypes = map[interfaces.FileType]bool{
	interfaces.FileTypeConfig:    true,
	interfaces.FileTypeYAML:      true,
	interfaces.FileTypeJSON:      true,
	interfaces.FileTypeDocker:    true,
	interfaces.FileTypeTerraform: true,
}

// sensitiveNameParts are filename substrings whose changes carry inherent risk.
var sensitiveNameParts = []string{
	"dockerfile",
	"docker-compose",
	"requirements.txt",
	"package.json",
	"makefile",
	".env",
	"config",
	"settings",
}

// Assess scores one file's aggregated signals into a risk level.
func Assess(sig *interfaces.ChangeSignals, fileType interfaces.FileType, filename string) interfaces.RiskLevel {
	score := 0

	if sensitiveTypes[fileType] {
		score += WeightSensitiveType
	}
	if hasSensitiveName(filename) {
		score += WeightSensitiveFilename
	}
	if sig.FunctionCount() > 0 {
		score += WeightFunctions
	}
	if sig.ImportCount() > 0 {
		score += WeightImports
	}
	if len(sig.CriticalPatterns) > 0 {
		score += WeightCriticalPattern
	}
	if len(sig.ConfigChanges) > 0 {
		score += WeightConfigChange
	}

	switch {
	case score >= HighThreshold:
		return interfaces.RiskHigh
	case score >= MediumThreshold:
		return interfaces.RiskMedium
	default:
		return interfaces.RiskLow
	}
}

// Weight maps a risk level to its aggregation weight.
func Weight(level interfaces.RiskLevel) int {
	switch level {
	case interfaces.RiskHigh:
		return LevelWeightHigh
	case interfaces.RiskMedium:
		return LevelWeightMedium
	default:
		return LevelWeightLow
	}
}

// FromAverage re-thresholds an average of per-file weights into the overall
// change-set risk level.
func FromAverage(avg float64) interfaces.RiskLevel {
	switch {
	case avg >= OverallHighThreshold:
		return interfaces.RiskHigh
	case avg >= OverallMediumThreshold:
		return interfaces.RiskMedium
	default:
		return interfaces.RiskLow
	}
}

func hasSensitiveName(filename string) bool {
	lower := strings.ToLower(filename)
	for _, part := range sensitiveNameParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}
