package risk

import (
	"testing"

	"github.com/tkareem/changelens/pkg/interfaces"
)

func TestAssess(t *testing.T) {
	tests := []struct {
		name     string
		signals  interfaces.ChangeSignals
		fileType interfaces.FileType
		filename string
		want     interfaces.RiskLevel
	}{
		{
			name:     "quiet source change",
			signals:  interfaces.ChangeSignals{},
			fileType: interfaces.FileTypePython,
			filename: "utils.py",
			want:     interfaces.RiskLow,
		},
		{
			name: "single function change",
			signals: interfaces.ChangeSignals{
				FunctionsAdded: []string{"helper"},
			},
			fileType: interfaces.FileTypePython,
			filename: "utils.py",
			want:     interfaces.RiskLow,
		},
		{
			name: "functions plus imports",
			signals: interfaces.ChangeSignals{
				FunctionsAdded: []string{"helper"},
				ImportsAdded:   []string{"import os"},
			},
			fileType: interfaces.FileTypePython,
			filename: "utils.py",
			want:     interfaces.RiskLow,
		},
		{
			name: "critical pattern in plain source",
			signals: interfaces.ChangeSignals{
				CriticalPatterns: []interfaces.CriticalMatch{
					{Pattern: "credentials", Line: "TOKEN = 'x'", Type: interfaces.ChangeAdded},
				},
			},
			fileType: interfaces.FileTypePython,
			filename: "utils.py",
			want:     interfaces.RiskMedium,
		},
		{
			name: "config lines in yaml",
			signals: interfaces.ChangeSignals{
				ConfigChanges: []interfaces.ConfigChange{
					{Type: interfaces.ChangeAdded, Content: "env: production"},
					{Type: interfaces.ChangeRemoved, Content: "env: staging"},
				},
			},
			fileType: interfaces.FileTypeYAML,
			filename: "app.yaml",
			want:     interfaces.RiskMedium,
		},
		{
			name: "dockerfile with privilege escalation",
			signals: interfaces.ChangeSignals{
				CriticalPatterns: []interfaces.CriticalMatch{
					{Pattern: "privilege-escalation", Line: "RUN sudo chmod 777 /app", Type: interfaces.ChangeAdded},
				},
			},
			fileType: interfaces.FileTypeDocker,
			filename: "Dockerfile",
			want:     interfaces.RiskHigh,
		},
		{
			name:     "sensitive filename alone is not enough",
			signals:  interfaces.ChangeSignals{},
			fileType: interfaces.FileTypePython,
			filename: "app/settings.py",
			want:     interfaces.RiskLow,
		},
		{
			name: "sensitive filename plus functions",
			signals: interfaces.ChangeSignals{
				FunctionsModified: []string{"configure"},
			},
			fileType: interfaces.FileTypePython,
			filename: "app/settings.py",
			want:     interfaces.RiskMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assess(&tt.signals, tt.fileType, tt.filename)
			if got != tt.want {
				t.Errorf("Assess() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWeight(t *testing.T) {
	if Weight(interfaces.RiskLow) != LevelWeightLow {
		t.Errorf("Weight(low) = %d", Weight(interfaces.RiskLow))
	}
	if Weight(interfaces.RiskMedium) != LevelWeightMedium {
		t.Errorf("Weight(medium) = %d", Weight(interfaces.RiskMedium))
	}
	if Weight(interfaces.RiskHigh) != LevelWeightHigh {
		t.Errorf("Weight(high) = %d", Weight(interfaces.RiskHigh))
	}
}

func TestFromAverage(t *testing.T) {
	tests := []struct {
		avg  float64
		want interfaces.RiskLevel
	}{
		{1.0, interfaces.RiskLow},
		{1.99, interfaces.RiskLow},
		{2.0, interfaces.RiskMedium},
		// one high, one low, one medium file
		{3.0, interfaces.RiskMedium},
		{3.99, interfaces.RiskMedium},
		{4.0, interfaces.RiskHigh},
		{5.0, interfaces.RiskHigh},
	}

	for _, tt := range tests {
		if got := FromAverage(tt.avg); got != tt.want {
			t.Errorf("FromAverage(%.2f) = %s, want %s", tt.avg, got, tt.want)
		}
	}
}

func TestHasSensitiveName(t *testing.T) {
	sensitive := []string{
		"Dockerfile",
		"deploy/docker-compose.yml",
		"requirements.txt",
		"frontend/package.json",
		"Makefile",
		".env.local",
		"app/config/db.py",
		"project/settings.py",
	}
	for _, name := range sensitive {
		if !hasSensitiveName(name) {
			t.Errorf("hasSensitiveName(%q) = false, want true", name)
		}
	}

	benign := []string{"main.go", "utils.py", "src/index.ts"}
	for _, name := range benign {
		if hasSensitiveName(name) {
			t.Errorf("hasSensitiveName(%q) = true, want false", name)
		}
	}
}
