// Package signals walks unified-diff patch text and extracts structured
// change signals: added/removed lines, function and import statements,
// configuration edits, and matches against security-sensitive patterns.
package signals

import "regexp"

// CriticalPattern is one regex-based rule flagging security- or
// operations-sensitive content in a changed line.
type CriticalPattern struct {
	Name  string
	Regex *regexp.Regexp
}

// DefaultCriticalPatterns returns the fixed rule set applied to every
// changed line regardless of file type. All patterns are case-insensitive.
func DefaultCriticalPatterns() []CriticalPattern {
	return []CriticalPattern{
		{
			Name:  "credentials",
			Regex: regexp.MustCompile(`(?i)(password|secret|token|api[_-]?key|credential)`),
		},
		{
			Name:  "destructive-operation",
			Regex: regexp.MustCompile(`(?i)\b(delete|drop|truncate)\b`),
		},
		{
			Name:  "privilege-escalation",
			Regex: regexp.MustCompile(`(?i)\b(sudo|chmod|chown)\b`),
		},
		{
			Name:  "code-execution",
			Regex: regexp.MustCompile(`(?i)\b(eval|exec|system)\b`),
		},
		{
			Name:  "url",
			Regex: regexp.MustCompile(`(?i)https?://`),
		},
		{
			Name:  "loopback-address",
			Regex: regexp.MustCompile(`(?i)(localhost|127\.0\.0\.1)`),
		},
	}
}

// Language-specific detection rules compiled once at init.
var (
	// Python: def <identifier>(
	pythonFuncRegex = regexp.MustCompile(`^\s*def\s+([A-Za-z_]\w*)\s*\(`)

	// JS/TS/React function-definition shapes.
	jsFuncRegexes = []*regexp.Regexp{
		regexp.MustCompile(`\bfunction\s+[A-Za-z_$][\w$]*`),
		regexp.MustCompile(`\b(?:const|let|var)\s+[A-Za-z_$][\w$]*\s*=.*=>`),
		regexp.MustCompile(`[A-Za-z_$][\w$]*\s*:\s*function\b`),
	}
)
