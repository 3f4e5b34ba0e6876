package signals

import (
	"strings"

	"github.com/tkareem/changelens/pkg/interfaces"
)

// Extractor inspects single changed lines and appends detected signals into
// a ChangeSignals accumulator. The critical-pattern table is injectable; the
// language-specific function and import rules are fixed.
type Extractor struct {
	critical []CriticalPattern
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithCriticalPatterns replaces the default critical-pattern table.
func WithCriticalPatterns(patterns []CriticalPattern) ExtractorOption {
	return func(e *Extractor) {
		e.critical = patterns
	}
}

// NewExtractor creates an Extractor with the default pattern tables.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{critical: DefaultCriticalPatterns()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractLine runs all detections against one stripped line (leading +/-
// removed) and appends matches to sig.
func (e *Extractor) ExtractLine(sig *interfaces.ChangeSignals, fileType interfaces.FileType, content string, change interfaces.ChangeType) {
	switch fileType {
	case interfaces.FileTypePython:
		e.extractPython(sig, content, change)
	case interfaces.FileTypeJavaScript, interfaces.FileTypeTypeScript, interfaces.FileTypeReact:
		e.extractJavaScript(sig, content, change)
	}

	for _, p := range e.critical {
		if p.Regex.MatchString(content) {
			sig.CriticalPatterns = append(sig.CriticalPatterns, interfaces.CriticalMatch{
				Pattern: p.Name,
				Line:    content,
				Type:    change,
			})
		}
	}

	switch fileType {
	case interfaces.FileTypeYAML, interfaces.FileTypeJSON, interfaces.FileTypeConfig:
		sig.ConfigChanges = append(sig.ConfigChanges, interfaces.ConfigChange{
			Type:    change,
			Content: content,
		})
	}
}

func (e *Extractor) extractPython(sig *interfaces.ChangeSignals, content string, change interfaces.ChangeType) {
	if m := pythonFuncRegex.FindStringSubmatch(content); m != nil {
		appendFunction(sig, m[1], change)
	}

	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "from ") {
		appendImport(sig, trimmed, change)
	}
}

func (e *Extractor) extractJavaScript(sig *interfaces.ChangeSignals, content string, change interfaces.ChangeType) {
	for _, re := range jsFuncRegexes {
		if re.MatchString(content) {
			// Full line is kept; display-time truncation is the
			// reporter's concern.
			appendFunction(sig, strings.TrimSpace(content), change)
			break
		}
	}

	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "import ") || strings.Contains(trimmed, "require(") {
		appendImport(sig, trimmed, change)
	}
}

// appendFunction buckets a function signal by the line's change type: added
// lines land in FunctionsAdded, removed lines in FunctionsModified. There is
// no removed-functions bucket; see the ChangeSignals doc for the rationale.
func appendFunction(sig *interfaces.ChangeSignals, name string, change interfaces.ChangeType) {
	if change == interfaces.ChangeAdded {
		sig.FunctionsAdded = append(sig.FunctionsAdded, name)
		return
	}
	sig.FunctionsModified = append(sig.FunctionsModified, name)
}

func appendImport(sig *interfaces.ChangeSignals, stmt string, change interfaces.ChangeType) {
	if change == interfaces.ChangeAdded {
		sig.ImportsAdded = append(sig.ImportsAdded, stmt)
		return
	}
	sig.ImportsRemoved = append(sig.ImportsRemoved, stmt)
}
