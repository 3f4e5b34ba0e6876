package report

import (
	"fmt"
	"strings"

	"github.com/aquilax/truncate"

	"github.com/tkareem/changelens/pkg/interfaces"
)

// SignatureDisplayWidth is the rendered width of function signatures.
// Signals keep the full line; only display output is truncated.
const SignatureDisplayWidth = 50

// maxListedFunctions bounds how many function names a file summary names.
const maxListedFunctions = 3

// TruncateSignature shortens a function signature for display, appending an
// ellipsis when the original was longer.
func TruncateSignature(s string) string {
	return truncate.Truncate(s, SignatureDisplayWidth, "...", truncate.PositionEnd)
}

// FileSummary renders one file's signals into a compact clause-joined
// summary string.
func FileSummary(sig *interfaces.ChangeSignals) string {
	if sig.SignalCount() == 0 {
		return "no textual changes"
	}

	var clauses []string

	if sig.LineCount() > 0 {
		clauses = append(clauses, fmt.Sprintf("+%d/-%d lines", len(sig.LinesAdded), len(sig.LinesRemoved)))
	}
	if n := sig.FunctionCount(); n > 0 {
		clauses = append(clauses, fmt.Sprintf("%d %s (%s)", n, plural("function", n), listFunctions(sig)))
	}
	if n := sig.ImportCount(); n > 0 {
		clauses = append(clauses, fmt.Sprintf("%d %s changed", n, plural("import", n)))
	}
	if n := len(sig.ConfigChanges); n > 0 {
		clauses = append(clauses, fmt.Sprintf("%d config %s", n, plural("change", n)))
	}
	if n := len(sig.CriticalPatterns); n > 0 {
		clauses = append(clauses, fmt.Sprintf("%d critical %s (%s)", n, plural("pattern", n), listPatterns(sig)))
	}

	return strings.Join(clauses, ", ")
}

// listFunctions names up to maxListedFunctions function signals, truncated
// for display.
func listFunctions(sig *interfaces.ChangeSignals) string {
	all := make([]string, 0, sig.FunctionCount())
	all = append(all, sig.FunctionsAdded...)
	all = append(all, sig.FunctionsModified...)

	shown := all
	if len(shown) > maxListedFunctions {
		shown = shown[:maxListedFunctions]
	}

	parts := make([]string, len(shown))
	for i, fn := range shown {
		parts[i] = TruncateSignature(fn)
	}
	if len(all) > maxListedFunctions {
		parts = append(parts, "...")
	}
	return strings.Join(parts, ", ")
}

// listPatterns names each distinct critical pattern once, in first-seen order.
func listPatterns(sig *interfaces.ChangeSignals) string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range sig.CriticalPatterns {
		if !seen[m.Pattern] {
			seen[m.Pattern] = true
			names = append(names, m.Pattern)
		}
	}
	return strings.Join(names, ", ")
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
