package signals

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tkareem/changelens/pkg/interfaces"
)

// hunkHeaderRegex matches unified-diff hunk headers and captures the
// new-file starting line number (the first integer after the '+').
var hunkHeaderRegex = regexp.MustCompile(`^@@ .*?\+(\d+)`)

// Parser reconstructs per-line change signals from the unified-diff patch
// text of a single file, as returned by hosting APIs (hunks only, no
// "diff --git" preamble required).
type Parser struct {
	extractor *Extractor
}

// NewParser creates a Parser that feeds each changed line through the given
// extractor.
func NewParser(extractor *Extractor) *Parser {
	return &Parser{extractor: extractor}
}

// Parse walks the patch text and returns the accumulated signals. It never
// fails: malformed hunk headers leave the line counter unchanged, and an
// empty patch yields empty signals.
//
// Line accounting follows the new file: added and context lines advance the
// counter, removed lines do not.
func (p *Parser) Parse(fileType interfaces.FileType, patch string) *interfaces.ChangeSignals {
	sig := &interfaces.ChangeSignals{}
	if patch == "" {
		return sig
	}

	currentLine := 0
	for _, line := range strings.Split(patch, "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			if n, ok := newStartLine(line); ok {
				currentLine = n
			}
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			// File header metadata, not content.
		case strings.HasPrefix(line, "+"):
			content := line[1:]
			sig.LinesAdded = append(sig.LinesAdded, interfaces.Line{
				Number:  currentLine,
				Content: content,
			})
			p.extractor.ExtractLine(sig, fileType, content, interfaces.ChangeAdded)
			currentLine++
		case strings.HasPrefix(line, "-"):
			content := line[1:]
			sig.LinesRemoved = append(sig.LinesRemoved, interfaces.Line{
				Number:  currentLine,
				Content: content,
			})
			p.extractor.ExtractLine(sig, fileType, content, interfaces.ChangeRemoved)
			// Removed lines do not exist in the new file.
		case strings.HasPrefix(line, `\`):
			// "\ No newline at end of file" marker.
		default:
			currentLine++
		}
	}

	return sig
}

// newStartLine extracts the new-file starting line number from a hunk
// header. Returns false when the header carries no parseable number.
func newStartLine(line string) (int, bool) {
	m := hunkHeaderRegex.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
