// Package classify maps filenames to semantic file categories.
// Classification is pure and total: every filename yields a FileType,
// falling back to FileTypeUnknown.
package classify

import (
	"path/filepath"
	"strings"

	"github.com/tkareem/changelens/pkg/interfaces"
)

// defaultExtensions maps lower-cased file extensions (without the dot) to
// file types. Checked last, after the name-based rules.
var defaultExtensions = map[string]interfaces.FileType{
	"py":   interfaces.FileTypePython,
	"js":   interfaces.FileTypeJavaScript,
	"ts":   interfaces.FileTypeTypeScript,
	"jsx":  interfaces.FileTypeReact,
	"tsx":  interfaces.FileTypeReact,
	"java": interfaces.FileTypeJava,
	"go":   interfaces.FileTypeGo,
	"rs":   interfaces.FileTypeRust,
	"cpp":  interfaces.FileTypeCpp,
	"c":    interfaces.FileTypeC,
	"yml":  interfaces.FileTypeYAML,
	"yaml": interfaces.FileTypeYAML,
	"json": interfaces.FileTypeJSON,
	"xml":  interfaces.FileTypeXML,
	"sql":  interfaces.FileTypeSQL,
	"sh":   interfaces.FileTypeShell,
	"tf":   interfaces.FileTypeTerraform,
	"md":   interfaces.FileTypeMarkdown,
}

// configExtensions are extensions treated as configuration regardless of the
// extension table.
var configExtensions = map[string]bool{
	"conf": true,
	"cfg":  true,
	"ini":  true,
	"env":  true,
}

// makefileNames are exact base names classified as makefiles.
var makefileNames = map[string]bool{
	"makefile":    true,
	"makefile.am": true,
	"makefile.in": true,
}

// dependencyNames are exact base names of dependency manifests.
var dependencyNames = map[string]bool{
	"requirements.txt": true,
	"package.json":     true,
	"cargo.toml":       true,
	"pom.xml":          true,
}

// Classifier assigns a FileType to a filename. The extension table is
// injectable so callers can extend it without touching the scoring logic.
type Classifier struct {
	extensions map[string]interfaces.FileType
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithExtensions adds or overrides extension mappings on top of the defaults.
func WithExtensions(ext map[string]interfaces.FileType) Option {
	return func(c *Classifier) {
		for k, v := range ext {
			c.extensions[strings.ToLower(k)] = v
		}
	}
}

// New creates a Classifier with the default extension table.
func New(opts ...Option) *Classifier {
	c := &Classifier{extensions: make(map[string]interfaces.FileType, len(defaultExtensions))}
	for k, v := range defaultExtensions {
		c.extensions[k] = v
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify maps a filename (which may include path separators) to its file
// type. Rules are evaluated in priority order; the first match wins.
func (c *Classifier) Classify(filename string) interfaces.FileType {
	lower := strings.ToLower(filename)
	base := strings.ToLower(filepath.Base(filename))

	if strings.Contains(lower, "dockerfile") {
		return interfaces.FileTypeDocker
	}
	if makefileNames[base] {
		return interfaces.FileTypeMakefile
	}
	if dependencyNames[base] {
		return interfaces.FileTypeDependency
	}

	ext := extension(lower)
	if strings.Contains(lower, "config") || configExtensions[ext] {
		return interfaces.FileTypeConfig
	}

	if ft, ok := c.extensions[ext]; ok {
		return ft
	}
	return interfaces.FileTypeUnknown
}

// extension returns the lower-cased text after the last dot, empty if none.
func extension(lower string) string {
	idx := strings.LastIndex(lower, ".")
	if idx < 0 || idx == len(lower)-1 {
		return ""
	}
	return lower[idx+1:]
}
