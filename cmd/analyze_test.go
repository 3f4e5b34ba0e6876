package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tkareem/changelens/pkg/report"
)

func TestReadPatchDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	write("utils.py.patch", "@@ -1 +1 @@\n+def helper(x):")
	write("app__config__settings.py.patch", "@@ -1 +1 @@\n+DEBUG = False")
	write("notes.txt", "not a patch")

	files, err := readPatchDir(dir)
	if err != nil {
		t.Fatalf("readPatchDir() error: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("got %d files, want 2: %+v", len(files), files)
	}

	byName := map[string]string{}
	for _, f := range files {
		byName[f.Filename] = f.Patch
	}
	if _, ok := byName["utils.py"]; !ok {
		t.Errorf("missing utils.py in %v", byName)
	}
	// "__" in the patch filename stands in for "/".
	if _, ok := byName["app/config/settings.py"]; !ok {
		t.Errorf("missing app/config/settings.py in %v", byName)
	}
}

func TestReadPatchDir_Empty(t *testing.T) {
	if _, err := readPatchDir(t.TempDir()); err == nil {
		t.Fatal("expected error for directory without patches")
	}
}

func TestReadPatchDir_Missing(t *testing.T) {
	if _, err := readPatchDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestSelectFormatter(t *testing.T) {
	if _, ok := selectFormatter("json").(*report.JSONFormatter); !ok {
		t.Error("json did not select the JSON formatter")
	}
	if _, ok := selectFormatter("terminal").(*report.TerminalFormatter); !ok {
		t.Error("terminal did not select the terminal formatter")
	}
	if _, ok := selectFormatter("").(*report.TerminalFormatter); !ok {
		t.Error("empty format did not fall back to the terminal formatter")
	}
}
