package logutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	logger := GetLogger("[test] ")
	var sb strings.Builder
	SetOutput(&sb)
	t.Cleanup(func() { SetOutput(io.Discard) })

	logger.Println("hello")
	if !strings.Contains(sb.String(), "[test] ") ||
		!strings.HasSuffix(sb.String(), "hello\n") {
		t.Errorf("got %q, want prefix and message", sb.String())
	}
}

func TestSetOutputFile(t *testing.T) {
	logger := GetLogger("[test] ")
	fname := filepath.Join(t.TempDir(), "log")
	if err := SetOutputFile(fname); err != nil {
		t.Fatal(err)
	}
	logger.Println("to file")
	// Closes the file.
	if err := SetOutputFile(""); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "to file") {
		t.Errorf("log file has %q, want it to contain %q", content, "to file")
	}
}

func TestSetOutputFile_BadPath(t *testing.T) {
	err := SetOutputFile(filepath.Join(t.TempDir(), "no", "such", "dir"))
	if err == nil {
		t.Errorf("want error for bad path")
	}
}
