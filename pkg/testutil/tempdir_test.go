package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

type cleanuper struct{ fns []func() }

func (c *cleanuper) Cleanup(fn func()) { c.fns = append(c.fns, fn) }

func (c *cleanuper) runCleanups() {
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
}

func TestTempDir_DirIsValid(t *testing.T) {
	dir := TempDir(t)

	stat, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("TempDir returns %q which cannot be stated", dir)
	}
	if !stat.IsDir() {
		t.Errorf("TempDir returns %q which is not a dir", dir)
	}
}

func TestTempDir_CleanupRemovesDirRecursively(t *testing.T) {
	c := &cleanuper{}
	dir := TempDir(c)

	err := os.WriteFile(filepath.Join(dir, "a"), []byte("test"), 0600)
	if err != nil {
		panic(err)
	}

	c.runCleanups()
	if _, err := os.Stat(dir); err == nil {
		t.Errorf("Dir %q still exists after cleanup", dir)
	}
}

func TestInTempDir(t *testing.T) {
	c := &cleanuper{}
	oldWd, _ := os.Getwd()
	dir := InTempDir(c)

	wd, _ := os.Getwd()
	if wd != dir {
		t.Errorf("working directory is %q, want %q", wd, dir)
	}

	c.runCleanups()
	wd, _ = os.Getwd()
	if wd != oldWd {
		t.Errorf("working directory is %q after cleanup, want %q", wd, oldWd)
	}
}

func TestSetenv(t *testing.T) {
	c := &cleanuper{}
	const name = "PCOMB_TESTUTIL_VAR"
	os.Unsetenv(name)

	Setenv(c, name, "foo")
	if v := os.Getenv(name); v != "foo" {
		t.Errorf("got %q, want foo", v)
	}
	c.runCleanups()
	if _, ok := os.LookupEnv(name); ok {
		t.Errorf("env var still set after cleanup")
	}
}
