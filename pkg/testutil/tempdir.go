package testutil

import (
	"os"
	"path/filepath"
)

// TempDir creates a temporary directory for testing that will be removed
// after the test finishes. Symlinks in the returned path are resolved.
func TempDir(c Cleanuper) string {
	dir, err := os.MkdirTemp("", "pcombtest")
	if err != nil {
		panic(err)
	}
	dir, err = filepath.EvalSymlinks(dir)
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() {
		err := os.RemoveAll(dir)
		if err != nil {
			println("failed to remove temp dir", dir)
		}
	})
	return dir
}

// InTempDir is like TempDir, but also changes into the directory, and changes
// back to the original working directory when the test finishes. It returns
// the temporary directory.
func InTempDir(c Cleanuper) string {
	tmpDir := TempDir(c)
	Chdir(c, tmpDir)
	return tmpDir
}

// Chdir changes into a directory, and restores the original working directory
// when the test finishes. It returns the directory for easier chaining.
func Chdir(c Cleanuper, dir string) string {
	oldWd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
	c.Cleanup(func() {
		if err := os.Chdir(oldWd); err != nil {
			panic(err)
		}
	})
	return dir
}
