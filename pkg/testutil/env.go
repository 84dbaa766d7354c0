package testutil

import "os"

// Setenv sets the value of an environment variable for the duration of a test.
// It returns value.
func Setenv(c Cleanuper, name, value string) string {
	restoreLater(c, name)
	os.Setenv(name, value)
	return value
}

// Unsetenv unsets an environment variable for the duration of a test.
func Unsetenv(c Cleanuper, name string) {
	restoreLater(c, name)
	os.Unsetenv(name)
}

func restoreLater(c Cleanuper, name string) {
	if old, ok := os.LookupEnv(name); ok {
		c.Cleanup(func() { os.Setenv(name, old) })
	} else {
		c.Cleanup(func() { os.Unsetenv(name) })
	}
}
