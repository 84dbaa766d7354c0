// Package logutil provides logging utilities.
//
// All loggers returned by GetLogger write to a shared output, which discards
// everything until SetOutput or SetOutputFile is called.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	out     = io.Discard
	loggers []*log.Logger
	lock    sync.Mutex
)

// GetLogger gets a logger with the given prefix.
func GetLogger(prefix string) *log.Logger {
	lock.Lock()
	defer lock.Unlock()
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// the new io.Writer. If the old output was a file opened by SetOutputFile, it
// is closed.
func SetOutput(newout io.Writer) {
	lock.Lock()
	defer lock.Unlock()
	if f, ok := out.(*os.File); ok {
		f.Close()
	}
	out = newout
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger to
// the named file. If the old output was a file opened by SetOutputFile, it is
// closed. The new file is truncated. SetOutputFile("") is equivalent to
// SetOutput(io.Discard).
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	SetOutput(file)
	return nil
}
