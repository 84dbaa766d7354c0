package comb

import (
	"fmt"

	"src.pcomb.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[comb] ")

// MismatchError is returned by Parse when the recognizer doesn't match.
type MismatchError struct {
	// The input at the point where matching failed.
	Rest string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("no rule applies at %s", compactQuote(e.Rest))
}

// FatalError is raised when the evaluation reaches a node built with Fail. It
// aborts the whole evaluation; an enclosing Or can't recover from it.
type FatalError struct {
	Message string
}

func (e *FatalError) Error() string { return "fatal: " + e.Message }
