package core

import (
	"errors"
	"fmt"
)

// ErrNoMatch means a name selector matched no registered user.
var ErrNoMatch = errors.New("could not find a matching name")

// RangeError means a numeric selector fell outside the current user list
// or question queue. Value keeps the caller's original input for the
// error message.
type RangeError struct {
	Value string
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s is not a valid ID in the range [0, %d)", e.Value, e.Max)
}
