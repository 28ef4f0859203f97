package behavior

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is returned for values outside of what an API accepts.
var ErrInvalidArgument = errors.New("invalid argument")

type ReturnBehavior string

const (
	LastReturn        ReturnBehavior = "LAST_RETURN"
	ArrayReturn       ReturnBehavior = "ARRAY_RETURN"
	ConcatArrayReturn ReturnBehavior = "CONCAT_ARRAY_RETURN"
)

// Valid returns every accepted ReturnBehavior. The slice is a fresh copy.
func Valid() []ReturnBehavior {
	return []ReturnBehavior{LastReturn, ArrayReturn, ConcatArrayReturn}
}

func (b ReturnBehavior) IsValid() bool {
	switch b {
	case LastReturn, ArrayReturn, ConcatArrayReturn:
		return true
	}
	return false
}

func (b ReturnBehavior) String() string {
	return string(b)
}

// ParseReturnBehavior reads a behavior from loosely formatted text such as
// an environment variable or a command line flag.
func ParseReturnBehavior(s string) (ReturnBehavior, error) {
	b := ReturnBehavior(strings.ToUpper(strings.TrimSpace(s)))
	if !b.IsValid() {
		return "", invalid(s)
	}
	return b, nil
}

func invalid(v any) error {
	return fmt.Errorf("%w: invalid return behavior %q, use one of %v", ErrInvalidArgument, v, Valid())
}
