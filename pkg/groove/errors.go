package groove

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks errors caused by caller input: unknown
	// groove types, missing or unsupported parameters, wrong unit
	// dimensions and invalid code numbers.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedOperation marks calls that the receiver cannot serve,
	// such as building a profile of the unspecialized Base groove.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

func invalidf(t Type, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidArgument, t, fmt.Sprintf(format, args...))
}
