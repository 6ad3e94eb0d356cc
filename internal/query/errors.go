package query

import "github.com/cockroachdb/errors"

// ErrInvalidArgument is returned, wrapped with the operation name, when a
// pipeline is handed a nil input.
var ErrInvalidArgument = errors.New("invalid argument")

func nilArgument(op, arg string) error {
	return errors.Wrapf(ErrInvalidArgument, "%s: %s is nil", op, arg)
}
