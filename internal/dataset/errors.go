package dataset

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Load error codes, reported by the CLI alongside the message.
const (
	ErrCodeRead      = "E201" // file could not be read
	ErrCodeSchema    = "E202" // document does not match the CUE schema
	ErrCodeDecode    = "E203" // YAML could not be decoded into the model
	ErrCodeInvariant = "E204" // structural invariant violated
)

// ErrLoad matches every LoadError via errors.Is.
var ErrLoad = errors.New("dataset load failed")

// LoadError reports a dataset that could not be loaded or that violates a
// structural invariant. It is fatal: no query runs against a dataset that
// failed to load.
type LoadError struct {
	Code    string
	Source  string // file name or "<embedded>"; empty for New
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Source != "" {
		msg = fmt.Sprintf("%s: %s", e.Source, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrLoad) match any LoadError.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// IsLoadError reports whether err is (or wraps) a LoadError.
func IsLoadError(err error) bool {
	return errors.Is(err, ErrLoad)
}

func invariantError(format string, args ...any) error {
	return errors.WithHint(
		&LoadError{Code: ErrCodeInvariant, Message: fmt.Sprintf(format, args...)},
		"every id must be unique and every order must belong to exactly one customer",
	)
}

// withSource stamps the source name onto a LoadError produced deeper down.
func withSource(err error, source string) error {
	var le *LoadError
	if errors.As(err, &le) && le.Source == "" {
		le.Source = source
	}
	return err
}
