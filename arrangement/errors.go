package arrangement

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField means a required manifest field is absent.
	ErrMissingField = errors.New("missing information from manifest")

	// ErrInvalidField means a manifest field is present but cannot be used.
	ErrInvalidField = errors.New("invalid information in manifest")

	// ErrExtraneousToneData means a manifest without a tone list still names
	// tones A to D.
	ErrExtraneousToneData = errors.New("legacy manifest has extraneous tone data")

	// ErrMultitoneDataMissing means the manifest assigns several tones but the
	// arrangement file has no tone changes. The arrangement has to be
	// re-authored, or built with the multitone fix.
	ErrMultitoneDataMissing = errors.New("tone data is missing in the arrangement and multitones will not change properly in game; re-author the XML arrangement and repair multitone names and change times")

	// ErrIO means the arrangement file could not be read or written.
	ErrIO = errors.New("arrangement file error")
)

// BuildError is returned by Build. Kind is one of the Err* values above and
// can be tested with errors.Is.
type BuildError struct {
	Kind  error
	Field string // Manifest field, for ErrMissingField and ErrInvalidField.
	Path  string // Arrangement file.
	Err   error  // Underlying error, if any.
}

func (e *BuildError) Error() string {
	msg := e.Kind.Error()
	if e.Field != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Field)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *BuildError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func missingField(field string) *BuildError {
	return &BuildError{Kind: ErrMissingField, Field: field}
}

func invalidField(field string, err error) *BuildError {
	return &BuildError{Kind: ErrInvalidField, Field: field, Err: err}
}

func ioError(path string, err error) *BuildError {
	return &BuildError{Kind: ErrIO, Path: path, Err: err}
}

// Warning is a non-fatal repair made while building an arrangement.
type Warning struct {
	Path    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Path, w.Message)
}
