package fit

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors. Use errors.Is to test for them; the typed errors below unwrap to
// the matching sentinel.
var (
	ErrOutOfRange                 = errors.New("fit: read out of range")
	ErrInvalidHeader              = errors.New("fit: invalid file header")
	ErrBadMagic                   = errors.New("fit: missing .FIT data type marker")
	ErrMissingDefinition          = errors.New("fit: missing message definition")
	ErrUnresolvedDeveloperField   = errors.New("fit: unresolved developer field")
	ErrChecksumMismatch           = errors.New("fit: checksum mismatch")
	ErrListenerPanic              = errors.New("fit: listener panicked")
	ErrEncoderClosed              = errors.New("fit: encoder is closed")
	ErrUnknownMessage             = errors.New("fit: unknown message")
	ErrUnregisteredDeveloperField = errors.New("fit: developer field not registered")
	ErrValueOutOfRange            = errors.New("fit: value out of range")
	ErrMergeHeartRates            = errors.New("fit: mergeHeartRates requires applyScaleAndOffset and expandComponents")
)

// StructuralError is a fatal failure: the stream cannot be parsed past Offset
type StructuralError struct {
	Offset int
	Err    error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("fit: structural error at offset %d: %v", e.Offset, e.Err)
}

func (e *StructuralError) Unwrap() error { return e.Err }

func structural(offset int, err error) error {
	return &StructuralError{Offset: offset, Err: err}
}

// MissingDefinitionError is recorded when a data record references a local message
// number that has no definition yet
type MissingDefinitionError struct {
	LocalNum uint8
	Offset   int
}

func (e *MissingDefinitionError) Error() string {
	return fmt.Sprintf("fit: no definition for local message %d at offset %d", e.LocalNum, e.Offset)
}

func (e *MissingDefinitionError) Unwrap() error { return ErrMissingDefinition }

// UnresolvedDeveloperFieldError is recorded when a developer field is read before its
// developer data id and field description were seen
type UnresolvedDeveloperFieldError struct {
	DeveloperDataIndex uint8
	FieldNum           uint8
}

func (e *UnresolvedDeveloperFieldError) Error() string {
	return fmt.Sprintf("fit: developer field %d of developer data index %d has no field description",
		e.FieldNum, e.DeveloperDataIndex)
}

func (e *UnresolvedDeveloperFieldError) Unwrap() error { return ErrUnresolvedDeveloperField }

// ChecksumMismatchError reports a stored CRC that does not match the computed one
type ChecksumMismatchError struct {
	Offset   int
	Expected uint16 // stored in the stream
	Actual   uint16 // computed
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("fit: checksum mismatch at offset %d: stored 0x%04X, computed 0x%04X",
		e.Offset, e.Expected, e.Actual)
}

func (e *ChecksumMismatchError) Unwrap() error { return ErrChecksumMismatch }

// IsFatal reports whether err ended a decode pass
func IsFatal(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}
