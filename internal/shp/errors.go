package shp

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/beetlebugorg/shapefile/internal/geometry"
)

// ErrEmptyPayload indicates a record whose content length is zero.
var ErrEmptyPayload = errors.New("empty record payload")

// ErrUnknownKind indicates a shape type code outside the documented set.
type ErrUnknownKind struct {
	Code int32
}

func (e *ErrUnknownKind) Error() string {
	return fmt.Sprintf("unknown shape type %d", e.Code)
}

// ErrTruncated indicates a payload too short for its mandatory fields.
type ErrTruncated struct {
	Kind geometry.Kind
	Need int
	Have int
}

func (e *ErrTruncated) Error() string {
	return fmt.Sprintf("%v payload truncated: need %d bytes, have %d", e.Kind, e.Need, e.Have)
}

// CorruptRecordError reports a record that cannot be decoded. It is fatal to
// that record only; callers decide whether to skip it or abort.
type CorruptRecordError struct {
	Number int // 1-based record number, 0 if unknown
	Reason string
	Err    error
}

func (e *CorruptRecordError) Error() string {
	msg := e.Reason
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	if e.Number > 0 {
		return fmt.Sprintf("corrupt record %d: %s", e.Number, msg)
	}
	return "corrupt record: " + msg
}

func (e *CorruptRecordError) Unwrap() error { return e.Err }

// Corrupt attaches a record number to a decode error. Errors that already
// carry a number are returned unchanged.
func Corrupt(number int, err error) error {
	if err == nil {
		return nil
	}
	var ce *CorruptRecordError
	if errors.As(err, &ce) {
		if ce.Number == 0 {
			return &CorruptRecordError{Number: number, Reason: ce.Reason, Err: ce.Err}
		}
		return err
	}
	return &CorruptRecordError{Number: number, Err: err}
}
