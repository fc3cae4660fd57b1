package board

import (
	"errors"
	"fmt"
)

// ValidationError represents a structural integrity failure detected by
// the engine. All failures are deterministic data errors surfaced
// synchronously to the caller; none are transient or retryable.
//
// Error kinds:
//   - Duplicate id: two records (input-input or new-vs-existing) share an id
//   - Dangling reference: a LowerID names a record that does not exist
//   - Cycle: following LowerID links never reaches a bottom record
//   - Broken chain: an appended record does not sit on the current top
//   - Not found: an extraction selection names an id absent from the board
type ValidationError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// RecordID identifies the offending record, when known.
	RecordID string

	// LowerID is the offending lower reference (dangling/broken-chain errors).
	LowerID string
}

// ErrorCode categorizes validation errors.
type ErrorCode string

const (
	// ErrCodeDuplicateID indicates two records share an id.
	ErrCodeDuplicateID ErrorCode = "DUPLICATE_ID"

	// ErrCodeDanglingReference indicates a LowerID names a nonexistent record.
	ErrCodeDanglingReference ErrorCode = "DANGLING_REFERENCE"

	// ErrCodeCycleDetected indicates the LowerID graph contains a cycle.
	ErrCodeCycleDetected ErrorCode = "CYCLE_DETECTED"

	// ErrCodeBrokenChain indicates an appended record does not match the top.
	ErrCodeBrokenChain ErrorCode = "BROKEN_CHAIN"

	// ErrCodeNotFound indicates a selected id is absent from the board.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.RecordID != "" && e.LowerID != "" {
		return fmt.Sprintf("%s: %s (record=%s, lower=%s)", e.Code, e.Message, e.RecordID, e.LowerID)
	}
	if e.RecordID != "" {
		return fmt.Sprintf("%s: %s (record=%s)", e.Code, e.Message, e.RecordID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsDuplicateID returns true if the error is a duplicate-id error.
// Uses errors.As to handle wrapped errors.
func IsDuplicateID(err error) bool {
	return hasCode(err, ErrCodeDuplicateID)
}

// IsDanglingReference returns true if the error is a dangling-reference error.
// Uses errors.As to handle wrapped errors.
func IsDanglingReference(err error) bool {
	return hasCode(err, ErrCodeDanglingReference)
}

// IsCycle returns true if the error is a cycle-detection error.
// Uses errors.As to handle wrapped errors.
func IsCycle(err error) bool {
	return hasCode(err, ErrCodeCycleDetected)
}

// IsBrokenChain returns true if the error is a broken-chain error.
// Uses errors.As to handle wrapped errors.
func IsBrokenChain(err error) bool {
	return hasCode(err, ErrCodeBrokenChain)
}

// IsNotFound returns true if the error is a not-found error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

func hasCode(err error, code ErrorCode) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code == code
	}
	return false
}

func newDuplicateIDError(id string) *ValidationError {
	return &ValidationError{
		Code:     ErrCodeDuplicateID,
		Message:  "record id already present",
		RecordID: id,
	}
}

func newDanglingReferenceError(id, lower string) *ValidationError {
	return &ValidationError{
		Code:     ErrCodeDanglingReference,
		Message:  "lower id references a nonexistent record",
		RecordID: id,
		LowerID:  lower,
	}
}

func newCycleError(id string) *ValidationError {
	return &ValidationError{
		Code:     ErrCodeCycleDetected,
		Message:  "lower id chain never reaches a bottom record",
		RecordID: id,
	}
}

func newBrokenChainError(id, lower string) *ValidationError {
	return &ValidationError{
		Code:     ErrCodeBrokenChain,
		Message:  "appended record does not sit on the current top",
		RecordID: id,
		LowerID:  lower,
	}
}

func newNotFoundError(id string) *ValidationError {
	return &ValidationError{
		Code:     ErrCodeNotFound,
		Message:  "no record with this id on the board",
		RecordID: id,
	}
}
