package engine

import (
	"errors"
	"fmt"

	"github.com/chirpkv/chirp/lib/record"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// EngineFactory is a function type that creates a new engine instance.
// This is used to abstract the creation of the backend from the callers,
// and lets tests run multiple independent store instances side by side.
type EngineFactory func() (IEngine, error)

// IEngine is the generic interface for interacting with a chirp record store.
// All mutating operations return the resulting record state along with an
// error (nil on success); a non-nil error always means nothing was mutated.
type IEngine interface {
	// Create stores a new record under an unused, caller-supplied key. The
	// author identity is bound to the record and the timestamp is taken from
	// the engine clock; both are immutable afterwards. Fails with
	// RetCAlreadyExists if the key is occupied and RetCValidation if the
	// topic exceeds the character limit.
	Create(key string, author record.Identity, topic, content string) (record.Record, error)

	// Update replaces topic and content of an existing record, leaving author
	// and timestamp untouched. The requester must equal the stored author
	// (RetCUnauthorized otherwise). Fails with RetCNotFound for absent keys.
	// The encoded record may grow or shrink across updates.
	Update(key string, topic, content string, requester record.Identity) (record.Record, error)

	// Delete removes an existing record. The requester must equal the stored
	// author. After a successful delete, Get reports the key as not found.
	Delete(key string, requester record.Identity) error

	// Get returns the record stored under key. The boolean return value
	// indicates whether a record was found; absence is a normal outcome, not
	// an error.
	Get(key string) (rec record.Record, loaded bool, err error)

	// List returns every stored record matching all given filters (logical
	// AND). With no filters, every record is returned. The order of the
	// result is unspecified. Records too short for a filter's offset are
	// skipped, not reported as errors.
	List(filters ...record.Filter) ([]record.Keyed, error)

	// Close releases the resources held by the engine.
	Close() error
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("EngineError (code %s): %s", e.Code, e.Msg)
}

// NewError creates a new engine Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// CodeOf extracts the RetCode from an error returned by an engine. Errors
// that did not originate from an engine map to RetCInternalError.
func CodeOf(err error) RetCode {
	if err == nil {
		return RetCSuccess
	}
	var engineErr *Error
	if errors.As(err, &engineErr) {
		return engineErr.Code
	}
	var corrupt *record.CorruptError
	if errors.As(err, &corrupt) {
		return RetCCorruptRecord
	}
	return RetCInternalError
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess       RetCode = iota // 0: Operation executed successfully.
	RetCInternalError                // 1: Operation failed due to an internal error.
	RetCValidation                   // 2: A field value violates a validation rule.
	RetCUnauthorized                 // 3: Requester is not the record's author.
	RetCNotFound                     // 4: Operation targets an absent key.
	RetCAlreadyExists                // 5: Create targets an occupied key.
	RetCCorruptRecord                // 6: A stored record failed to decode.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCValidation:
		return "Validation"
	case RetCUnauthorized:
		return "Unauthorized"
	case RetCNotFound:
		return "NotFound"
	case RetCAlreadyExists:
		return "AlreadyExists"
	case RetCCorruptRecord:
		return "CorruptRecord"
	default:
		return "Unknown"
	}
}
