package shared

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds. Every domain error matches exactly one of these via errors.Is.
var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrConflict             = errors.New("conflict")
	ErrSerialization        = errors.New("serialization error")
)

// NotFoundError indicates that a referenced id does not exist
type NotFoundError struct {
	Kind string // e.g. "factory", "production unit", "template"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// InvalidConfigurationError indicates a structurally invalid entity at construction or update time
type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s - %s", e.Field, e.Reason)
}

func (e *InvalidConfigurationError) Is(target error) bool { return target == ErrInvalidConfiguration }

func NewInvalidConfigurationError(field, reason string) *InvalidConfigurationError {
	return &InvalidConfigurationError{Field: field, Reason: reason}
}

// SelfLoopError is returned when a logistics link would connect a factory to itself
type SelfLoopError struct {
	FactoryID string
}

func (e *SelfLoopError) Error() string {
	return fmt.Sprintf("invalid configuration: logistics link cannot loop factory %s to itself", e.FactoryID)
}

func (e *SelfLoopError) Is(target error) bool { return target == ErrInvalidConfiguration }

// DanglingReferenceError is returned when a logistics link names a factory that does not exist
type DanglingReferenceError struct {
	Role      string // "source" or "destination"
	FactoryID string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("invalid configuration: logistics %s factory does not exist: %s", e.Role, e.FactoryID)
}

func (e *DanglingReferenceError) Is(target error) bool { return target == ErrInvalidConfiguration }

// ConflictError indicates an operation would break an invariant involving other entities
type ConflictError struct {
	Reason string
	IDs    []string
}

func (e *ConflictError) Error() string {
	if len(e.IDs) == 0 {
		return fmt.Sprintf("conflict: %s", e.Reason)
	}
	return fmt.Sprintf("conflict: %s (%s)", e.Reason, strings.Join(e.IDs, ", "))
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

func NewConflictError(reason string, ids ...string) *ConflictError {
	return &ConflictError{Reason: reason, IDs: ids}
}

// SerializationError indicates a malformed or schema-incompatible persisted payload.
// Err is kept for the message only and is not unwrapped, so a payload that fails a
// domain check still reports as ErrSerialization alone.
type SerializationError struct {
	Reason string
	Err    error
}

func (e *SerializationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("serialization error: %s", e.Reason)
	}
	return fmt.Sprintf("serialization error: %s: %v", e.Reason, e.Err)
}

func (e *SerializationError) Is(target error) bool { return target == ErrSerialization }

func NewSerializationError(reason string, err error) *SerializationError {
	return &SerializationError{Reason: reason, Err: err}
}
