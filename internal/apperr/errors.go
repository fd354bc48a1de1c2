// Package apperr defines the error taxonomy shared by the store, the mapper
// and the managers. Handlers translate these into HTTP problems.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// AuthenticationError is returned when no caller identity can be resolved.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	if e.Reason == "" {
		return "authorization required"
	}
	return "authorization required: " + e.Reason
}

// ValidationError captures field level validation issues that callers can
// surface to users. Each entry maps a wire field name to its reason.
type ValidationError struct {
	FieldErrors map[string]string
}

// Invalid returns a ValidationError carrying a single field reason.
func Invalid(field, reason string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, reason)
	return v
}

func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for f := range v.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	reasons := make([]string, 0, len(fields))
	for _, f := range fields {
		reasons = append(reasons, v.FieldErrors[f])
	}
	return strings.Join(reasons, "; ")
}

// Add records a field level validation error. The first reason recorded
// for a field wins.
func (v *ValidationError) Add(field, reason string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	if _, ok := v.FieldErrors[field]; ok {
		return
	}
	v.FieldErrors[field] = reason
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// OrNil returns v as an error when it holds reasons, nil otherwise.
func (v *ValidationError) OrNil() error {
	if !v.HasErrors() {
		return nil
	}
	return v
}

// Conflict names one existing reservation that overlaps a requested window.
type Conflict struct {
	Key       string
	Name      string
	StartDate string
	EndDate   string
}

// ConflictError is returned when a requested reservation window overlaps
// one or more existing reservations of the same owner.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	names := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		names = append(names, fmt.Sprintf("%q [%s, %s]", c.Name, orOpen(c.StartDate), orOpen(c.EndDate)))
	}
	return "reservation overlaps " + strings.Join(names, ", ")
}

func orOpen(d string) string {
	if d == "" {
		return "open"
	}
	return d
}

// StorageError wraps a failure of the underlying store or lock service.
// Callers may retry the whole operation.
type StorageError struct {
	Op  string
	Err error
}

// Storage wraps err as a StorageError for op. Errors that already belong to
// the taxonomy are returned unchanged.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomain(err) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Temporary reports that the failed operation is safe to retry.
func (e *StorageError) Temporary() bool { return true }

// IsDomain reports whether err is already one of the typed errors above.
func IsDomain(err error) bool {
	var (
		authErr     *AuthenticationError
		validErr    *ValidationError
		conflictErr *ConflictError
		storageErr  *StorageError
	)
	return errors.Is(err, ErrNotFound) ||
		errors.As(err, &authErr) ||
		errors.As(err, &validErr) ||
		errors.As(err, &conflictErr) ||
		errors.As(err, &storageErr)
}
