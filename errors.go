package requests

import (
	"errors"
	"fmt"
)

// ErrInvalidScope is matched (via errors.Is) by every error caused by
// a scope outside of Get, Post, Cookie, Env and Request.
var ErrInvalidScope = errors.New("Invalid request scope")

// InvalidScopeError is returned by the Store accessors when they are
// passed an unknown Scope, and by ParseScope for unknown names.  Name
// is only set when the scope was parsed from a string.
type InvalidScopeError struct {
	Scope Scope
	Name  string
}

// Error returns the InvalidScopeError's full error string.
func (err *InvalidScopeError) Error() string {
	if err.Name != "" {
		return fmt.Sprintf(`%s "%s"`, ErrInvalidScope, err.Name)
	}
	return fmt.Sprintf(`%s "%s"`, ErrInvalidScope, err.Scope)
}

// Unwrap allows errors.Is(err, ErrInvalidScope).
func (err *InvalidScopeError) Unwrap() error {
	return ErrInvalidScope
}

// checkScope returns an *InvalidScopeError if scope is unknown.
func checkScope(scope Scope) error {
	if !scope.Valid() {
		return &InvalidScopeError{Scope: scope}
	}
	return nil
}

// ReadError records a failure to read one scope from a Source.  The
// scope is treated as empty when this happens.
type ReadError struct {
	Scope Scope
	Err   error
}

// Error returns the ReadError's full error string.
func (err *ReadError) Error() string {
	return fmt.Sprintf("Could not read %s vars: %s", err.Scope, err.Err)
}

// Unwrap returns the error the Source reported.
func (err *ReadError) Unwrap() error {
	return err.Err
}
