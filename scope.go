package requests

import (
	"fmt"
	"reflect"
	"strings"
)

// A Scope identifies one of the input sources a request variable can
// be read from or written to.
type Scope int

const (
	// Get holds the URL query values.
	Get Scope = iota
	// Post holds the values decoded from the request body.
	Post
	// Cookie holds the request cookies.
	Cookie
	// Env holds the server environment.  It is never merged into
	// Request.
	Env
	// Request is the merged view of Get, Post and Cookie.
	Request

	numScopes = int(Request) + 1
)

// priority is the order primary scopes are read in while parsing.
// Earlier scopes win when keys collide in Request.
var priority = []Scope{Get, Post, Cookie}

var scopeNames = [numScopes]string{
	Get:     "GET",
	Post:    "POST",
	Cookie:  "COOKIE",
	Env:     "ENV",
	Request: "REQUEST",
}

// Scopes returns every valid scope, in table order.
func Scopes() []Scope {
	return []Scope{Get, Post, Cookie, Env, Request}
}

// Valid reports whether s is one of the five known scopes.
func (s Scope) Valid() bool {
	return s >= Get && s <= Request
}

func (s Scope) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Scope(%d)", int(s))
	}
	return scopeNames[s]
}

// ParseScope returns the Scope named by name, ignoring case.  An
// *InvalidScopeError is returned for unknown names.
func ParseScope(name string) (Scope, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for scope, scopeName := range scopeNames {
		if upper == scopeName {
			return Scope(scope), nil
		}
	}
	return -1, &InvalidScopeError{Scope: -1, Name: name}
}

// Vars maps variable names to their values within a single scope.
type Vars map[string]interface{}

// Copy returns a shallow copy of vars.  The copy of a nil Vars is
// empty, not nil.
func (vars Vars) Copy() Vars {
	copied := make(Vars, len(vars))
	for name, value := range vars {
		copied[name] = value
	}
	return copied
}

// mergeMissing copies every key of src that is absent from dst.  Keys
// already in dst keep their value.
func mergeMissing(dst, src Vars) {
	for name, value := range src {
		if _, ok := dst[name]; !ok {
			dst[name] = value
		}
	}
}

// isNil reports whether value is nil, including typed nils such as a
// nil Vars, a nil slice or a nil pointer held in an interface{}.
func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}
