// The requests package keeps the variables of a web request in named
// scopes: the query string (Get), the decoded body (Post), cookies
// (Cookie), the server environment (Env) and a merged view of the
// first three (Request).  The most common uses for this library are
// as follows:
//
//     store := requests.New(request)
//     id := store.Get("id", "0")
//
//     page, err := store.GetFrom(requests.Get, "page", "1")
//
// Scopes are read once, when the Store is created, from a Source.
// HTTPSource reads a live *http.Request; tests and other callers can
// supply their own Source or skip parsing altogether and pass
// overrides.
//
// Request is built with an additive merge: a key already present is
// never replaced.  Because Get is read before Post and Cookie, a query
// value wins over a body or cookie value of the same name.
package requests

import (
	"net/http"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// MethodCLI is returned by Store.Method when there is no HTTP method,
// e.g. when running outside of a web server.
const MethodCLI = "CLI"

// A Store holds every scope of a single request.  It is not safe for
// concurrent use; treat each Store as owned by one request.
type Store struct {
	source  Source
	scopes  [numScopes]Vars
	readErr error
}

// New creates a *Store parsed from request.  A nil request creates a
// CLI store, with only Env populated.
func New(request *http.Request) *Store {
	return NewStore(NewHTTPSource(request), nil, true)
}

// NewStore creates a *Store.  Each scope starts as a copy of its entry
// in overrides (or empty).  If parse is true, Get, Post, Cookie and
// then Env are read from source and merged into their scopes without
// replacing existing keys; all but Env are merged into Request the
// same way.
//
// Reads that fail are treated as empty scopes.  See ReadErr.
func NewStore(source Source, overrides map[Scope]Vars, parse bool) *Store {
	store := &Store{source: source}
	for scope, vars := range overrides {
		if !scope.Valid() {
			Logger().Warn("ignoring override for unknown scope", zap.Stringer("scope", scope))
			continue
		}
		store.scopes[scope] = vars.Copy()
	}
	for idx := range store.scopes {
		if store.scopes[idx] == nil {
			store.scopes[idx] = make(Vars)
		}
	}
	if parse && source != nil {
		store.parse()
	}
	return store
}

func (store *Store) parse() {
	order := append(append([]Scope{}, priority...), Env)
	for _, scope := range order {
		vars, err := store.source.Vars(scope)
		if err != nil {
			Logger().Warn("could not read request scope",
				zap.Stringer("scope", scope),
				zap.Error(err),
			)
			store.readErr = multierr.Append(store.readErr, &ReadError{Scope: scope, Err: err})
			vars = nil
		}
		Logger().Debug("read request scope",
			zap.Stringer("scope", scope),
			zap.Int("vars", len(vars)),
		)
		mergeMissing(store.scopes[scope], vars)
		if scope != Env {
			mergeMissing(store.scopes[Request], vars)
		}
	}
}

// ReadErr returns every *ReadError encountered while parsing, combined
// with go.uber.org/multierr, or nil if all reads succeeded.
func (store *Store) ReadErr() error {
	return store.readErr
}

// Get returns the Request variable called name, or def if it is not
// set.
func (store *Store) Get(name string, def interface{}) interface{} {
	if value, ok := store.scopes[Request][name]; ok {
		return value
	}
	return def
}

// GetFrom returns the variable called name in scope, or def if it is
// not set.  An *InvalidScopeError is returned for unknown scopes.
func (store *Store) GetFrom(scope Scope, name string, def interface{}) (interface{}, error) {
	if err := checkScope(scope); err != nil {
		return nil, err
	}
	if value, ok := store.scopes[scope][name]; ok {
		return value, nil
	}
	return def, nil
}

// Has reports whether name is set in scope.
func (store *Store) Has(scope Scope, name string) (bool, error) {
	if err := checkScope(scope); err != nil {
		return false, err
	}
	_, ok := store.scopes[scope][name]
	return ok, nil
}

// Set stores value as name in scope.  A nil value removes name; typed
// nils count, so Vars(nil), a nil slice or a nil pointer remove it
// too, while empty but non-nil values are stored.  Only the in-memory
// scope is changed.
func (store *Store) Set(scope Scope, name string, value interface{}) error {
	if err := checkScope(scope); err != nil {
		return err
	}
	if isNil(value) {
		delete(store.scopes[scope], name)
		return nil
	}
	store.scopes[scope][name] = value
	return nil
}

// Scope returns a copy of every variable in scope.
func (store *Store) Scope(scope Scope) (Vars, error) {
	if err := checkScope(scope); err != nil {
		return nil, err
	}
	return store.scopes[scope].Copy(), nil
}

// Vars returns a copy of the Request scope.
func (store *Store) Vars() Vars {
	return store.scopes[Request].Copy()
}

// SetScope replaces every variable in scope with vars.  Nothing is
// merged.
func (store *Store) SetScope(scope Scope, vars Vars) error {
	if err := checkScope(scope); err != nil {
		return err
	}
	store.scopes[scope] = vars.Copy()
	return nil
}

// Method returns the request's HTTP method, or MethodCLI if there is
// none.
func (store *Store) Method() string {
	if store.source == nil {
		return MethodCLI
	}
	if method := store.source.Method(); method != "" {
		return method
	}
	return MethodCLI
}

// Headers returns the incoming HTTP headers.  Repeated headers are
// joined with ", ".
func (store *Store) Headers() map[string]string {
	headers := make(map[string]string)
	if store.source == nil {
		return headers
	}
	for name, values := range store.source.Headers() {
		headers[name] = strings.Join(values, ", ")
	}
	return headers
}
