// Package requeststest provides requests.Source implementations for
// tests that need a Store without a live *http.Request.
package requeststest

import (
	"net/http"

	"github.com/deepelopment/requests"
	"github.com/stretchr/testify/mock"
)

// Source is a static requests.Source.  The zero value has no
// variables, no method and no headers.
type Source struct {
	// Scopes holds the vars returned for each primary scope.
	Scopes map[requests.Scope]requests.Vars

	// Errs holds read failures.  A scope with an error returns it
	// along with whatever Scopes holds for it.
	Errs map[requests.Scope]error

	// RequestMethod is returned by Method.
	RequestMethod string

	// Header is returned by Headers.
	Header http.Header

	// Reads records each scope passed to Vars, in order.
	Reads []requests.Scope
}

// Vars implements requests.Source.
func (s *Source) Vars(scope requests.Scope) (requests.Vars, error) {
	s.Reads = append(s.Reads, scope)
	return s.Scopes[scope], s.Errs[scope]
}

// Method implements requests.Source.
func (s *Source) Method() string {
	return s.RequestMethod
}

// Headers implements requests.Source.
func (s *Source) Headers() http.Header {
	return s.Header
}

// MockSource is a testify mock of requests.Source.
type MockSource struct {
	mock.Mock
}

// Vars implements requests.Source.
func (m *MockSource) Vars(scope requests.Scope) (requests.Vars, error) {
	args := m.Called(scope)
	vars, _ := args.Get(0).(requests.Vars)
	return vars, args.Error(1)
}

// ExpectVars sets up an expectation for Vars(scope).
func (m *MockSource) ExpectVars(scope requests.Scope, vars requests.Vars, err error) *mock.Call {
	return m.On("Vars", scope).Return(vars, err)
}

// Method implements requests.Source.
func (m *MockSource) Method() string {
	return m.Called().String(0)
}

// Headers implements requests.Source.
func (m *MockSource) Headers() http.Header {
	headers, _ := m.Called().Get(0).(http.Header)
	return headers
}
