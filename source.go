package requests

import (
	"net/http"
)

// A Source provides the raw input a Store is populated from.
type Source interface {
	// Vars returns the variables for one of the primary scopes (Get,
	// Post, Cookie or Env).  A failed read is reported with an error
	// and will be treated as an empty scope.
	Vars(scope Scope) (Vars, error)

	// Method returns the HTTP method, or an empty string when there is
	// none (e.g. outside of a web server).
	Method() string

	// Headers returns the incoming HTTP headers.
	Headers() http.Header
}

// HTTPSource is the Source for a live *http.Request.  A nil Request
// puts it in CLI mode: Get, Post and Cookie are empty, Method is empty
// and only Env is read.
type HTTPSource struct {
	Request *http.Request

	// MultipartMemory is the memory limit passed to
	// ParseMultipartForm.  Zero means DefaultMultipartMemory.
	MultipartMemory int64

	// EnvFiles are dotenv files read into Env after the process
	// environment.  They are read on every Env read unless DotEnv is
	// set.
	EnvFiles []string

	// DotEnv, when set, replaces EnvFiles with values read earlier.
	DotEnv *DotEnv
}

// NewHTTPSource creates an *HTTPSource for request with default
// settings.
func NewHTTPSource(request *http.Request) *HTTPSource {
	return &HTTPSource{Request: request}
}

// Vars implements Source.
func (source *HTTPSource) Vars(scope Scope) (Vars, error) {
	if scope == Env {
		if source.DotEnv != nil {
			return source.DotEnv.EnvVars()
		}
		return EnvVars(source.EnvFiles...)
	}
	if err := checkScope(scope); err != nil {
		return nil, err
	}
	if source.Request == nil {
		return Vars{}, nil
	}
	switch scope {
	case Get:
		if source.Request.URL == nil {
			return Vars{}, nil
		}
		return flattenForm(source.Request.URL.Query()), nil
	case Post:
		mem := source.MultipartMemory
		if mem <= 0 {
			mem = DefaultMultipartMemory
		}
		return ParseParams(source.Request, mem)
	case Cookie:
		return cookieVars(source.Request.Cookies()), nil
	}
	// Request is derived by the Store, never read.
	return Vars{}, nil
}

// Method implements Source.
func (source *HTTPSource) Method() string {
	if source.Request == nil {
		return ""
	}
	return source.Request.Method
}

// Headers implements Source.  net/http moves the Host header onto the
// request itself, so it is put back here.
func (source *HTTPSource) Headers() http.Header {
	if source.Request == nil {
		return http.Header{}
	}
	headers := source.Request.Header.Clone()
	if headers == nil {
		headers = http.Header{}
	}
	if source.Request.Host != "" && headers.Get("Host") == "" {
		headers.Set("Host", source.Request.Host)
	}
	return headers
}
