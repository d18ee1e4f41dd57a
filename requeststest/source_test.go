package requeststest

import (
	"errors"
	"net/http"
	"testing"

	"github.com/deepelopment/requests"
	"github.com/stretchr/testify/assert"
)

func TestSource(t *testing.T) {
	assert := assert.New(t)
	readErr := errors.New("Read failed")
	s := &Source{
		Scopes:        map[requests.Scope]requests.Vars{requests.Get: {"a": "1"}},
		Errs:          map[requests.Scope]error{requests.Post: readErr},
		RequestMethod: http.MethodPut,
		Header:        http.Header{"Accept": {"*/*"}},
	}
	var _ requests.Source = s

	vars, err := s.Vars(requests.Get)
	assert.NoError(err)
	assert.Equal(requests.Vars{"a": "1"}, vars)

	vars, err = s.Vars(requests.Post)
	assert.Equal(readErr, err)
	assert.Nil(vars)

	assert.Equal([]requests.Scope{requests.Get, requests.Post}, s.Reads)
	assert.Equal(http.MethodPut, s.Method())
	assert.Equal("*/*", s.Headers().Get("Accept"))
}

func TestMockSource(t *testing.T) {
	m := new(MockSource)
	var _ requests.Source = m
	m.ExpectVars(requests.Cookie, requests.Vars{"sid": "x"}, nil).Once()
	m.On("Method").Return("GET").Once()
	m.On("Headers").Return(nil).Once()

	vars, err := m.Vars(requests.Cookie)
	assert.NoError(t, err)
	assert.Equal(t, requests.Vars{"sid": "x"}, vars)
	assert.Equal(t, "GET", m.Method())
	assert.Nil(t, m.Headers())
	m.AssertExpectations(t)
}
