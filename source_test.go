package requests

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestEnvVars(t *testing.T) {
	t.Setenv("REQUESTS_TEST_PROCESS", "process")
	t.Setenv("REQUESTS_TEST_SHARED", "process")
	path := writeEnvFile(t, "REQUESTS_TEST_SHARED=file\nREQUESTS_TEST_FILE=file\n")

	vars, err := EnvVars(path)
	require.NoError(t, err)
	assert.Equal(t, "process", vars["REQUESTS_TEST_PROCESS"])
	assert.Equal(t, "process", vars["REQUESTS_TEST_SHARED"])
	assert.Equal(t, "file", vars["REQUESTS_TEST_FILE"])

	_, err = EnvVars(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestHTTPSource_Scopes(t *testing.T) {
	assert := assert.New(t)
	t.Setenv("REQUESTS_TEST_ENV", "on")
	httpRequest := httptest.NewRequest("POST", "http://example.com/path?q=go&tag=a&tag=b", bytes.NewBufferString(`name=gopher`))
	httpRequest.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpRequest.AddCookie(&http.Cookie{Name: "sid", Value: "abc"})
	source := NewHTTPSource(httpRequest)

	get, err := source.Vars(Get)
	assert.NoError(err)
	assert.Equal(Vars{"q": "go", "tag": []interface{}{"a", "b"}}, get)

	post, err := source.Vars(Post)
	assert.NoError(err)
	assert.Equal(Vars{"name": "gopher"}, post)

	cookie, err := source.Vars(Cookie)
	assert.NoError(err)
	assert.Equal(Vars{"sid": "abc"}, cookie)

	env, err := source.Vars(Env)
	assert.NoError(err)
	assert.Equal("on", env["REQUESTS_TEST_ENV"])

	request, err := source.Vars(Request)
	assert.NoError(err)
	assert.Empty(request)

	_, err = source.Vars(Scope(12))
	assert.ErrorIs(err, ErrInvalidScope)

	assert.Equal("POST", source.Method())
	headers := source.Headers()
	assert.Equal("example.com", headers.Get("Host"))
	assert.Equal("application/x-www-form-urlencoded", headers.Get("Content-Type"))
}

func TestHTTPSource_CLI(t *testing.T) {
	assert := assert.New(t)
	t.Setenv("REQUESTS_TEST_ENV", "cli")
	source := NewHTTPSource(nil)
	for _, scope := range priority {
		vars, err := source.Vars(scope)
		assert.NoError(err)
		assert.Empty(vars)
	}
	env, err := source.Vars(Env)
	assert.NoError(err)
	assert.Equal("cli", env["REQUESTS_TEST_ENV"])
	assert.Equal("", source.Method())
	assert.Empty(source.Headers())
}

func TestHTTPSource_EnvFiles(t *testing.T) {
	source := &HTTPSource{EnvFiles: []string{writeEnvFile(t, "REQUESTS_TEST_DOTENV=loaded\n")}}
	env, err := source.Vars(Env)
	require.NoError(t, err)
	assert.Equal(t, "loaded", env["REQUESTS_TEST_DOTENV"])
}

func TestNew_HTTPRequest(t *testing.T) {
	assert := assert.New(t)
	t.Setenv("REQUESTS_TEST_ENV", "server")
	httpRequest := httptest.NewRequest("POST", "/?id=7&shared=get", bytes.NewBufferString(`{"shared":"post","count":2}`))
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.AddCookie(&http.Cookie{Name: "shared", Value: "cookie"})
	httpRequest.AddCookie(&http.Cookie{Name: "sid", Value: "s1"})

	store := New(httpRequest)
	assert.NoError(store.ReadErr())
	assert.Equal("POST", store.Method())
	assert.Equal("7", store.Get("id", nil))
	assert.Equal("get", store.Get("shared", nil))
	assert.Equal(float64(2), store.Get("count", nil))
	assert.Equal("s1", store.Get("sid", nil))
	assert.Nil(store.Get("REQUESTS_TEST_ENV", nil))

	env, err := store.GetFrom(Env, "REQUESTS_TEST_ENV", nil)
	assert.NoError(err)
	assert.Equal("server", env)

	shared, err := store.GetFrom(Post, "shared", nil)
	assert.NoError(err)
	assert.Equal("post", shared)
}

func TestNew_BadBody(t *testing.T) {
	httpRequest := httptest.NewRequest("PUT", "/?a=1", bytes.NewBufferString(`{not json`))
	httpRequest.Header.Set("Content-Type", "application/json")
	store := New(httpRequest)

	var readErr *ReadError
	if assert.True(t, errors.As(store.ReadErr(), &readErr)) {
		assert.Equal(t, Post, readErr.Scope)
	}
	post, err := store.Scope(Post)
	require.NoError(t, err)
	assert.Empty(t, post)
	assert.Equal(t, "1", store.Get("a", nil))
}

func TestNew_CLI(t *testing.T) {
	store := New(nil)
	assert.Equal(t, MethodCLI, store.Method())
	assert.Empty(t, store.Vars())
	assert.Empty(t, store.Headers())
}

func TestNew_MalformedQueryKeepsBody(t *testing.T) {
	assert := assert.New(t)
	httpRequest := httptest.NewRequest("POST", "/?a=%zz&ok=1", bytes.NewBufferString(`b=1`))
	httpRequest.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	store := New(httpRequest)

	assert.NoError(store.ReadErr())
	post, err := store.Scope(Post)
	assert.NoError(err)
	assert.Equal(Vars{"b": "1"}, post)
	get, err := store.Scope(Get)
	assert.NoError(err)
	assert.Equal(Vars{"ok": "1"}, get)
	assert.Equal(Vars{"ok": "1", "b": "1"}, store.Vars())
	assert.Equal([]string{"1"}, httpRequest.PostForm["b"])
}

func TestNew_MalformedQueryKeepsMultipartBody(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("name", "gopher"))
	require.NoError(t, writer.Close())
	httpRequest := httptest.NewRequest("POST", "/?a=%zz", body)
	httpRequest.Header.Set("Content-Type", writer.FormDataContentType())
	store := New(httpRequest)

	assert.NoError(t, store.ReadErr())
	assert.Equal(t, "gopher", store.Get("name", nil))
}

func TestParseBody_UrlEncodedOnlyForBodyMethods(t *testing.T) {
	httpRequest := httptest.NewRequest("DELETE", "/", bytes.NewBufferString(`b=1`))
	httpRequest.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	vars, err := ParseParams(httpRequest, DefaultMultipartMemory)
	require.NoError(t, err)
	assert.Empty(t, vars)
}

func TestReadDotEnv(t *testing.T) {
	assert := assert.New(t)
	t.Setenv("REQUESTS_TEST_SHARED", "process")
	path := writeEnvFile(t, "REQUESTS_TEST_SHARED=file\nREQUESTS_TEST_SNAPSHOT=file\n")
	dotEnv := ReadDotEnv(path)
	require.NoError(t, dotEnv.Err)
	require.NoError(t, os.Remove(path))

	source := &HTTPSource{DotEnv: dotEnv, EnvFiles: []string{path}}
	env, err := source.Vars(Env)
	require.NoError(t, err)
	assert.Equal("process", env["REQUESTS_TEST_SHARED"])
	assert.Equal("file", env["REQUESTS_TEST_SNAPSHOT"])

	missing := ReadDotEnv(path)
	assert.Error(missing.Err)
	_, err = missing.EnvVars()
	assert.Error(err)

	empty := ReadDotEnv()
	assert.NoError(empty.Err)
	assert.Empty(empty.Vars)
}
