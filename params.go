package requests

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
)

// DefaultMultipartMemory is the memory limit used for multipart form
// data when an HTTPSource does not set one.
const DefaultMultipartMemory int64 = 2 << 20 * 10

// ParseBody decodes the request's body according to its Content-Type
// header.  The resulting type is unpredictable and will be heavily
// based on the actual data in the request.
//
// Only the body is read; the URL query is never parsed here, so a bad
// query string cannot fail the body.  There are two exceptions to the
// codec lookup:
//
// * application/x-www-form-urlencoded
//
// ** The return value is a url.Values, which is also stored as
//    "net/http".Request.PostForm.  Bodies are only decoded for POST,
//    PUT and PATCH, as net/http does.
//
// * multipart/form-data
//
// ** The return value is a *"mime/multipart".Form read with
//    maxMemory, which is also stored as
//    "net/http".Request.MultipartForm.
//
// A missing Content-Type is treated as an opaque body and yields empty
// url.Values.  An empty body with any other Content-Type yields nil.
func ParseBody(request *http.Request, maxMemory int64) (interface{}, error) {
	var contentType string
	if header := request.Header.Get("Content-Type"); header != "" {
		var err error
		if contentType, _, err = mime.ParseMediaType(header); err != nil {
			return nil, err
		}
	}
	switch contentType {
	case "":
		return url.Values{}, nil
	case "application/x-www-form-urlencoded":
		return parseURLEncoded(request)
	case "multipart/form-data":
		return parseMultipart(request, maxMemory)
	}

	body, err := io.ReadAll(request.Body)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}
	return unmarshalBody(contentType, body)
}

// maxFormSize is the limit net/http applies to urlencoded bodies.
const maxFormSize = int64(10 << 20)

func parseURLEncoded(request *http.Request) (url.Values, error) {
	if request.PostForm != nil {
		return request.PostForm, nil
	}
	switch request.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return url.Values{}, nil
	}
	body, err := io.ReadAll(io.LimitReader(request.Body, maxFormSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > maxFormSize {
		return nil, errors.New("http: POST too large")
	}
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, err
	}
	request.PostForm = values
	return values, nil
}

func parseMultipart(request *http.Request, maxMemory int64) (*multipart.Form, error) {
	if request.MultipartForm != nil {
		return request.MultipartForm, nil
	}
	reader, err := request.MultipartReader()
	if err != nil {
		return nil, err
	}
	form, err := reader.ReadForm(maxMemory)
	if err != nil {
		return nil, err
	}
	request.MultipartForm = form
	return form, nil
}

// ParseParams returns the Post vars found in a request body.  In most
// cases, this is the equivalent of ParseBody(request).(map[string]interface{}).
// However, there are two exceptions:
//
// * application/x-www-form-urlencoded
//
// ** Each value in request.PostForm that has a len() of 1 will be
//    stored instead as the zeroeth index of the value.
//
// * multipart/form-data
//
// ** In addition to the above, files will be stored at the same
//    level as values.  Each value in the resulting map could contain
//    both string and *"mime/multipart".FileHeader values.
//
// A request without a body has no Post vars, so the result is empty.
func ParseParams(request *http.Request, maxMemory int64) (Vars, error) {
	if request.Body == nil || request.Body == http.NoBody {
		return Vars{}, nil
	}
	body, err := ParseBody(request, maxMemory)
	if err != nil {
		return nil, err
	}
	return bodyVars(body)
}

func bodyVars(body interface{}) (Vars, error) {
	switch decoded := body.(type) {
	case nil:
		return Vars{}, nil
	case url.Values, *multipart.Form:
		return flattenForm(decoded), nil
	case map[string]interface{}:
		return Vars(decoded), nil
	}
	return nil, errors.New("The unmarshalled body is not of type map[string]interface{} " +
		"and cannot be converted to vars")
}

// flattenForm turns form values into Vars.  Keys with one value map to
// that value; keys with several map to a []interface{}.  Multipart
// files are stored next to the values under the same rule.
func flattenForm(form interface{}) Vars {
	var (
		vars   = make(Vars)
		values map[string][]string
		files  map[string][]*multipart.FileHeader
	)
	switch form := form.(type) {
	case url.Values:
		values = form
	case *multipart.Form:
		if form == nil {
			return vars
		}
		values = form.Value
		files = form.File
	}
	for name, valueList := range values {
		if len(valueList) == 1 {
			vars[name] = valueList[0]
			continue
		}
		list := make([]interface{}, len(valueList))
		for idx, value := range valueList {
			list[idx] = value
		}
		vars[name] = list
	}
	for name, fileList := range files {
		existing, ok := vars[name]
		if !ok && len(fileList) == 1 {
			vars[name] = fileList[0]
			continue
		}
		list := make([]interface{}, 0, len(fileList)+1)
		switch existing := existing.(type) {
		case nil:
		case []interface{}:
			list = append(list, existing...)
		default:
			list = append(list, existing)
		}
		for _, file := range fileList {
			list = append(list, file)
		}
		vars[name] = list
	}
	return vars
}

// cookieVars maps cookie names to values.  The first cookie with a
// given name wins.
func cookieVars(cookies []*http.Cookie) Vars {
	vars := make(Vars, len(cookies))
	for _, cookie := range cookies {
		if _, ok := vars[cookie.Name]; !ok {
			vars[cookie.Name] = cookie.Value
		}
	}
	return vars
}
