package requests

import (
	"github.com/mitchellh/mapstructure"
)

// TagName is the struct field tag read by Decode.
const TagName = "request"

// Decode copies the variables in scope onto the struct pointed to by
// target.  Field names are taken from the "request" tag, falling back
// to a case-insensitive match on the field name:
//
//     type Search struct {
//         Query string        `request:"q"`
//         Page  int           `request:"page"`
//         Tags  []string      `request:"tags"`
//         Wait  time.Duration `request:"wait"`
//     }
//
//     var search Search
//     err := store.Decode(requests.Get, &search)
//
// Input is weakly typed, since form values are strings: "2" decodes
// into an int, "true" into a bool, "a,b" into a []string and "5s" into
// a time.Duration.  Variables without a matching field are ignored.
func (store *Store) Decode(scope Scope, target interface{}) error {
	if err := checkScope(scope); err != nil {
		return err
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		TagName:          TagName,
		Result:           target,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(map[string]interface{}(store.scopes[scope]))
}
