package binding

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator"
	"github.com/gorilla/schema"
	"github.com/pkg/errors"
)

var (
	ErrNotStruct = errors.New("params must be a struct or a pointer to struct")

	encodeSchema    = (*schema.Encoder).Encode
	validatorStruct = (*validator.Validate).Struct
)

// Params validates val and flattens it into an API body using its `schema` tags.
// Multi-valued fields are joined with a comma, the list format the Slack web API expects.
func Params(val interface{}) (map[string]interface{}, error) {
	reflectValue := reflect.ValueOf(val)
	if reflectValue.Kind() == reflect.Ptr {
		reflectValue = reflectValue.Elem()
	}
	if reflectValue.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}

	if err := Validate(val); err != nil {
		return nil, errors.Wrap(err, "slackmate.go.binding.Params.Validate")
	}

	values := make(map[string][]string)
	if err := encodeSchema(schema.NewEncoder(), reflectValue.Interface(), values); err != nil {
		return nil, errors.Wrap(err, "slackmate.go.binding.Params.Encode")
	}

	body := make(map[string]interface{}, len(values))
	for key, vals := range values {
		body[key] = strings.Join(vals, ",")
	}
	return body, nil
}
