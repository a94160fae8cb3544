package binding

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

var validatorURL *validator.Validate

func init() {
	validatorURL = validator.New()
	validatorURL.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("schema"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate runs the `validate` tags of a struct, reporting field names by their schema tag
func Validate(val interface{}) error {
	return validatorStruct(validatorURL, val)
}
