package request

import "github.com/pkg/errors"

var ErrUnsupportedMethod = errors.New("only GET and POST are supported")
