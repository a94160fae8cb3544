package error

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is the discriminant of a RequestError
type Kind int

const (
	// UnknownError covers everything that is not recognized below
	UnknownError Kind = iota
	// NetworkError means the device had no connectivity
	NetworkError
	// SlackError means the API answered with ok=false and an error code
	SlackError
	// ServerError means the API answered with a non-2xx status
	ServerError
)

func (k Kind) String() string {
	switch k {
	case NetworkError:
		return "network_error"
	case SlackError:
		return "slack_error"
	case ServerError:
		return "server_error"
	default:
		return "unknown_error"
	}
}

// ErrNetworkUnavailable is wrapped by every NetworkError
var ErrNetworkUnavailable = errors.New("network not available")

type RequestError struct {
	kind Kind
	code int
	data map[string]interface{}
	err  error
}

func New(kind Kind, err error) *RequestError {
	return &RequestError{kind: kind, data: make(map[string]interface{}), err: err}
}

func Network() *RequestError {
	return New(NetworkError, ErrNetworkUnavailable)
}

// Slack builds a SlackError whose message is the remote error code
func Slack(code string) *RequestError {
	return New(SlackError, errors.New(code))
}

func Server(status int) *RequestError {
	return New(ServerError, fmt.Errorf("unexpected response status %d", status)).SetCode(status)
}

func Unknown(err error) *RequestError {
	return New(UnknownError, err)
}

func (re *RequestError) AppendData(key string, data interface{}) *RequestError {
	re.data[key] = data
	return re
}

func (re *RequestError) GetData() map[string]interface{} {
	return re.data
}

func (re *RequestError) Error() string {
	if re.err == nil {
		return re.kind.String()
	}
	return re.err.Error()
}

func (re *RequestError) Unwrap() error {
	return re.err
}

func (re *RequestError) SetCode(code int) *RequestError {
	re.code = code
	return re
}

// GetCode returns the HTTP status for a ServerError, zero otherwise
func (re *RequestError) GetCode() int {
	return re.code
}

func (re *RequestError) Kind() Kind {
	return re.kind
}

// KindOf reports the kind of err, UnknownError when err carries no RequestError
func KindOf(err error) Kind {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.kind
	}
	return UnknownError
}

// As extracts the RequestError carried by err
func As(err error) (*RequestError, bool) {
	var reqErr *RequestError
	ok := errors.As(err, &reqErr)
	return reqErr, ok
}
