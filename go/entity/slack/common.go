package slack

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Payload is a decoded API response body, returned verbatim to callers
type Payload map[string]interface{}

// Ok reports the top level "ok" flag
func (p Payload) Ok() bool {
	ok, _ := p["ok"].(bool)
	return ok
}

// ErrorCode returns the top level "error" field, empty when missing
func (p Payload) ErrorCode() string {
	code, _ := p["error"].(string)
	return code
}

// Decode re-encodes the payload into dest, which should be a pointer to a struct
// carrying json tags
func (p Payload) Decode(dest interface{}) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "slackmate.go.entity.slack.Payload.Decode.Marshal")
	}
	if err = json.Unmarshal(raw, dest); err != nil {
		return errors.Wrap(err, "slackmate.go.entity.slack.Payload.Decode.Unmarshal")
	}
	return nil
}
