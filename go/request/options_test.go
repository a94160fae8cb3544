package request

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptions_normalize(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		method   string
		formData bool
		bodyLen  int
	}{
		{name: "defaults", opts: Options{Path: "/auth.test"}, method: http.MethodGet, formData: true, bodyLen: 0},
		{name: "explicit post without body", opts: Options{Method: "post"}, method: http.MethodPost, formData: true, bodyLen: 0},
		{name: "body wins over GET", opts: Options{Method: http.MethodGet, Body: map[string]interface{}{"a": "b"}}, method: http.MethodPost, formData: true, bodyLen: 1},
		{name: "empty body forces POST", opts: Options{Method: "get", Body: map[string]interface{}{}}, method: http.MethodPost, formData: true, bodyLen: 0},
		{name: "json", opts: Options{IsFormData: Bool(false)}, method: http.MethodGet, formData: false, bodyLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.opts.normalize()
			assert.Equal(t, tt.method, got.method)
			assert.Equal(t, tt.formData, got.formData)
			assert.Len(t, got.body, tt.bodyLen)
			assert.NotNil(t, got.body)
		})
	}
}

func TestStringify(t *testing.T) {
	fields, err := stringify(map[string]interface{}{
		"text":   "hi",
		"users":  []string{"U1", "U2"},
		"mrkdwn": true,
	})
	assert.NoError(t, err)
	assert.Equal(t, "hi", fields["text"])
	assert.Equal(t, `["U1","U2"]`, fields["users"])
	assert.Equal(t, "true", fields["mrkdwn"])

	_, err = stringify(map[string]interface{}{"bad": make(chan int)})
	assert.Error(t, err)
}
