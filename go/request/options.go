package request

import (
	"net/http"
	"strings"
)

// Options describes one API call
type Options struct {
	// Path is appended to the API url, e.g. "/chat.postMessage"
	Path   string
	Method string
	// IsFormData selects multipart encoding, nil means true
	IsFormData *bool
	// Silent suppresses the alert on failure, the error is still returned
	Silent bool
	// Body forces POST whenever it is non-nil, an empty map included
	Body map[string]interface{}
}

// Bool returns a pointer to v, handy for Options.IsFormData
func Bool(v bool) *bool {
	return &v
}

type call struct {
	path     string
	method   string
	formData bool
	silent   bool
	body     map[string]interface{}
	teamID   string
}

// normalize applies the defaults and copies the body so the caller's map is never mutated
func (o Options) normalize() *call {
	c := &call{
		path:     o.Path,
		method:   strings.ToUpper(o.Method),
		formData: true,
		silent:   o.Silent,
		body:     make(map[string]interface{}, len(o.Body)+1),
	}

	if o.IsFormData != nil {
		c.formData = *o.IsFormData
	}
	if c.method == "" {
		c.method = http.MethodGet
	}
	if o.Body != nil {
		c.method = http.MethodPost
	}
	for key, value := range o.Body {
		c.body[key] = value
	}

	return c
}

func (c *call) supported() bool {
	return c.method == http.MethodGet || c.method == http.MethodPost
}
