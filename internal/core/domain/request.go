package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderRenderPass    = "X-Render-Pass"
)

var allowedMethods = map[string]struct{}{
	http.MethodGet:    {},
	http.MethodPost:   {},
	http.MethodPut:    {},
	http.MethodPatch:  {},
	http.MethodDelete: {},
}

// RequestDescriptor describes one call to the shelter API. It is immutable
// once built: accessors hand out copies.
type RequestDescriptor struct {
	path        string
	method      string
	header      http.Header
	body        []byte
	requireAuth bool
}

func (d RequestDescriptor) Path() string      { return d.path }
func (d RequestDescriptor) Method() string    { return d.method }
func (d RequestDescriptor) RequireAuth() bool { return d.requireAuth }

// Header returns a copy of the caller-supplied headers.
func (d RequestDescriptor) Header() http.Header {
	if d.header == nil {
		return http.Header{}
	}
	return d.header.Clone()
}

// Body returns a copy of the payload, or nil when the request has none.
func (d RequestDescriptor) Body() []byte {
	if d.body == nil {
		return nil
	}
	return bytes.Clone(d.body)
}

func (d RequestDescriptor) String() string {
	return d.method + " " + d.path
}

// RequestBuilder assembles a RequestDescriptor.
//
// Header precedence, lowest first: headers set with Header, the content type
// set by JSON or Form, and finally the Authorization header a fetch client
// injects from the session, which always wins.
type RequestBuilder struct {
	path        string
	method      string
	header      http.Header
	body        []byte
	requireAuth bool
	err         error
}

// NewRequest starts a GET request for path, which must be relative to the API
// base address.
func NewRequest(path string) *RequestBuilder {
	return &RequestBuilder{
		path:   path,
		method: http.MethodGet,
		header: http.Header{},
	}
}

// Method sets the HTTP method in any letter case.
func (b *RequestBuilder) Method(method string) *RequestBuilder {
	b.method = method
	return b
}

func (b *RequestBuilder) Header(key, value string) *RequestBuilder {
	b.header.Set(key, value)
	return b
}

func (b *RequestBuilder) Body(body []byte) *RequestBuilder {
	b.body = body
	return b
}

// JSON encodes v as the request body.
func (b *RequestBuilder) JSON(v any) *RequestBuilder {
	data, err := json.Marshal(v)
	if err != nil {
		b.err = fmt.Errorf("error marshalling json: %w", err)
		return b
	}
	b.body = data
	b.header.Set(HeaderContentType, "application/json")
	return b
}

// Form encodes values as an urlencoded body.
func (b *RequestBuilder) Form(values url.Values) *RequestBuilder {
	b.body = []byte(values.Encode())
	b.header.Set(HeaderContentType, "application/x-www-form-urlencoded")
	return b
}

// Authenticated marks the request as one the backend expects a credential
// for. A missing credential is reported but does not stop the request.
func (b *RequestBuilder) Authenticated() *RequestBuilder {
	b.requireAuth = true
	return b
}

func (b *RequestBuilder) Build() (RequestDescriptor, error) {
	if b.err != nil {
		return RequestDescriptor{}, &InvalidRequestError{Reason: b.err.Error()}
	}
	if !strings.HasPrefix(b.path, "/") {
		return RequestDescriptor{}, &InvalidRequestError{Reason: fmt.Sprintf("path %q must start with /", b.path)}
	}

	method := strings.ToUpper(strings.TrimSpace(b.method))
	if _, ok := allowedMethods[method]; !ok {
		return RequestDescriptor{}, &InvalidRequestError{Reason: fmt.Sprintf("unsupported method %q", b.method)}
	}

	var body []byte
	if b.body != nil {
		body = bytes.Clone(b.body)
	}

	return RequestDescriptor{
		path:        b.path,
		method:      method,
		header:      b.header.Clone(),
		body:        body,
		requireAuth: b.requireAuth,
	}, nil
}

// MustBuild is Build for descriptors assembled from constants.
func (b *RequestBuilder) MustBuild() RequestDescriptor {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}
