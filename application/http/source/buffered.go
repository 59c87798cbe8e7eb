package source

import (
	"bytes"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"

	"httpsnapshot/application/http/semantic"
	"httpsnapshot/application/http/status"

	"github.com/pkg/errors"
)

// Content types implied by body values when the caller set none.
// Reference: https://fetch.spec.whatwg.org/#concept-bodyinit-extract
const (
	contentTypeText = "text/plain;charset=UTF-8"
	contentTypeForm = "application/x-www-form-urlencoded;charset=UTF-8"
)

// NewBufferedRequest builds a request the way fetch-style constructors do.
// body may be nil, string, []byte, *bytes.Buffer, url.Values or io.Reader.
// header is copied and gains a Content-Type implied by body if it has none.
func NewBufferedRequest(method, rawURL string, header *semantic.Headers, body any) (*BufferedRequest, error) {
	m, err := semantic.NormalizeMethod(method)
	if err != nil {
		return nil, errors.Wrap(err, "invalid request")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid request url")
	}
	if !u.IsAbs() {
		return nil, errors.Errorf("request url is not absolute: %q", rawURL)
	}
	if u.Host != "" && u.Path == "" {
		u.Path = "/"
	}

	r, contentType, err := extractBody(body)
	if err != nil {
		return nil, err
	}
	if r != nil && !m.AllowsBody() {
		return nil, errors.Errorf("request with %s method cannot have body", m)
	}

	return &BufferedRequest{
		Method: string(m),
		URL:    u.String(),
		Header: withContentType(header, contentType),
		Body:   r,
	}, nil
}

// NewBufferedResponse builds a response the way fetch-style constructors do.
// body accepts the same values as in [NewBufferedRequest].
func NewBufferedResponse(code int, statusText string, header *semantic.Headers, body any) (*BufferedResponse, error) {
	if code < 200 || code > 599 {
		return nil, errors.Errorf("status %d out of range [200, 599]", code)
	}

	r, contentType, err := extractBody(body)
	if err != nil {
		return nil, err
	}
	if r != nil && status.IsNullBody(code) {
		return nil, errors.Errorf("response with null body status %d cannot have body", code)
	}

	return &BufferedResponse{
		Status:     code,
		StatusText: statusText,
		Header:     withContentType(header, contentType),
		Body:       r,
	}, nil
}

func withContentType(header *semantic.Headers, contentType string) *semantic.Headers {
	header = header.Clone()
	if contentType != "" && !header.Has("Content-Type") {
		header.Append("Content-Type", contentType)
	}
	return header
}

func extractBody(body any) (r io.Reader, contentType string, err error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case string:
		return strings.NewReader(b), contentTypeText, nil
	case []byte:
		return bytes.NewReader(b), "", nil
	case *bytes.Buffer:
		return bytes.NewReader(b.Bytes()), "", nil
	case url.Values:
		return strings.NewReader(b.Encode()), contentTypeForm, nil
	case io.Reader:
		if b == nethttp.NoBody {
			return nil, "", nil
		}
		return b, "", nil
	default:
		return nil, "", errors.Errorf("unsupported body type: %T", body)
	}
}
