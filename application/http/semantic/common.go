package semantic

import (
	"strings"

	"httpsnapshot/application/util/rule"

	"github.com/pkg/errors"
)

type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodPatch   Method = "PATCH"
)

// Methods upper-cased on normalization. PATCH is not one of them.
// Reference: https://fetch.spec.whatwg.org/#concept-method-normalize
var normalizedMethods = []Method{
	MethodDelete, MethodGet, MethodHead, MethodOptions, MethodPost, MethodPut,
}

// NormalizeMethod validates raw as a method token and upper-cases it when it
// names one of the normalized methods. Other methods keep their casing.
func NormalizeMethod(raw string) (Method, error) {
	if !rule.IsValidToken(raw) {
		return "", errors.Errorf("invalid method: %q", raw)
	}

	for _, m := range normalizedMethods {
		if strings.EqualFold(raw, string(m)) {
			return m, nil
		}
	}

	return Method(raw), nil
}

// AllowsBody reports whether a request with this method may carry a body.
func (m Method) AllowsBody() bool {
	return m != MethodGet && m != MethodHead
}
