package source

import (
	"strings"

	"httpsnapshot/application/http"
	"httpsnapshot/application/http/semantic"
)

// PlainHeader is a header mapping as exposed by streaming sources, in the
// order the names were received.
type PlainHeader []PlainField

// PlainField holds the values of one name. A single value stands for a
// scalar entry. nil Values marks an entry without a value, which is skipped.
type PlainField struct {
	Name   string
	Values []string
}

func (h PlainHeader) Get(name string) (value string, ok bool) {
	for _, f := range h {
		if strings.EqualFold(f.Name, name) && f.Values != nil {
			return strings.Join(f.Values, semantic.FieldValueSeparator), true
		}
	}
	return "", false
}

// headersFromMulti keeps the enumeration order of h. Repeated names were
// already merged by h itself.
func headersFromMulti(h *semantic.Headers) http.Headers {
	var out http.Headers
	h.Each(func(name, value string) {
		out.Set(name, value)
	})
	return out
}

func headersFromPlain(h PlainHeader) http.Headers {
	var out http.Headers
	for _, f := range h {
		if f.Values == nil {
			continue
		}
		out.Set(f.Name, strings.Join(f.Values, semantic.FieldValueSeparator))
	}
	return out
}
