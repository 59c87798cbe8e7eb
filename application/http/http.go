package http

import (
	"slices"
	"strings"
)

// DefaultVersion is the protocol tag rendered on every start line unless
// the source negotiated its own version.
const DefaultVersion = "HTTP/1.0"

type Field struct{ Name, Value string }

func (f Field) Text() string { return f.Name + ": " + f.Value }

// Headers is an ordered mapping from field name to a single value.
// Names keep the casing they were set with and are unique by exact match.
// The zero value is an empty mapping ready to use.
type Headers struct {
	fields []Field
	index  map[string]int
}

func NewHeaders(fields ...Field) Headers {
	var h Headers
	for _, f := range fields {
		h.Set(f.Name, f.Value)
	}
	return h
}

// Set overwrites the value of name in place, or appends it as the last field.
func (h *Headers) Set(name, value string) {
	if h.index == nil {
		h.index = make(map[string]int)
	}
	if idx, ok := h.index[name]; ok {
		h.fields[idx].Value = value
		return
	}

	h.index[name] = len(h.fields)
	h.fields = append(h.fields, Field{Name: name, Value: value})
}

func (h Headers) Len() int { return len(h.fields) }

// Fields returns the fields in insertion order.
func (h Headers) Fields() []Field { return slices.Clone(h.fields) }

// Lookup returns the value of the first field whose name equals key
// case-insensitively.
func (h Headers) Lookup(key string) (value string, ok bool) {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, key) {
			return f.Value, true
		}
	}
	return "", false
}

func (h Headers) Clone() Headers {
	clone := Headers{
		fields: slices.Clone(h.fields),
		index:  make(map[string]int, len(h.index)),
	}
	for k, v := range h.index {
		clone.index[k] = v
	}
	return clone
}
