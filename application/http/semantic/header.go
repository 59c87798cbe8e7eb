package semantic

import (
	"slices"
	"strings"

	"httpsnapshot/application/http"
)

// FieldValueSeparator joins the values of a repeated field.
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-5.3-1
const FieldValueSeparator = ", "

// Headers is an ordered multi-map of header fields with case-insensitive names.
// A repeated name is merged into the entry where it first appeared, which
// keeps the casing it was first added with.
// A nil *Headers reads as empty.
type Headers struct{ entries []entry }

type entry struct {
	name   string
	values []string
}

func NewHeaders(fields ...http.Field) *Headers {
	h := &Headers{}
	for _, f := range fields {
		h.Append(f.Name, f.Value)
	}
	return h
}

func (h *Headers) find(name string) int {
	if h == nil {
		return -1
	}
	return slices.IndexFunc(h.entries, func(e entry) bool {
		return strings.EqualFold(e.name, name)
	})
}

func (h *Headers) Append(name, value string) {
	if idx := h.find(name); idx >= 0 {
		h.entries[idx].values = append(h.entries[idx].values, value)
		return
	}
	h.entries = append(h.entries, entry{name: name, values: []string{value}})
}

// Set replaces every value of name while keeping its position.
func (h *Headers) Set(name, value string) {
	if idx := h.find(name); idx >= 0 {
		h.entries[idx].values = []string{value}
		return
	}
	h.entries = append(h.entries, entry{name: name, values: []string{value}})
}

func (h *Headers) Del(name string) {
	if idx := h.find(name); idx >= 0 {
		h.entries = slices.Delete(h.entries, idx, idx+1)
	}
}

func (h *Headers) Has(name string) bool { return h.find(name) >= 0 }

// Get returns all values of name joined with [FieldValueSeparator].
func (h *Headers) Get(name string) (value string, ok bool) {
	idx := h.find(name)
	if idx < 0 {
		return "", false
	}
	return strings.Join(h.entries[idx].values, FieldValueSeparator), true
}

func (h *Headers) Values(name string) (values []string, ok bool) {
	idx := h.find(name)
	if idx < 0 {
		return nil, false
	}
	return slices.Clone(h.entries[idx].values), true
}

func (h *Headers) Len() int {
	if h == nil {
		return 0
	}
	return len(h.entries)
}

// Each calls fn once per distinct name in insertion order with the joined value.
func (h *Headers) Each(fn func(name, value string)) {
	if h == nil {
		return
	}
	for _, e := range h.entries {
		fn(e.name, strings.Join(e.values, FieldValueSeparator))
	}
}

func (h *Headers) Clone() *Headers {
	clone := &Headers{}
	if h == nil {
		return clone
	}
	clone.entries = make([]entry, len(h.entries))
	for idx, e := range h.entries {
		clone.entries[idx] = entry{name: e.name, values: slices.Clone(e.values)}
	}
	return clone
}
