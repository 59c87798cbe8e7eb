package http

import (
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

// byteLength counts the bytes text occupies when encoded in the charset
// named by hint. Empty or unknown hints (e.g. "gzip") count UTF-8 bytes.
func byteLength(text, hint string) int {
	if hint == "" {
		return len(text)
	}

	enc, name := charset.Lookup(hint)
	if enc == nil || name == "utf-8" {
		return len(text)
	}

	encoded, err := encoding.ReplaceUnsupported(enc.NewEncoder()).String(text)
	if err != nil {
		return len(text)
	}

	return len(encoded)
}
