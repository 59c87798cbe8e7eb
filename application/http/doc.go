// Package http renders HTTP messages into a canonical HTTP/1.0 text form
// with byte accounting of each part, as used by traffic captures.
//
// A [Message] is an immutable snapshot of a start line, an ordered header
// mapping and an optional body. Building one from request or response
// objects is the job of the source package.
//
// Reference:
//
// - https://datatracker.ietf.org/doc/html/rfc9110
//
// - https://datatracker.ietf.org/doc/html/rfc9112
//
// - http://www.softwareishard.com/blog/har-12-spec/
package http
