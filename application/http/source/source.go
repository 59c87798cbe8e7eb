package source

import (
	"io"

	"httpsnapshot/application/http/semantic"
)

// Source is one of *BufferedRequest, *StreamingRequest, *BufferedResponse
// or *StreamingResponse.
type Source interface{ source() }

type Side string

const (
	SideRequest  Side = "request"
	SideResponse Side = "response"
)

// BufferedRequest is a fully-buffered request.
type BufferedRequest struct {
	Method string
	URL    string
	Header *semantic.Headers

	// Body is read to the end on conversion.
	// nil and [net/http.NoBody] mean the request carries no body.
	Body io.Reader
}

// BufferedResponse is a fully-buffered response.
type BufferedResponse struct {
	Status     int
	StatusText string
	Header     *semantic.Headers

	// Body follows the same contract as [BufferedRequest.Body].
	// It is never read for null body statuses.
	Body io.Reader
}

// StreamingRequest is an outgoing request whose body is captured while it
// is written. Its absolute URL is not known.
type StreamingRequest struct {
	Method string // "" means GET
	Header PlainHeader
	Body   *Capture // nil means no body
}

// StreamingResponse is an incoming response whose body arrives as a stream.
type StreamingResponse struct {
	// Proto is the negotiated protocol version, e.g. "HTTP/1.1".
	// It is rendered verbatim; "" falls back to [http.DefaultVersion].
	Proto      string
	Status     int // 0 means 200
	StatusText string
	Header     PlainHeader
	Body       *Stream // nil means no body
}

func (*BufferedRequest) source()   {}
func (*StreamingRequest) source()  {}
func (*BufferedResponse) source()  {}
func (*StreamingResponse) source() {}
