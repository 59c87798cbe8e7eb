package source

import (
	"io"
	nethttp "net/http"
	"slices"
	"strconv"
	"strings"
)

// ResponseFromHTTP wraps a received net/http response as a streaming
// source. Converting it drains and closes resp.Body.
func ResponseFromHTTP(resp *nethttp.Response) *StreamingResponse {
	src := &StreamingResponse{
		Proto:      resp.Proto,
		Status:     resp.StatusCode,
		StatusText: reasonPhrase(resp.Status, resp.StatusCode),
		Header:     plainHeader(resp.Header),
	}
	if resp.Body != nil && resp.Body != nethttp.NoBody {
		src.Body = NewStream(resp.Body)
	}
	return src
}

// RequestFromHTTP describes a net/http request about to be sent as a
// streaming source. A non-nil req.Body is replaced by a reader that records
// what the transport consumes; conversion of the returned source completes
// once that body is read to the end or closed.
func RequestFromHTTP(req *nethttp.Request) *StreamingRequest {
	src := &StreamingRequest{
		Method: req.Method,
		Header: plainHeader(req.Header),
	}
	if req.Body != nil && req.Body != nethttp.NoBody {
		src.Body = NewCapture(nil)
		req.Body = &capturedBody{r: req.Body, c: src.Body}
	}
	return src
}

// "200 OK" -> "OK"
func reasonPhrase(s string, code int) string {
	text, found := strings.CutPrefix(s, strconv.Itoa(code))
	if !found {
		return ""
	}
	return strings.TrimSpace(text)
}

// plainHeader orders names lexically since [nethttp.Header] is unordered.
func plainHeader(h nethttp.Header) PlainHeader {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make(PlainHeader, 0, len(names))
	for _, name := range names {
		out = append(out, PlainField{Name: name, Values: slices.Clone(h[name])})
	}
	return out
}

type capturedBody struct {
	r io.ReadCloser
	c *Capture
}

// The capture forwards to io.Discard, so its Write only fails once the
// capture is closed, when nothing more belongs to the payload. Closing it
// cannot fail for the same reason.
func (b *capturedBody) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if n > 0 {
		_, _ = b.c.Write(p[:n])
	}
	switch {
	case err == io.EOF:
		_ = b.c.Close()
	case err != nil:
		_ = b.c.CloseWithError(err)
	}
	return n, err
}

func (b *capturedBody) Close() error {
	err := b.r.Close()
	_ = b.c.Close()
	return err
}
