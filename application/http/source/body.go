package source

import (
	"bytes"
	"io"
	nethttp "net/http"
	"sync"
	"sync/atomic"

	"httpsnapshot/application/http"
	iolib "httpsnapshot/lib/io"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
)

const (
	bodyFresh uint32 = iota
	bodyTouched
)

// decodeText decodes b as UTF-8, replacing invalid sequences with U+FFFD.
// A leading byte order mark is removed when stripBOM is set.
func decodeText(b []byte, stripBOM bool) string {
	enc := unicode.UTF8
	if stripBOM {
		enc = unicode.UTF8BOM
	}

	text, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(bytes.ToValidUTF8(b, []byte("�")))
	}
	return string(text)
}

// readBuffered reads a fully-buffered body in one step and closes it.
func readBuffered(body io.Reader) (http.Body, error) {
	if body == nil || body == nethttp.NoBody {
		return http.NoBody, nil
	}
	defer closeBody(body)

	b, err := io.ReadAll(body)
	if err != nil {
		return http.NoBody, errors.Wrap(err, "reading body")
	}

	return http.TextBody(decodeText(b, true)), nil
}

// closeBody closes body if it is an [io.Closer]. The body has been read or
// skipped by then, so a close error carries nothing the message needs.
func closeBody(body io.Reader) {
	if c, ok := body.(io.Closer); ok {
		_ = c.Close()
	}
}

// Stream is an incoming body. It can be drained by extraction only while
// nothing else has read from it.
type Stream struct {
	r     io.Reader
	state atomic.Uint32
}

func NewStream(r io.Reader) *Stream { return &Stream{r: r} }

// Readable reports whether the stream is still unread.
func (s *Stream) Readable() bool { return s.state.Load() == bodyFresh }

// Read reads from the underlying reader. The stream stops being readable
// for extraction afterwards.
func (s *Stream) Read(p []byte) (int, error) {
	s.state.Store(bodyTouched)
	return s.r.Read(p)
}

func (s *Stream) Close() error {
	s.state.Store(bodyTouched)
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// drain reads chunks of up to chunkSize bytes, [DefaultStreamChunkSize]
// when zero, until the end of the stream. A stream that ends
// without a single chunk yields an absent body. Read errors are returned
// as they are, and the chunks gathered so far are dropped.
func (s *Stream) drain(chunkSize uint) (http.Body, error) {
	if !s.state.CompareAndSwap(bodyFresh, bodyTouched) {
		return http.NoBody, ErrStreamAlreadyConsumed
	}
	if c, ok := s.r.(io.Closer); ok {
		defer c.Close()
	}
	if chunkSize == 0 {
		chunkSize = DefaultStreamChunkSize
	}

	var (
		collected bytes.Buffer
		chunks    int
		buf       = make([]byte, chunkSize)
	)
	for {
		n, err := s.r.Read(buf)
		if n > 0 {
			collected.Write(buf[:n])
			chunks++
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return http.NoBody, err
		}
	}

	if chunks == 0 {
		return http.NoBody, nil
	}
	return http.TextBody(decodeText(collected.Bytes(), false)), nil
}

// Capture records the payload of an outgoing body while passing it on to
// its destination. The payload is complete once the capture is closed.
type Capture struct {
	dst io.WriteCloser

	mu     sync.Mutex
	chunks [][]byte
	closed bool
	err    error
	done   chan struct{}

	state atomic.Uint32
}

// NewCapture forwards writes to dst, which is closed along with the capture
// if it is an [io.WriteCloser]. A nil dst discards the payload after
// recording it.
func NewCapture(dst io.Writer) *Capture {
	if dst == nil {
		dst = io.Discard
	}
	wc, ok := dst.(io.WriteCloser)
	if !ok {
		wc = iolib.NopWriteCloser(dst)
	}
	return &Capture{dst: wc, done: make(chan struct{})}
}

// Write records p and forwards it to the destination. The lock is not held
// while forwarding, so a destination that blocks never delays a close.
func (c *Capture) Write(p []byte) (int, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0, io.ErrClosedPipe
	}
	if len(p) > 0 {
		c.chunks = append(c.chunks, bytes.Clone(p))
	}
	c.mu.Unlock()

	return iolib.WriteFull(c.dst, p)
}

func (c *Capture) Close() error { return c.CloseWithError(nil) }

// CloseWithError ends the payload. A non-nil err fails the extraction
// waiting on this capture with err itself. The destination is closed last,
// which releases a Write blocked in it if the destination supports that,
// as [io.PipeWriter] does.
func (c *Capture) CloseWithError(err error) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.err = err
	close(c.done)
	c.mu.Unlock()

	return c.dst.Close()
}

// Readable reports whether the capture has not been extracted yet.
func (c *Capture) Readable() bool { return c.state.Load() == bodyFresh }

// drain waits for the capture to be closed. Like [Stream.drain], no
// written chunk means no body.
func (c *Capture) drain() (http.Body, error) {
	if !c.state.CompareAndSwap(bodyFresh, bodyTouched) {
		return http.NoBody, ErrStreamAlreadyConsumed
	}

	<-c.done

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil {
		return http.NoBody, c.err
	}
	if len(c.chunks) == 0 {
		return http.NoBody, nil
	}
	return http.TextBody(decodeText(bytes.Join(c.chunks, nil), false)), nil
}
