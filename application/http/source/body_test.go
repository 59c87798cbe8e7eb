package source

import (
	"bytes"
	"io"
	nethttp "net/http"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"httpsnapshot/application/http"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
)

type BufferedBodyTestSuite struct {
	suite.Suite
}

func TestBufferedBodyTestSuite(t *testing.T) {
	suite.Run(t, new(BufferedBodyTestSuite))
}

func (s *BufferedBodyTestSuite) TestReadBuffered() {
	testcases := []struct {
		desc     string
		body     io.Reader
		expected http.Body
	}{
		{
			desc:     "nil body",
			body:     nil,
			expected: http.NoBody,
		},
		{
			desc:     "no body sentinel",
			body:     nethttp.NoBody,
			expected: http.NoBody,
		},
		{
			desc:     "empty payload",
			body:     strings.NewReader(""),
			expected: http.TextBody(""),
		},
		{
			desc:     "text",
			body:     strings.NewReader("Hello world"),
			expected: http.TextBody("Hello world"),
		},
		{
			desc:     "byte order mark is stripped",
			body:     bytes.NewReader([]byte("\xef\xbb\xbfhi")),
			expected: http.TextBody("hi"),
		},
		{
			desc:     "invalid utf-8 is replaced",
			body:     bytes.NewReader([]byte("a\xffb")),
			expected: http.TextBody("a\ufffdb"),
		},
	}

	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			body, err := readBuffered(tc.body)
			s.NoError(err)
			s.Equal(tc.expected, body)
		})
	}
}

func (s *BufferedBodyTestSuite) TestReadBufferedError() {
	errRead := errors.New("read failed")

	_, err := readBuffered(iotest.ErrReader(errRead))
	s.ErrorIs(err, errRead)
}

type StreamTestSuite struct {
	suite.Suite
}

func TestStreamTestSuite(t *testing.T) {
	suite.Run(t, new(StreamTestSuite))
}

func (s *StreamTestSuite) TestDrain() {
	testcases := []struct {
		desc     string
		reader   io.Reader
		expected http.Body
	}{
		{
			desc:     "zero chunks is absent",
			reader:   strings.NewReader(""),
			expected: http.NoBody,
		},
		{
			desc:     "single chunk",
			reader:   strings.NewReader("hello"),
			expected: http.TextBody("hello"),
		},
		{
			desc:     "chunks keep arrival order",
			reader:   iotest.OneByteReader(strings.NewReader("in order")),
			expected: http.TextBody("in order"),
		},
		{
			desc:     "data returned with EOF",
			reader:   iotest.DataErrReader(strings.NewReader("last")),
			expected: http.TextBody("last"),
		},
		{
			desc:     "byte order mark is kept",
			reader:   bytes.NewReader([]byte("\xef\xbb\xbfhi")),
			expected: http.TextBody("\ufeffhi"),
		},
		{
			desc: "multi-byte rune split across chunks",
			reader: io.MultiReader(
				bytes.NewReader([]byte{0xe2, 0x82}),
				bytes.NewReader([]byte{0xac}),
			),
			expected: http.TextBody("€"),
		},
	}

	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			body, err := NewStream(tc.reader).drain(4)
			s.NoError(err)
			s.Equal(tc.expected, body)
		})
	}
}

func (s *StreamTestSuite) TestDrainPropagatesError() {
	errStream := errors.New("connection reset")
	stream := NewStream(io.MultiReader(
		strings.NewReader("partial"),
		iotest.ErrReader(errStream),
	))

	body, err := stream.drain(DefaultStreamChunkSize)
	s.Equal(errStream, err)
	s.Equal(http.NoBody, body)
}

func (s *StreamTestSuite) TestDrainTwice() {
	stream := NewStream(strings.NewReader("once"))

	_, err := stream.drain(DefaultStreamChunkSize)
	s.NoError(err)
	s.False(stream.Readable())

	_, err = stream.drain(DefaultStreamChunkSize)
	s.ErrorIs(err, ErrStreamAlreadyConsumed)
}

func (s *StreamTestSuite) TestDrainAfterRead() {
	stream := NewStream(strings.NewReader("abc"))
	s.True(stream.Readable())

	b := make([]byte, 1)
	_, err := stream.Read(b)
	s.NoError(err)
	s.False(stream.Readable())

	_, err = stream.drain(DefaultStreamChunkSize)
	s.ErrorIs(err, ErrStreamAlreadyConsumed)
}

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func (s *StreamTestSuite) TestDrainClosesReader() {
	rc := &closeRecorder{Reader: strings.NewReader("abc")}

	_, err := NewStream(rc).drain(DefaultStreamChunkSize)
	s.NoError(err)
	s.True(rc.closed)
}

type CaptureTestSuite struct {
	suite.Suite
}

func TestCaptureTestSuite(t *testing.T) {
	suite.Run(t, new(CaptureTestSuite))
}

func (s *CaptureTestSuite) TearDownTest() {
	goleak.VerifyNone(s.T())
}

func (s *CaptureTestSuite) TestDrainAccumulatesWrites() {
	var dst bytes.Buffer
	c := NewCapture(&dst)

	written := make(chan struct{})
	go func() {
		defer close(written)
		c.Write([]byte("Hello "))
		c.Write([]byte("world"))
		c.Close()
	}()

	body, err := c.drain()
	<-written

	s.NoError(err)
	s.Equal(http.TextBody("Hello world"), body)
	s.Equal("Hello world", dst.String())
}

func (s *CaptureTestSuite) TestDrainWithoutWrites() {
	c := NewCapture(nil)
	s.NoError(c.Close())

	body, err := c.drain()
	s.NoError(err)
	s.Equal(http.NoBody, body)
}

func (s *CaptureTestSuite) TestDrainPropagatesError() {
	errAbort := errors.New("request aborted")
	c := NewCapture(nil)

	go func() {
		c.Write([]byte("partial"))
		c.CloseWithError(errAbort)
	}()

	body, err := c.drain()
	s.Equal(errAbort, err)
	s.Equal(http.NoBody, body)
}

func (s *CaptureTestSuite) TestDrainTwice() {
	c := NewCapture(nil)
	s.NoError(c.Close())

	_, err := c.drain()
	s.NoError(err)
	s.False(c.Readable())

	_, err = c.drain()
	s.ErrorIs(err, ErrStreamAlreadyConsumed)
}

func (s *CaptureTestSuite) TestWriteAfterClose() {
	c := NewCapture(nil)
	s.NoError(c.Close())
	s.NoError(c.Close())

	_, err := c.Write([]byte("late"))
	s.ErrorIs(err, io.ErrClosedPipe)
}

type writeCloseRecorder struct {
	bytes.Buffer
	closed bool
}

func (w *writeCloseRecorder) Close() error {
	w.closed = true
	return nil
}

func (s *CaptureTestSuite) TestCloseClosesDestination() {
	dst := &writeCloseRecorder{}
	c := NewCapture(dst)

	_, err := c.Write([]byte("x"))
	s.NoError(err)
	s.NoError(c.Close())
	s.True(dst.closed)
	s.Equal("x", dst.String())
}

func (s *StreamTestSuite) TestDrainWithZeroChunkSize() {
	body, err := NewStream(iotest.OneByteReader(strings.NewReader("abc"))).drain(0)
	s.NoError(err)
	s.Equal(http.TextBody("abc"), body)
}

func (s *BufferedBodyTestSuite) TestReadBufferedClosesBody() {
	rc := &closeRecorder{Reader: strings.NewReader("abc")}

	body, err := readBuffered(rc)
	s.NoError(err)
	s.Equal(http.TextBody("abc"), body)
	s.True(rc.closed)
}

func (s *CaptureTestSuite) TestCloseWithErrorReleasesBlockedWrite() {
	errAbort := errors.New("request aborted")
	pr, pw := io.Pipe()
	defer pr.Close()

	c := NewCapture(pw)

	writeErr := make(chan error, 1)
	go func() {
		_, err := c.Write([]byte("x"))
		writeErr <- err
	}()

	// Nobody reads pr, so the write stays blocked in the pipe once recorded.
	s.Eventually(func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return len(c.chunks) == 1
	}, time.Second, time.Millisecond)

	s.NoError(c.CloseWithError(errAbort))
	s.ErrorIs(<-writeErr, io.ErrClosedPipe)

	body, err := c.drain()
	s.Equal(errAbort, err)
	s.Equal(http.NoBody, body)
}
