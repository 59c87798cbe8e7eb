package source

import (
	"log/slog"

	"httpsnapshot/application/http"
	"httpsnapshot/application/http/status"
)

type Options struct {
	// StreamChunkSize is the size of the buffer streaming bodies are read
	// with. Zero uses [DefaultStreamChunkSize].
	StreamChunkSize uint
}

const DefaultStreamChunkSize = 32 << 10

var DefaultOptions = Options{
	StreamChunkSize: DefaultStreamChunkSize,
}

// Converter turns sources into messages. Conversions share no state, so a
// Converter may be used from several goroutines, but a single streaming
// source must not be converted twice.
// The zero value discards logs and uses [DefaultOptions].
type Converter struct {
	logger *slog.Logger
	opts   Options
}

// NewConverter creates a converter. A nil logger discards records.
func NewConverter(logger *slog.Logger, opts Options) *Converter {
	if logger == nil {
		logger = discardLogger
	}
	if opts.StreamChunkSize == 0 {
		opts.StreamChunkSize = DefaultStreamChunkSize
	}
	return &Converter{logger: logger, opts: opts}
}

var (
	discardLogger    = slog.New(slog.DiscardHandler)
	defaultConverter = NewConverter(nil, DefaultOptions)
)

// FromRequest converts src with a converter using [DefaultOptions].
func FromRequest(src Source) (*http.Message, error) { return defaultConverter.Request(src) }

// FromResponse converts src with a converter using [DefaultOptions].
func FromResponse(src Source) (*http.Message, error) { return defaultConverter.Response(src) }

// Request converts a *BufferedRequest or a *StreamingRequest.
// Any other value fails with an [*UnsupportedSourceTypeError].
func (c *Converter) Request(src Source) (*http.Message, error) {
	var (
		msg *http.Message
		err error
	)

	switch s := src.(type) {
	case *BufferedRequest:
		if s == nil {
			break
		}
		msg, err = c.fromBufferedRequest(s)
	case *StreamingRequest:
		if s == nil {
			break
		}
		msg, err = c.fromStreamingRequest(s)
	}

	return c.finish(SideRequest, src, msg, err)
}

// Response converts a *BufferedResponse or a *StreamingResponse.
// Any other value fails with an [*UnsupportedSourceTypeError].
func (c *Converter) Response(src Source) (*http.Message, error) {
	var (
		msg *http.Message
		err error
	)

	switch s := src.(type) {
	case *BufferedResponse:
		if s == nil {
			break
		}
		msg, err = c.fromBufferedResponse(s)
	case *StreamingResponse:
		if s == nil {
			break
		}
		msg, err = c.fromStreamingResponse(s)
	}

	return c.finish(SideResponse, src, msg, err)
}

func (c *Converter) log() *slog.Logger {
	if c.logger == nil {
		return discardLogger
	}
	return c.logger
}

func (c *Converter) finish(side Side, src Source, msg *http.Message, err error) (*http.Message, error) {
	logger := c.log()
	if err != nil {
		logger.Debug("conversion failed", "side", side, "source", sourceKind(src), "error", err)
		return nil, err
	}
	if msg == nil {
		err := newUnsupportedSourceTypeError(side, src)
		logger.Debug("conversion failed", "side", side, "error", err)
		return nil, err
	}

	logger.Debug("converted message",
		"side", side,
		"source", sourceKind(src),
		"headersSize", msg.HeadersSize(),
		"bodySize", msg.BodySize(),
	)
	return msg, nil
}

func (c *Converter) fromBufferedRequest(r *BufferedRequest) (*http.Message, error) {
	body, err := readBuffered(r.Body)
	if err != nil {
		return nil, err
	}
	return http.NewMessage(r.startLine(), headersFromMulti(r.Header), body), nil
}

func (c *Converter) fromStreamingRequest(r *StreamingRequest) (*http.Message, error) {
	body := http.NoBody
	if r.Body != nil {
		var err error
		if body, err = r.Body.drain(); err != nil {
			return nil, err
		}
	}
	return http.NewMessage(r.startLine(), headersFromPlain(r.Header), body), nil
}

func (c *Converter) fromBufferedResponse(r *BufferedResponse) (*http.Message, error) {
	body := http.NoBody
	if status.IsNullBody(r.Status) {
		closeBody(r.Body)
	} else {
		var err error
		if body, err = readBuffered(r.Body); err != nil {
			return nil, err
		}
	}
	return http.NewMessage(r.startLine(), headersFromMulti(r.Header), body), nil
}

func (c *Converter) fromStreamingResponse(r *StreamingResponse) (*http.Message, error) {
	body := http.NoBody
	if r.Body != nil {
		var err error
		if body, err = r.Body.drain(c.opts.StreamChunkSize); err != nil {
			return nil, err
		}
	}
	return http.NewMessage(r.startLine(), headersFromPlain(r.Header), body), nil
}

func sourceKind(src Source) string {
	switch src.(type) {
	case *BufferedRequest, *BufferedResponse:
		return "buffered"
	case *StreamingRequest, *StreamingResponse:
		return "streaming"
	}
	return "unknown"
}
