package archive

import (
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"httpsnapshot/application/http"
	"httpsnapshot/application/http/source"
	sliceutil "httpsnapshot/lib/slice"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

type Options struct {
	Creator Creator
	Comment string
}

var DefaultOptions = Options{
	Creator: Creator{Name: "httpsnapshot", Version: "0.1.0"},
}

// Recorder collects exchanges into a [Log]. A nil clock in [NewRecorder]
// means the wall clock.
type Recorder struct {
	conv   *source.Converter
	logger *slog.Logger
	clock  clock.Clock
	opts   Options

	mu      sync.Mutex
	entries []Entry
}

func NewRecorder(
	conv *source.Converter,
	logger *slog.Logger,
	clk clock.Clock,
	opts Options,
) *Recorder {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if conv == nil {
		conv = source.NewConverter(logger, source.DefaultOptions)
	}
	return &Recorder{
		conv:   conv,
		logger: logger,
		clock:  clk,
		opts:   opts,
	}
}

// Exchange is a request whose response has not been recorded yet.
type Exchange struct {
	rec     *Recorder
	req     source.Source
	started time.Time
}

// Start marks the moment req is sent. The request is converted in
// [Exchange.Finish], once a streaming body has been fully written.
func (r *Recorder) Start(req source.Source) *Exchange {
	return &Exchange{rec: r, req: req, started: r.clock.Now()}
}

// Finish converts both sides and appends the entry to the log.
// Nothing is recorded when either conversion fails.
func (e *Exchange) Finish(resp source.Source) (*Entry, error) {
	r := e.rec

	reqMsg, err := r.conv.Request(e.req)
	if err != nil {
		return nil, errors.Wrap(err, "converting request")
	}
	respMsg, err := r.conv.Response(resp)
	if err != nil {
		return nil, errors.Wrap(err, "converting response")
	}

	elapsed := milliseconds(r.clock.Since(e.started))
	entry := Entry{
		StartedDateTime: e.started,
		Time:            elapsed,
		Request:         requestRecord(reqMsg),
		Response:        responseRecord(respMsg),
		Timings:         Timings{Wait: elapsed},
	}

	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()

	r.logger.Debug("recorded entry",
		"method", entry.Request.Method,
		"status", entry.Response.Status,
		"time", entry.Time,
	)

	return &entry, nil
}

// Log returns a snapshot of the entries recorded so far.
func (r *Recorder) Log() Log {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)

	return Log{
		Version: Version,
		Creator: r.opts.Creator,
		Entries: entries,
		Comment: r.opts.Comment,
	}
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func nameValues(h http.Headers) []NameValue {
	return sliceutil.Map(h.Fields(), func(f http.Field) NameValue {
		return NameValue{Name: f.Name, Value: f.Value}
	})
}

func requestRecord(msg *http.Message) Request {
	method, rest, _ := strings.Cut(msg.StartLine(), " ")
	target, version, _ := strings.Cut(rest, " ")

	rec := Request{
		Method:      method,
		URL:         target,
		HTTPVersion: version,
		Headers:     nameValues(msg.RawHeaders()),
		QueryString: queryString(target),
		HeadersSize: msg.HeadersSize(),
		BodySize:    msg.BodySize(),
	}
	if text, ok := msg.Body(); ok {
		rec.PostData = &PostData{MimeType: msg.MimeType(), Text: text}
	}
	return rec
}

// queryString keeps the order parameters appear in target.
func queryString(target string) []NameValue {
	out := make([]NameValue, 0)

	u, err := url.Parse(target)
	if err != nil || u.RawQuery == "" {
		return out
	}
	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		if n, err := url.QueryUnescape(name); err == nil {
			name = n
		}
		if v, err := url.QueryUnescape(value); err == nil {
			value = v
		}
		out = append(out, NameValue{Name: name, Value: value})
	}
	return out
}

func responseRecord(msg *http.Message) Response {
	version, rest, _ := strings.Cut(msg.StartLine(), " ")
	code, text, _ := strings.Cut(rest, " ")
	statusCode, _ := strconv.Atoi(code)

	headers := msg.RawHeaders()
	location, _ := headers.Lookup("Location")

	rec := Response{
		Status:      statusCode,
		StatusText:  text,
		HTTPVersion: version,
		Headers:     nameValues(headers),
		Content: Content{
			Size:     msg.BodySize(),
			MimeType: msg.MimeType(),
		},
		RedirectURL: location,
		HeadersSize: msg.HeadersSize(),
		BodySize:    msg.BodySize(),
	}
	if body, ok := msg.Body(); ok {
		rec.Content.Text = body
	}
	return rec
}
