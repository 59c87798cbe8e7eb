package http

import (
	"io"
	"strings"

	"httpsnapshot/application/util/rule"
)

// Body is the decoded text of a message body.
// An empty but present body differs from an absent one.
type Body struct {
	Text    string
	Present bool
}

var NoBody = Body{}

func TextBody(text string) Body { return Body{Text: text, Present: true} }

// Message is a rendered snapshot of an HTTP message.
// It never changes after [NewMessage] returns.
type Message struct {
	startLine string
	headers   Headers
	body      Body

	headerBlock string
	headersSize int
	bodySize    int

	mimeType    string
	encoding    string
	hasEncoding bool
}

func NewMessage(startLine string, headers Headers, body Body) *Message {
	m := &Message{
		startLine: startLine,
		headers:   headers.Clone(),
		body:      body,
	}

	m.headerBlock = headerBlock(m.headers, body.Present)
	m.mimeType, _ = m.headers.Lookup("Content-Type")
	m.encoding, m.hasEncoding = m.headers.Lookup("Content-Encoding")

	m.headersSize = len(m.startLine) + len(rule.CRLF) + len(m.headerBlock)
	if body.Present {
		m.bodySize = byteLength(body.Text, m.encoding)
	}

	return m
}

// headerBlock renders one CRLF terminated line per field. The blank line
// separating headers from the body is only added when a body follows.
func headerBlock(h Headers, hasBody bool) string {
	if h.Len() == 0 {
		return ""
	}

	var sb strings.Builder
	for _, f := range h.fields {
		sb.WriteString(f.Text())
		sb.WriteString(rule.CRLF)
	}
	if hasBody {
		sb.WriteString(rule.CRLF)
	}
	return sb.String()
}

func (m *Message) StartLine() string { return m.startLine }

// RawHeaders returns a copy of the canonical headers.
func (m *Message) RawHeaders() Headers { return m.headers.Clone() }

func (m *Message) Body() (text string, ok bool) { return m.body.Text, m.body.Present }

// HeaderBlock is the serialized header section, empty when there are no headers.
func (m *Message) HeaderBlock() string { return m.headerBlock }

// MimeType is the Content-Type value, or "".
func (m *Message) MimeType() string { return m.mimeType }

// Encoding is the Content-Encoding value used as the charset hint for [Message.BodySize].
func (m *Message) Encoding() (string, bool) { return m.encoding, m.hasEncoding }

// HeadersSize is the byte length of the start line, its CRLF and the header block.
func (m *Message) HeadersSize() int { return m.headersSize }

func (m *Message) BodySize() int  { return m.bodySize }
func (m *Message) TotalSize() int { return m.headersSize + m.bodySize }

func (m *Message) Serialize() string {
	var sb strings.Builder
	sb.Grow(m.headersSize + len(m.body.Text) + len(rule.CRLF))

	// strings.Builder never fails to write.
	_ = NewMessageEncoder(&sb).Encode(m)

	return sb.String()
}

func (m *Message) String() string { return m.Serialize() }

// WriteTo implements [io.WriterTo].
func (m *Message) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	err := NewMessageEncoder(cw).Encode(m)
	return cw.n, err
}

type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
