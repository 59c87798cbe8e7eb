package source

import (
	"strconv"
	"strings"

	"httpsnapshot/application/http"
	"httpsnapshot/application/http/status"
	"httpsnapshot/application/util/rule"
)

// TargetPlaceholder stands in for the request target of outgoing streaming
// requests, which do not expose an absolute URL.
const TargetPlaceholder = "<unknown>"

func requestLine(method, target string) string {
	var sb strings.Builder

	sb.WriteString(method)
	sb.WriteByte(rule.SP)
	sb.WriteString(target)
	sb.WriteByte(rule.SP)
	sb.WriteString(http.DefaultVersion)

	return sb.String()
}

// statusLine falls back to the standard reason phrase when text is empty.
// Non-standard codes without text keep an empty phrase.
func statusLine(version string, code int, text string) string {
	if text == "" {
		text = status.Text(code)
	}

	var sb strings.Builder

	sb.WriteString(version)
	sb.WriteByte(rule.SP)
	sb.WriteString(strconv.Itoa(code))
	sb.WriteByte(rule.SP)
	sb.WriteString(text)

	return sb.String()
}

func (r *BufferedRequest) startLine() string { return requestLine(r.Method, r.URL) }

func (r *StreamingRequest) startLine() string {
	method := r.Method
	if method == "" {
		method = "GET"
	}
	return requestLine(method, TargetPlaceholder)
}

func (r *BufferedResponse) startLine() string {
	return statusLine(http.DefaultVersion, r.Status, r.StatusText)
}

func (r *StreamingResponse) startLine() string {
	version := r.Proto
	if version == "" {
		version = http.DefaultVersion
	}
	code := r.Status
	if code == 0 {
		code = status.OK.Code
	}
	return statusLine(version, code, r.StatusText)
}
