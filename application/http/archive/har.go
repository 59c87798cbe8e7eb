package archive

import (
	"encoding/json"
	"io"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Version of the HAR format the log is shaped after.
const Version = "1.2"

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

type Log struct {
	Version string  `json:"version" yaml:"version"`
	Creator Creator `json:"creator" yaml:"creator"`
	Entries []Entry `json:"entries" yaml:"entries"`
	Comment string  `json:"comment,omitempty" yaml:"comment,omitempty"`
}

type Creator struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

type Entry struct {
	StartedDateTime time.Time `json:"startedDateTime" yaml:"startedDateTime"`
	// Time is the elapsed time of the exchange in milliseconds.
	Time     float64  `json:"time" yaml:"time"`
	Request  Request  `json:"request" yaml:"request"`
	Response Response `json:"response" yaml:"response"`
	Timings  Timings  `json:"timings" yaml:"timings"`
}

type NameValue struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

type Request struct {
	Method      string      `json:"method" yaml:"method"`
	URL         string      `json:"url" yaml:"url"`
	HTTPVersion string      `json:"httpVersion" yaml:"httpVersion"`
	Headers     []NameValue `json:"headers" yaml:"headers"`
	QueryString []NameValue `json:"queryString" yaml:"queryString"`
	PostData    *PostData   `json:"postData,omitempty" yaml:"postData,omitempty"`
	HeadersSize int         `json:"headersSize" yaml:"headersSize"`
	BodySize    int         `json:"bodySize" yaml:"bodySize"`
}

type PostData struct {
	MimeType string `json:"mimeType" yaml:"mimeType"`
	Text     string `json:"text" yaml:"text"`
}

type Response struct {
	Status      int         `json:"status" yaml:"status"`
	StatusText  string      `json:"statusText" yaml:"statusText"`
	HTTPVersion string      `json:"httpVersion" yaml:"httpVersion"`
	Headers     []NameValue `json:"headers" yaml:"headers"`
	Content     Content     `json:"content" yaml:"content"`
	RedirectURL string      `json:"redirectURL" yaml:"redirectURL"`
	HeadersSize int         `json:"headersSize" yaml:"headersSize"`
	BodySize    int         `json:"bodySize" yaml:"bodySize"`
}

type Content struct {
	Size     int    `json:"size" yaml:"size"`
	MimeType string `json:"mimeType" yaml:"mimeType"`
	Text     string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Timings only splits out the wait between sending and receiving; send
// and receive are not observed and stay zero.
type Timings struct {
	Send    float64 `json:"send" yaml:"send"`
	Wait    float64 `json:"wait" yaml:"wait"`
	Receive float64 `json:"receive" yaml:"receive"`
}

// Encode writes the log wrapped in a top-level "log" object.
func (l Log) Encode(w io.Writer, format Format) error {
	doc := struct {
		Log Log `json:"log" yaml:"log"`
	}{l}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return errors.Wrap(err, "encoding json")
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(err, "flushing yaml")
		}
	default:
		return errors.Errorf("unknown format: %q", format)
	}

	return nil
}
