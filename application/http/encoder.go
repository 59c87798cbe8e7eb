package http

import (
	"bufio"
	"io"

	"httpsnapshot/application/util/rule"

	"github.com/pkg/errors"
)

type MessageEncoder struct {
	bw *bufio.Writer
}

func NewMessageEncoder(w io.Writer) *MessageEncoder {
	return &MessageEncoder{bw: bufio.NewWriter(w)}
}

func (me *MessageEncoder) writeLine(line string) error {
	if _, err := me.bw.WriteString(line); err != nil {
		return errors.Wrap(err, "writing line")
	}

	if _, err := me.bw.WriteString(rule.CRLF); err != nil {
		return errors.Wrap(err, "writing line terminator")
	}

	return nil
}

// Encode writes the start line, the header block and the body of m.
// Without a body, a non-empty header block is closed with an empty line.
func (me *MessageEncoder) Encode(m *Message) error {
	if err := me.writeLine(m.startLine); err != nil {
		return errors.Wrap(err, "encoding start line")
	}

	if _, err := me.bw.WriteString(m.headerBlock); err != nil {
		return errors.Wrap(err, "encoding headers")
	}

	switch {
	case m.body.Present:
		if _, err := me.bw.WriteString(m.body.Text); err != nil {
			return errors.Wrap(err, "encoding body")
		}
	case m.headerBlock != "":
		if err := me.writeLine(""); err != nil {
			return errors.Wrap(err, "closing headers")
		}
	}

	if err := me.bw.Flush(); err != nil {
		return errors.Wrap(err, "flushing message")
	}

	return nil
}
