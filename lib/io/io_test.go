package iolib

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

type shortWriter struct {
	buf bytes.Buffer
	max int
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) > w.max {
		p = p[:w.max]
	}
	return w.buf.Write(p)
}

func TestWriteFull(t *testing.T) {
	data := []byte("Hello, World!")
	var buf bytes.Buffer

	written, err := WriteFull(&buf, data)
	assert.NoError(t, err)
	assert.Equal(t, len(data), written)
	assert.Equal(t, data, buf.Bytes())
}

func TestWriteFullShortWrites(t *testing.T) {
	data := []byte("Hello, World!")
	w := &shortWriter{max: 3}

	written, err := WriteFull(w, data)
	assert.NoError(t, err)
	assert.Equal(t, len(data), written)
	assert.Equal(t, data, w.buf.Bytes())
}

func TestNopWriteCloser(t *testing.T) {
	var buf bytes.Buffer
	wc := NopWriteCloser(&buf)

	_, err := wc.Write([]byte("abc"))
	assert.NoError(t, err)
	assert.NoError(t, wc.Close())
	assert.Equal(t, "abc", buf.String())
}

type stuckWriter struct{}

func (stuckWriter) Write(p []byte) (int, error) { return 0, nil }

func TestWriteFullNoProgress(t *testing.T) {
	written, err := WriteFull(stuckWriter{}, []byte("abc"))
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.Equal(t, 0, written)
}
