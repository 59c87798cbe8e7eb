package iolib

import "io"

type nopWriteCloser struct{ io.Writer }

// NopWriteCloser returns w with a no-op Close method.
func NopWriteCloser(w io.Writer) io.WriteCloser { return nopWriteCloser{w} }

func (nopWriteCloser) Close() error { return nil }

// WriteFull keeps writing until buf is fully written or w fails.
// A write that makes no progress without an error yields [io.ErrShortWrite].
func WriteFull(w io.Writer, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := w.Write(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, io.ErrShortWrite
		}
	}
	return total, nil
}
