// Package io offers serialization helpers shared by the translation
// backends.
package io

import (
	"bytes"
	"fmt"
	"io"
)

// RoundTripCheck serializes from, deserializes the bytes through to() and
// checks that re-serializing yields the same bytes. to must return a fresh
// object implementing io.ReaderFrom and io.WriterTo.
func RoundTripCheck(from io.WriterTo, to func() any) error {
	var buf bytes.Buffer
	written, err := from.WriteTo(&buf)
	if err != nil {
		return err
	}
	if written != int64(buf.Len()) {
		return fmt.Errorf("WriteTo reported %d bytes, wrote %d", written, buf.Len())
	}

	target := to()
	reader, ok := target.(io.ReaderFrom)
	if !ok {
		return fmt.Errorf("%T does not implement io.ReaderFrom", target)
	}
	read, err := reader.ReadFrom(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return err
	}
	if read != written {
		return fmt.Errorf("ReadFrom consumed %d bytes, want %d", read, written)
	}

	writer, ok := target.(io.WriterTo)
	if !ok {
		return fmt.Errorf("%T does not implement io.WriterTo", target)
	}
	var buf2 bytes.Buffer
	if _, err := writer.WriteTo(&buf2); err != nil {
		return err
	}
	if !bytes.Equal(buf.Bytes(), buf2.Bytes()) {
		return fmt.Errorf("reserialized %T differs from the original bytes", target)
	}
	return nil
}
