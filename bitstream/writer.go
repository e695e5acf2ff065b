package bitstream

import (
	"errors"
	"fmt"
	"io"

	"github.com/Fahedshaikh32/Steganography/shared"
)

// BitWriter embeds bits into the bytes of a carrier stream and writes the
// modified carrier bytes to an io.Writer.
type BitWriter struct {
	carrier io.Reader
	stream  io.Writer
	buf     [Uint32Span]byte
	count   uint64
}

// NewWriter returns a new instance of BitWriter which consumes carrier bytes
// from carrier and writes them, modified, to w.
func NewWriter(carrier io.Reader, w io.Writer) *BitWriter {
	bw := new(BitWriter)
	bw.carrier = carrier
	bw.stream = w
	return bw
}

// Count returns the number of carrier bytes consumed so far.
func (bw *BitWriter) Count() uint64 {
	return bw.count
}

// WriteBit embeds a single bit into the next carrier byte.
func (bw *BitWriter) WriteBit(bit Bit) error {
	buf, err := bw.next(1)
	if err != nil {
		return err
	}
	buf[0] = EmbedBit(buf[0], bit)
	return bw.flush(buf)
}

// WriteByte embeds a single byte into the next 8 carrier bytes.
func (bw *BitWriter) WriteByte(b byte) error {
	buf, err := bw.next(ByteSpan)
	if err != nil {
		return err
	}
	EncodeByte(b, buf)
	return bw.flush(buf)
}

// WriteUint32 embeds v into the next 32 carrier bytes.
func (bw *BitWriter) WriteUint32(v uint32) error {
	buf, err := bw.next(Uint32Span)
	if err != nil {
		return err
	}
	EncodeUint32(v, buf)
	return bw.flush(buf)
}

// Write embeds every byte of data, 8 carrier bytes per data byte.
func (bw *BitWriter) Write(data []byte) error {
	for _, b := range data {
		if err := bw.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

// CopyRemaining copies the rest of the carrier to the stream unmodified.
func (bw *BitWriter) CopyRemaining() (int64, error) {
	tw := &trackingWriter{w: bw.stream}
	n, err := io.Copy(tw, bw.carrier)
	bw.count += uint64(n)
	switch {
	case err == nil:
		return n, nil
	case tw.err != nil:
		return n, fmt.Errorf("%w: %w", shared.ErrWriteFailed, tw.err)
	default:
		return n, fmt.Errorf("failed to read carrier: %w", err)
	}
}

func (bw *BitWriter) next(n int) ([]byte, error) {
	buf := bw.buf[:n]
	if _, err := io.ReadFull(bw.carrier, buf); err != nil {
		return nil, carrierReadError(err, bw.count)
	}
	bw.count += uint64(n)
	return buf, nil
}

func (bw *BitWriter) flush(buf []byte) error {
	n, err := bw.stream.Write(buf)
	if err == nil && n != len(buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrWriteFailed, err)
	}
	return nil
}

// trackingWriter remembers the error returned by the underlying writer, so
// write failures can be told apart from read failures after io.Copy.
type trackingWriter struct {
	w   io.Writer
	err error
}

func (tw *trackingWriter) Write(p []byte) (int, error) {
	n, err := tw.w.Write(p)
	if err != nil {
		tw.err = err
	}
	return n, err
}

func carrierReadError(err error, offset uint64) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w after %d carrier bytes", shared.ErrUnexpectedEOF, offset)
	}
	return fmt.Errorf("failed to read carrier: %w", err)
}
