package frame

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Fahedshaikh32/Steganography/bitstream"
	"github.com/Fahedshaikh32/Steganography/carrier"
	"github.com/Fahedshaikh32/Steganography/shared"
)

// Encoder writes a frame into a copy of a carrier.
type Encoder struct {
	carrier io.Reader
	out     io.Writer
	opts    *option
	state   State
}

// NewEncoder returns an Encoder reading the carrier, positioned at its
// first byte, and writing the modified carrier to out.
func NewEncoder(c io.Reader, out io.Writer, opts ...OptionFunc) (*Encoder, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Encoder{
		carrier: c,
		out:     out,
		opts:    o,
	}, nil
}

// State returns the state the encoder is in, or failed in.
func (e *Encoder) State() State {
	return e.state
}

// Encode runs every state of the frame protocol, hiding meta and exactly
// meta.PayloadLength bytes read from payload.
func (e *Encoder) Encode(meta Metadata, payload io.Reader) error {
	if e.state != 0 {
		return errors.New("frame: encoder already used")
	}
	if len(meta.Extension) > e.opts.maxExtension {
		return fmt.Errorf("%w: extension %q is longer than %d bytes",
			shared.ErrUnsupportedSecret, meta.Extension, e.opts.maxExtension)
	}
	if meta.PayloadLength > MaxLength {
		return fmt.Errorf("%w: payload of %d bytes exceeds the frame limit of %d bytes",
			shared.ErrCapacityExceeded, meta.PayloadLength, MaxLength)
	}

	e.enter(StateHeader)
	h, err := carrier.ReadHeader(e.carrier)
	if err != nil {
		return stateError(StateHeader, err)
	}
	if err := write(e.out, h[:]); err != nil {
		return stateError(StateHeader, err)
	}

	bw := bitstream.NewWriter(e.carrier, e.out)

	e.enter(StateMagic)
	if err := bw.Write([]byte(e.opts.magic)); err != nil {
		return stateError(StateMagic, err)
	}

	e.enter(StateExtLen)
	if err := bw.WriteUint32(uint32(len(meta.Extension))); err != nil {
		return stateError(StateExtLen, err)
	}

	e.enter(StateExt)
	if err := bw.Write([]byte(meta.Extension)); err != nil {
		return stateError(StateExt, err)
	}

	e.enter(StatePayloadLen)
	if err := bw.WriteUint32(meta.PayloadLength); err != nil {
		return stateError(StatePayloadLen, err)
	}

	e.enter(StatePayload)
	if err := e.encodePayload(bw, payload, uint64(meta.PayloadLength)); err != nil {
		return stateError(StatePayload, err)
	}

	e.enter(StatePadding)
	n, err := bw.CopyRemaining()
	if err != nil {
		return stateError(StatePadding, err)
	}

	e.enter(StateDone)
	e.opts.logger.Debug("frame encoded",
		zap.Uint64("frame_bytes", bw.Count()-uint64(n)),
		zap.Int64("padding_bytes", n),
	)
	return nil
}

func (e *Encoder) encodePayload(bw *bitstream.BitWriter, payload io.Reader, total uint64) error {
	br, ok := payload.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(payload)
	}

	for done := uint64(0); done < total; {
		b, err := br.ReadByte()
		switch {
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: secret ended after %d of %d bytes", shared.ErrUnexpectedEOF, done, total)
		case err != nil:
			return fmt.Errorf("failed to read secret: %w", err)
		}

		if err := bw.WriteByte(b); err != nil {
			return err
		}
		done++
		e.opts.progress(done, total)
	}
	return nil
}

func (e *Encoder) enter(state State) {
	e.state = state
	e.opts.logger.Debug("encoding", zap.Stringer("state", state))
}

func write(w io.Writer, p []byte) error {
	n, err := w.Write(p)
	if err == nil && n != len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrWriteFailed, err)
	}
	return nil
}
