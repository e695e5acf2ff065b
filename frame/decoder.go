package frame

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Fahedshaikh32/Steganography/bitstream"
	"github.com/Fahedshaikh32/Steganography/carrier"
	"github.com/Fahedshaikh32/Steganography/shared"
)

var errOutOfOrder = errors.New("frame: decoder used out of order")

// Decoder reads a frame from a carrier.
type Decoder struct {
	opts   *option
	stream io.Reader
	br     *bitstream.BitReader
	state  State
	geom   carrier.Geometry
	meta   *Metadata
}

// NewDecoder returns a Decoder reading the carrier, positioned at its first
// byte.
func NewDecoder(c io.Reader, opts ...OptionFunc) (*Decoder, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Decoder{
		opts:   o,
		stream: c,
		br:     bitstream.NewReader(c),
	}, nil
}

// State returns the state the decoder is in, or failed in.
func (d *Decoder) State() State {
	return d.state
}

// Geometry returns the carrier geometry, known once the header was read.
func (d *Decoder) Geometry() carrier.Geometry {
	return d.geom
}

// ReadMetadata reads the frame up to and including the payload length.
// It fails with shared.ErrMagicMismatch if the carrier holds no frame.
//
// The declared lengths are checked against the geometry in the carrier
// header: a frame needing more carrier bytes than width*height*3 fails with
// shared.ErrCorruptFrame, even if the carrier stream itself is long enough.
// Carriers written by an Encoder whose header understates the pixel data
// are therefore rejected.
func (d *Decoder) ReadMetadata() (*Metadata, error) {
	if d.state != 0 {
		return nil, errOutOfOrder
	}

	d.enter(StateHeader)
	h, err := carrier.ReadHeader(d.stream)
	if err != nil {
		return nil, stateError(StateHeader, err)
	}
	d.geom = h.Geometry()

	d.enter(StateMagic)
	magic, err := d.br.Read(len(d.opts.magic))
	if err != nil {
		return nil, stateError(StateMagic, err)
	}
	if string(magic) != d.opts.magic {
		return nil, stateError(StateMagic, shared.ErrMagicMismatch)
	}

	d.enter(StateExtLen)
	extLen, err := d.readLength()
	if err != nil {
		return nil, stateError(StateExtLen, err)
	}
	if extLen > uint32(d.opts.maxExtension) {
		return nil, stateError(StateExtLen, fmt.Errorf("%w: extension length %d exceeds %d",
			shared.ErrCorruptFrame, extLen, d.opts.maxExtension))
	}

	d.enter(StateExt)
	ext, err := d.br.Read(int(extLen))
	if err != nil {
		return nil, stateError(StateExt, err)
	}

	d.enter(StatePayloadLen)
	payloadLen, err := d.readLength()
	if err != nil {
		return nil, stateError(StatePayloadLen, err)
	}

	required := RequiredBytes(uint64(len(d.opts.magic)), uint64(extLen), uint64(payloadLen))
	if capacity := d.geom.Capacity(); required > capacity {
		return nil, stateError(StatePayloadLen, fmt.Errorf("%w: frame of %d bytes declared in a carrier of %d bytes",
			shared.ErrCorruptFrame, required, capacity))
	}

	d.meta = &Metadata{
		Extension:     string(ext),
		PayloadLength: payloadLen,
	}
	d.opts.logger.Debug("frame metadata decoded",
		zap.String("extension", d.meta.Extension),
		zap.Uint32("payload_length", d.meta.PayloadLength),
	)
	return d.meta, nil
}

// ReadPayload streams the hidden payload to w, one byte at a time.
// It must be called after ReadMetadata.
func (d *Decoder) ReadPayload(w io.Writer) error {
	if d.state != StatePayloadLen || d.meta == nil {
		return errOutOfOrder
	}

	d.enter(StatePayload)
	total := uint64(d.meta.PayloadLength)
	var buf [1]byte
	for done := uint64(0); done < total; {
		b, err := d.br.ReadByte()
		if err != nil {
			return stateError(StatePayload, err)
		}
		buf[0] = b
		if err := write(w, buf[:]); err != nil {
			return stateError(StatePayload, err)
		}
		done++
		d.opts.progress(done, total)
	}

	d.enter(StateDone)
	return nil
}

func (d *Decoder) readLength() (uint32, error) {
	v, err := d.br.ReadUint32()
	if err != nil {
		return 0, err
	}
	if v > MaxLength {
		return 0, fmt.Errorf("%w: negative length %d", shared.ErrCorruptFrame, int32(v))
	}
	return v, nil
}

func (d *Decoder) enter(state State) {
	d.state = state
	d.opts.logger.Debug("decoding", zap.Stringer("state", state))
}
