// Package stego hides a secret file inside the pixel data of an uncompressed
// bitmap, and recovers it.
//
// Encode copies the carrier header, embeds a frame describing the secret in
// the least-significant bits of the following carrier bytes, and copies the
// remaining carrier bytes unmodified. Decode reverses the process, streaming
// the recovered secret to a Sink.
package stego

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Fahedshaikh32/Steganography/carrier"
	"github.com/Fahedshaikh32/Steganography/frame"
	"github.com/Fahedshaikh32/Steganography/shared"
)

// Secret is a file to hide.
type Secret struct {
	Reader io.Reader
	// Size is the number of bytes read from Reader.
	Size int64
	// Extension tags the file type, including its leading dot (e.g. ".txt").
	Extension string
}

// Sink receives a recovered secret. Create is called once the frame
// metadata was decoded, before any payload byte is written.
type Sink interface {
	Create(meta frame.Metadata) (io.Writer, error)
}

// Result describes a completed operation.
type Result struct {
	Geometry carrier.Geometry
	// Capacity is the number of carrier bytes able to hide a bit.
	Capacity uint64
	// Required is the number of carrier bytes occupied by the frame.
	Required uint64
	Metadata frame.Metadata
}

// Encode hides secret in the carrier read from c and writes the resulting
// carrier to out. Nothing is written to out if the carrier is rejected or
// too small for the secret.
func Encode(c io.Reader, secret Secret, out io.Writer, opts ...OptionFunc) (*Result, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	logger := o.logger

	if secret.Size <= 0 {
		return nil, shared.ErrEmptySecret
	}
	if len(secret.Extension) > o.cfg.MaxExtensionLength {
		return nil, fmt.Errorf("%w: extension %q is longer than %d bytes",
			shared.ErrUnsupportedSecret, secret.Extension, o.cfg.MaxExtensionLength)
	}

	cr := bufio.NewReader(c)
	h, err := carrier.ReadHeader(cr)
	if err != nil {
		return nil, err
	}
	if o.cfg.ValidateCarrier {
		if err := carrier.Validate(h); err != nil {
			return nil, err
		}
	}

	res := &Result{
		Geometry: h.Geometry(),
		Capacity: h.Geometry().Capacity(),
		Required: frame.RequiredBytes(uint64(len(o.cfg.Magic)), uint64(len(secret.Extension)), uint64(secret.Size)),
	}
	if err := frame.CheckCapacity(res.Capacity, uint64(len(o.cfg.Magic)), uint64(len(secret.Extension)), uint64(secret.Size)); err != nil {
		return nil, err
	}
	res.Metadata = frame.Metadata{
		Extension:     secret.Extension,
		PayloadLength: uint32(secret.Size),
	}
	logger.Info("carrier can hold secret",
		zap.Stringer("geometry", res.Geometry),
		zap.Uint64("capacity", res.Capacity),
		zap.Uint64("required", res.Required),
	)

	bw := bufio.NewWriter(out)
	enc, err := frame.NewEncoder(io.MultiReader(bytes.NewReader(h[:]), cr), bw, o.frameOptions()...)
	if err != nil {
		return nil, err
	}
	if err := enc.Encode(res.Metadata, secret.Reader); err != nil {
		return nil, err
	}
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrWriteFailed, err)
	}

	logger.Info("secret hidden",
		zap.String("extension", res.Metadata.Extension),
		zap.Uint32("size", res.Metadata.PayloadLength),
	)
	return res, nil
}

// Decode recovers the secret hidden in the carrier read from c and streams
// it to the writer created by sink.
func Decode(c io.Reader, sink Sink, opts ...OptionFunc) (*Result, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	dec, res, err := readMetadata(c, o)
	if err != nil {
		return nil, err
	}

	w, err := sink.Create(res.Metadata)
	if err != nil {
		return nil, err
	}

	bw := bufio.NewWriter(w)
	if err := dec.ReadPayload(bw); err != nil {
		return nil, err
	}
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrWriteFailed, err)
	}

	o.logger.Info("secret recovered",
		zap.String("extension", res.Metadata.Extension),
		zap.Uint32("size", res.Metadata.PayloadLength),
	)
	return res, nil
}

// Inspect reads the metadata of the frame hidden in the carrier read from c,
// without recovering the payload.
func Inspect(c io.Reader, opts ...OptionFunc) (*Result, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	_, res, err := readMetadata(c, o)
	return res, err
}

func readMetadata(c io.Reader, o *option) (*frame.Decoder, *Result, error) {
	dec, err := frame.NewDecoder(bufio.NewReader(c), o.frameOptions()...)
	if err != nil {
		return nil, nil, err
	}

	meta, err := dec.ReadMetadata()
	if err != nil {
		return nil, nil, err
	}

	geom := dec.Geometry()
	res := &Result{
		Geometry: geom,
		Capacity: geom.Capacity(),
		Required: frame.RequiredBytes(uint64(len(o.cfg.Magic)), uint64(len(meta.Extension)), uint64(meta.PayloadLength)),
		Metadata: *meta,
	}
	o.logger.Debug("hidden secret found",
		zap.Stringer("geometry", res.Geometry),
		zap.String("extension", meta.Extension),
		zap.Uint32("size", meta.PayloadLength),
	)
	return dec, res, nil
}
