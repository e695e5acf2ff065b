// Package carrier reads the fixed-size header of an uncompressed bitmap
// carrier and derives the number of payload bytes available for hiding data.
package carrier

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/image/bmp"

	"github.com/Fahedshaikh32/Steganography/shared"
)

const (
	// HeaderSize is the size of the header region, copied verbatim and never
	// used to hide data.
	HeaderSize = 54

	WidthOffset  = 18
	HeightOffset = 22

	// Channels is the number of color channels per pixel.
	Channels = 3
)

// Header is the raw header region of a carrier.
type Header [HeaderSize]byte

// ReadHeader reads the header region from the beginning of r.
func ReadHeader(r io.Reader) (*Header, error) {
	h := new(Header)
	if _, err := io.ReadFull(r, h[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: header shorter than %d bytes", shared.ErrUnexpectedEOF, HeaderSize)
		}
		return nil, fmt.Errorf("failed to read carrier header: %w", err)
	}
	return h, nil
}

// Geometry returns the image dimensions stored in the header.
func (h *Header) Geometry() Geometry {
	height := int32(binary.LittleEndian.Uint32(h[HeightOffset:]))
	if height < 0 {
		// Top-down bitmaps store a negative height.
		height = -height
	}
	return Geometry{
		Width:  binary.LittleEndian.Uint32(h[WidthOffset:]),
		Height: uint32(height),
	}
}

// Validate checks that h is the header of a bitmap whose pixel data directly
// follows the header region.
func Validate(h *Header) error {
	if _, err := bmp.DecodeConfig(bytes.NewReader(h[:])); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidCarrierFormat, err)
	}
	return nil
}

// Geometry holds the dimensions of a carrier image.
type Geometry struct {
	Width  uint32
	Height uint32
}

// Capacity returns the number of payload region bytes, each able to hold
// one hidden bit.
func (g Geometry) Capacity() uint64 {
	return uint64(g.Width) * uint64(g.Height) * Channels
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}
