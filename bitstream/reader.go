package bitstream

import (
	"io"
)

// BitReader extracts bits from the bytes of a carrier stream.
type BitReader struct {
	stream io.Reader
	buf    [Uint32Span]byte
	count  uint64
}

// NewReader returns a new instance of BitReader.
func NewReader(r io.Reader) *BitReader {
	br := new(BitReader)
	br.stream = r
	return br
}

// Count returns the number of carrier bytes consumed so far.
func (br *BitReader) Count() uint64 {
	return br.count
}

// ReadBit extracts a single bit from the next carrier byte.
func (br *BitReader) ReadBit() (Bit, error) {
	buf, err := br.next(1)
	if err != nil {
		return Zero, err
	}
	return ExtractBit(buf[0]), nil
}

// ReadByte extracts a single byte from the next 8 carrier bytes.
func (br *BitReader) ReadByte() (byte, error) {
	buf, err := br.next(ByteSpan)
	if err != nil {
		return 0, err
	}
	return DecodeByte(buf), nil
}

// ReadUint32 extracts a 32-bit integer from the next 32 carrier bytes.
func (br *BitReader) ReadUint32() (uint32, error) {
	buf, err := br.next(Uint32Span)
	if err != nil {
		return 0, err
	}
	return DecodeUint32(buf), nil
}

// Read extracts n bytes, 8 carrier bytes per extracted byte.
func (br *BitReader) Read(n int) ([]byte, error) {
	data := make([]byte, n)
	for i := range data {
		b, err := br.ReadByte()
		if err != nil {
			return nil, err
		}
		data[i] = b
	}
	return data, nil
}

func (br *BitReader) next(n int) ([]byte, error) {
	buf := br.buf[:n]
	if _, err := io.ReadFull(br.stream, buf); err != nil {
		return nil, carrierReadError(err, br.count)
	}
	br.count += uint64(n)
	return buf, nil
}
