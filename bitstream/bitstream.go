// Package bitstream hides data in the least-significant bits of a carrier
// byte stream, one bit per carrier byte, following the LSB pattern, where
// least-significant bits of the data are embedded/extracted first.
package bitstream

type Bit bool

const (
	Zero Bit = false
	One  Bit = true
)

const (
	// ByteSpan is the number of carrier bytes holding one data byte.
	ByteSpan = 8
	// Uint32Span is the number of carrier bytes holding one 32-bit integer.
	Uint32Span = 32
)

// EmbedBit returns b with its least-significant bit set to bit.
// The other 7 bits are left untouched.
func EmbedBit(b byte, bit Bit) byte {
	if bit {
		return b | 1
	}
	return b &^ 1
}

// ExtractBit returns the least-significant bit of b.
func ExtractBit(b byte) Bit {
	return b&1 == 1
}

// EncodeByte embeds the 8 bits of ch into carrier[0:8], LSB first.
func EncodeByte(ch byte, carrier []byte) {
	_ = carrier[ByteSpan-1]
	for i := 0; i < ByteSpan; i++ {
		carrier[i] = EmbedBit(carrier[i], (ch>>i)&1 == 1)
	}
}

// DecodeByte extracts a byte from carrier[0:8], LSB first.
func DecodeByte(carrier []byte) byte {
	_ = carrier[ByteSpan-1]
	var ch byte
	for i := 0; i < ByteSpan; i++ {
		if ExtractBit(carrier[i]) {
			ch |= 1 << i
		}
	}
	return ch
}

// EncodeUint32 embeds the 32 bits of v into carrier[0:32], LSB first.
func EncodeUint32(v uint32, carrier []byte) {
	_ = carrier[Uint32Span-1]
	for i := 0; i < Uint32Span; i++ {
		carrier[i] = EmbedBit(carrier[i], (v>>i)&1 == 1)
	}
}

// DecodeUint32 extracts a 32-bit integer from carrier[0:32], LSB first.
func DecodeUint32(carrier []byte) uint32 {
	_ = carrier[Uint32Span-1]
	var v uint32
	for i := 0; i < Uint32Span; i++ {
		if ExtractBit(carrier[i]) {
			v |= 1 << i
		}
	}
	return v
}
