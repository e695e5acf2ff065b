package frame

import (
	"github.com/Fahedshaikh32/Steganography/bitstream"
	"github.com/Fahedshaikh32/Steganography/shared"
)

// RequiredBytes returns the number of payload region bytes a frame occupies,
// excluding the header region and the padding.
func RequiredBytes(magicLen, extLen, payloadLen uint64) uint64 {
	return (magicLen+extLen+payloadLen)*bitstream.ByteSpan + 2*bitstream.Uint32Span
}

// CheckCapacity verifies that a carrier whose payload region holds capacity
// bytes can hide a payloadLen bytes secret tagged with an extLen extension.
func CheckCapacity(capacity, magicLen, extLen, payloadLen uint64) error {
	if payloadLen == 0 {
		return shared.ErrEmptySecret
	}

	if payloadLen > MaxLength || extLen > MaxLength {
		return &shared.CapacityError{Required: RequiredBytes(magicLen, extLen, payloadLen), Available: capacity}
	}

	required := RequiredBytes(magicLen, extLen, payloadLen)
	if required > capacity {
		return &shared.CapacityError{Required: required, Available: capacity}
	}
	return nil
}

// MaxPayload returns the largest secret, in bytes, that a carrier of
// capacity bytes can hide next to an extLen extension.
func MaxPayload(capacity, magicLen, extLen uint64) uint64 {
	overhead := RequiredBytes(magicLen, extLen, 0)
	if capacity < overhead {
		return 0
	}
	n := (capacity - overhead) / bitstream.ByteSpan
	if n > MaxLength {
		n = MaxLength
	}
	return n
}
