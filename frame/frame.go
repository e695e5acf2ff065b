// Package frame implements the wire format of a secret hidden in a carrier:
//
//	[header:54][magic][extLen:32][ext][payloadLen:32][payload][padding]
//
// Every segment after the header is measured in carrier bytes, each hiding a
// single bit. The extension and payload lengths always occupy 32 carrier
// bytes, characters and payload bytes 8 carrier bytes each. The padding is
// the remainder of the carrier, copied unmodified.
package frame

import (
	"fmt"
	"math"
)

// DefaultMagic marks a carrier as holding a frame.
const DefaultMagic = "#*"

const (
	DefaultMaxExtensionLength = 16

	// MaxLength is the largest extension or payload length a frame can
	// declare. Decoded lengths beyond it are negative as 32-bit signed
	// integers and treated as corruption.
	MaxLength = math.MaxInt32
)

// Metadata is the decoded description of a hidden secret.
type Metadata struct {
	// Extension of the hidden file, including its leading separator.
	Extension string
	// PayloadLength is the size of the hidden file in bytes.
	PayloadLength uint32
}

type State int

var states = []string{
	"HEADER",
	"MAGIC",
	"EXT_LEN",
	"EXT",
	"PAYLOAD_LEN",
	"PAYLOAD",
	"PADDING",
	"DONE",
}

const (
	StateHeader State = 1 + iota
	StateMagic
	StateExtLen
	StateExt
	StatePayloadLen
	StatePayload
	StatePadding
	StateDone
)

func (s State) String() string {
	if s < StateHeader || s > StateDone {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return states[s-1]
}

// Error reports the state in which encoding or decoding a frame failed.
type Error struct {
	State State
	Err   error
}

func (err *Error) Error() string {
	return fmt.Sprintf("frame %v: %v", err.State, err.Err)
}

func (err *Error) Unwrap() error {
	return err.Err
}

func stateError(state State, err error) error {
	if err == nil {
		return nil
	}
	return &Error{State: state, Err: err}
}
