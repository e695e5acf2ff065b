package shared

import (
	"errors"
	"fmt"

	"code.cloudfoundry.org/bytefmt"
)

var (
	ErrInvalidCarrierFormat = errors.New("not a supported bitmap carrier")
	ErrCarrierOpenFailed    = errors.New("cannot open carrier")
	ErrSecretOpenFailed     = errors.New("cannot open secret")
	ErrOutputCreateFailed   = errors.New("cannot create output")
	ErrEmptySecret          = errors.New("secret is empty or unreadable")
	ErrUnsupportedSecret    = errors.New("secret file type not supported")
	ErrCapacityExceeded     = errors.New("carrier too small to hide secret")
	ErrMagicMismatch        = errors.New("carrier does not contain a hidden secret")
	ErrCorruptFrame         = errors.New("hidden frame is corrupted")
	ErrUnexpectedEOF        = errors.New("carrier truncated")
	ErrWriteFailed          = errors.New("write failed")
)

// kinds lists every failure kind in the order KindOf checks them.
var kinds = []error{
	ErrInvalidCarrierFormat,
	ErrCarrierOpenFailed,
	ErrSecretOpenFailed,
	ErrOutputCreateFailed,
	ErrEmptySecret,
	ErrUnsupportedSecret,
	ErrCapacityExceeded,
	ErrMagicMismatch,
	ErrCorruptFrame,
	ErrUnexpectedEOF,
	ErrWriteFailed,
}

// KindOf returns the failure kind err belongs to, or nil if err is nil or
// not one of the known kinds.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// CapacityError reports how many carrier bytes a frame needs against how many
// the carrier offers. It matches ErrCapacityExceeded with errors.Is.
type CapacityError struct {
	Required  uint64
	Available uint64
}

func (err *CapacityError) Error() string {
	return fmt.Sprintf("%v; required: %v (%d bytes), available: %v (%d bytes)",
		ErrCapacityExceeded, bytefmt.ByteSize(err.Required), err.Required,
		bytefmt.ByteSize(err.Available), err.Available)
}

func (err *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}
