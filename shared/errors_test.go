package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	req := require.New(t)

	req.Nil(KindOf(nil))
	req.Nil(KindOf(errors.New("unrelated")))
	for _, kind := range kinds {
		req.Equal(kind, KindOf(fmt.Errorf("context: %w", kind)))
	}

	err := fmt.Errorf("%w: %w", ErrSecretOpenFailed, ErrUnexpectedEOF)
	req.Equal(ErrSecretOpenFailed, KindOf(err))
}

func TestCapacityError(t *testing.T) {
	req := require.New(t)

	var err error = &CapacityError{Required: 2048, Available: 1024}
	req.ErrorIs(err, ErrCapacityExceeded)
	req.ErrorIs(fmt.Errorf("wrapped: %w", err), ErrCapacityExceeded)
	req.NotErrorIs(err, ErrEmptySecret)
	req.Equal(ErrCapacityExceeded, KindOf(err))
	req.Contains(err.Error(), "2048 bytes")
	req.Contains(err.Error(), "1K")

	var capErr *CapacityError
	req.True(errors.As(fmt.Errorf("wrapped: %w", err), &capErr))
	req.Equal(uint64(1024), capErr.Available)
}
