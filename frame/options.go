package frame

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ProgressFunc is notified once per payload byte processed.
type ProgressFunc func(done, total uint64)

type option struct {
	magic        string
	maxExtension int
	progress     ProgressFunc
	logger       *zap.Logger
}

func defaultOption() *option {
	return &option{
		magic:        DefaultMagic,
		maxExtension: DefaultMaxExtensionLength,
		progress:     func(uint64, uint64) {},
		logger:       zap.NewNop(),
	}
}

func applyOptions(opts []OptionFunc) (*option, error) {
	o := defaultOption()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

type OptionFunc func(*option) error

// WithMagic sets the marker written before the frame metadata.
// Encoder and decoder must agree on it.
func WithMagic(magic string) OptionFunc {
	return func(o *option) error {
		if magic == "" {
			return errors.New("`magic` must not be empty")
		}
		o.magic = magic
		return nil
	}
}

// WithMaxExtensionLength bounds the extension length accepted when encoding
// and decoding.
func WithMaxExtensionLength(n int) OptionFunc {
	return func(o *option) error {
		if n <= 0 || n > MaxLength {
			return fmt.Errorf("invalid `max extension length`; expected: 1..%d, given: %d", MaxLength, n)
		}
		o.maxExtension = n
		return nil
	}
}

// WithProgress registers fn to be called after every payload byte.
func WithProgress(fn ProgressFunc) OptionFunc {
	return func(o *option) error {
		if fn == nil {
			return errors.New("progress func is nil")
		}
		o.progress = fn
		return nil
	}
}

func WithLogger(logger *zap.Logger) OptionFunc {
	return func(o *option) error {
		if logger == nil {
			return errors.New("logger is nil")
		}
		o.logger = logger
		return nil
	}
}
