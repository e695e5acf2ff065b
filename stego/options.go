package stego

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Fahedshaikh32/Steganography/config"
	"github.com/Fahedshaikh32/Steganography/frame"
)

type option struct {
	cfg      config.Config
	logger   *zap.Logger
	progress frame.ProgressFunc
}

func applyOptions(opts []OptionFunc) (*option, error) {
	o := &option{
		cfg:    *config.DefaultConfig(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *option) frameOptions() []frame.OptionFunc {
	opts := append(o.cfg.FrameOptions(), frame.WithLogger(o.logger.Named("frame")))
	if o.progress != nil {
		opts = append(opts, frame.WithProgress(o.progress))
	}
	return opts
}

type OptionFunc func(*option) error

// WithConfig applies the frame and carrier settings of cfg.
func WithConfig(cfg *config.Config) OptionFunc {
	return func(o *option) error {
		if cfg == nil {
			return errors.New("config is nil")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		o.cfg = *cfg
		return nil
	}
}

func WithMagic(magic string) OptionFunc {
	return func(o *option) error {
		if magic == "" {
			return errors.New("`magic` must not be empty")
		}
		o.cfg.Magic = magic
		return nil
	}
}

func WithMaxExtensionLength(n int) OptionFunc {
	return func(o *option) error {
		if n <= 0 || n > frame.MaxLength {
			return fmt.Errorf("invalid `max extension length`; expected: 1..%d, given: %d", frame.MaxLength, n)
		}
		o.cfg.MaxExtensionLength = n
		return nil
	}
}

// WithCarrierValidation toggles the bitmap header check done before encoding.
func WithCarrierValidation(enabled bool) OptionFunc {
	return func(o *option) error {
		o.cfg.ValidateCarrier = enabled
		return nil
	}
}

// WithProgress registers fn to be notified after every payload byte.
func WithProgress(fn frame.ProgressFunc) OptionFunc {
	return func(o *option) error {
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
